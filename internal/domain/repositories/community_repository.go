package repositories

import (
	"context"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	// GetByID retrieves a community by ID
	GetByID(ctx context.Context, id string) (*entities.Community, error)

	// List retrieves communities with filters
	List(ctx context.Context, filter CommunityFilter) ([]*entities.Community, error)

	// ListWithMatchingEvents retrieves a bounded set of communities, each
	// with the count of its published events matching the filter's
	// location/category constraints.
	ListWithMatchingEvents(ctx context.Context, filter CommunityMatchFilter) ([]*CommunityMatch, error)
}

// CommunityFilter defines filters for listing communities
type CommunityFilter struct {
	IsPublic *bool
	Limit    int
	Offset   int
}

// CommunityMatchFilter defines parameters for matching-event retrieval.
// OnlyPublic narrows to public communities when set; it never narrows to
// private-only.
type CommunityMatchFilter struct {
	OnlyPublic  bool
	LocationID  string
	CategoryIDs []string
	Limit       int
}

// CommunityMatch pairs a community with its matching published event count
type CommunityMatch struct {
	Community      *entities.Community
	MatchingEvents int
}
