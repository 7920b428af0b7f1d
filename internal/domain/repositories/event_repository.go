package repositories

import (
	"context"
	"time"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

// EventRepository defines the interface for event data operations
type EventRepository interface {
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*entities.Event, error)

	// List retrieves events with filters
	List(ctx context.Context, filter EventFilter) ([]*entities.Event, error)

	// FindCandidates retrieves a bounded set of published events matching
	// the search filter, with category memberships loaded. Results come
	// back in the store's natural order (soonest start first).
	FindCandidates(ctx context.Context, filter EventSearchFilter) ([]*entities.Event, error)
}

// EventFilter defines filters for listing events
type EventFilter struct {
	Status      string
	CommunityID string
	LocationID  string
	Limit       int
	Offset      int
}

// EventSearchFilter defines parameters for candidate retrieval. Zero-value
// fields do not restrict the result set. An event matches CategoryIDs if it
// belongs to any of them.
type EventSearchFilter struct {
	LocationID  string
	StartAfter  *time.Time
	EndBefore   *time.Time
	CategoryIDs []string
	MaxPrice    *float64
	OnlineOnly  *bool
	Limit       int
}
