package repositories

import (
	"context"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// Discover retrieves a bounded set of discoverable users matching the
	// filter, with interest categories loaded. A user is discoverable only
	// with at least one RSVP or one community membership; users with zero
	// platform activity are never returned.
	Discover(ctx context.Context, filter UserDiscoverFilter) ([]*entities.User, error)
}

// UserDiscoverFilter defines parameters for user discovery
type UserDiscoverFilter struct {
	LocationID string
	Limit      int
}
