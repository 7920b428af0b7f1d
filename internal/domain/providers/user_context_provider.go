package providers

import (
	"context"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

// UserContextProvider supplies the requesting user's search context.
type UserContextProvider interface {
	// GetUserContext returns the user's location, interests and community
	// memberships. A nil context (no error) means the user is unknown and
	// the caller should score without personalization.
	GetUserContext(ctx context.Context, userID string) (*entities.UserContext, error)
}
