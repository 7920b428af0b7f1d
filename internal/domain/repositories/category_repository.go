package repositories

import (
	"context"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	// GetByNamesOrSlugs retrieves categories whose name or slug exactly
	// matches any of the given values (case-sensitive). Values that match
	// nothing are simply absent from the result.
	GetByNamesOrSlugs(ctx context.Context, values []string) ([]*entities.Category, error)

	// List retrieves all categories
	List(ctx context.Context) ([]*entities.Category, error)
}

// LocationRepository defines the interface for location lookups
type LocationRepository interface {
	// GetByNameOrSlug retrieves the first location whose name matches
	// case-insensitively or whose slug matches exactly. Returns a
	// not-found error when nothing matches.
	GetByNameOrSlug(ctx context.Context, value string) (*entities.Location, error)
}
