package services

import (
	"context"
	"strings"

	"github.com/gatherhq/gatherly/internal/domain/repositories"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

// ResolverService translates human-readable names emitted by the intent
// parser into store identifiers. Names that resolve to nothing are dropped
// silently; they narrow nothing rather than erroring.
type ResolverService struct {
	categories repositories.CategoryRepository
	locations  repositories.LocationRepository
}

// NewResolverService creates a new resolver service
func NewResolverService(categories repositories.CategoryRepository, locations repositories.LocationRepository) *ResolverService {
	return &ResolverService{
		categories: categories,
		locations:  locations,
	}
}

// ResolveCategoryIDs maps category names (or slugs) to identifiers.
// Unresolvable names contribute nothing. Empty input short-circuits
// without querying.
func (s *ResolverService) ResolveCategoryIDs(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}

	categories, err := s.categories.GetByNamesOrSlugs(ctx, names)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	return ids, nil
}

// ResolveLocationID maps a location name to an identifier, or returns ""
// when the name is empty or unknown. An empty result means "no location
// restriction", never "zero results".
func (s *ResolverService) ResolveLocationID(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}

	location, err := s.locations.GetByNameOrSlug(ctx, name)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return "", nil
		}
		return "", err
	}

	return location.ID, nil
}
