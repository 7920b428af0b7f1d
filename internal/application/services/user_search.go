package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
	"github.com/gatherhq/gatherly/pkg/errors"
)

// UserSearchService retrieves and ranks discoverable users for an
// interpreted query.
type UserSearchService struct {
	users    repositories.UserRepository
	resolver *ResolverService
}

// NewUserSearchService creates a new user search service
func NewUserSearchService(users repositories.UserRepository, resolver *ResolverService) *UserSearchService {
	return &UserSearchService{
		users:    users,
		resolver: resolver,
	}
}

// Search retrieves up to the request limit of discoverable users, scores
// each on interest overlap and experience-level match, and returns them
// ordered by descending relevance.
func (s *UserSearchService) Search(ctx context.Context, intent *entities.SearchIntent, req *entities.StirRequest) ([]entities.ScoredUser, error) {
	location := intent.UserFilters.Location
	if location == "" {
		location = req.Location
	}
	locationID, err := s.resolver.ResolveLocationID(ctx, location)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve user location", err)
	}

	interestIDs, err := s.resolver.ResolveCategoryIDs(ctx, intent.UserFilters.Interests)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve user interests", err)
	}

	candidates, err := s.users.Discover(ctx, repositories.UserDiscoverFilter{
		LocationID: locationID,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to retrieve user candidates", err)
	}

	scored := make([]entities.ScoredUser, 0, len(candidates))
	for _, user := range candidates {
		score, reason := scoreUser(user, interestIDs, intent.UserFilters.ExperienceLevels)
		scored = append(scored, entities.ScoredUser{
			ID:              user.ID,
			Name:            user.Name,
			Profession:      user.Profession,
			ExperienceLevel: user.ExperienceLevel,
			LocationID:      user.LocationID,
			Score:           score,
			Reason:          reason,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	log.Ctx(ctx).Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(scored)).
		Msg("User search completed")

	return scored, nil
}
