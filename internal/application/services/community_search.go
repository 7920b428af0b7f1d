package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
	"github.com/gatherhq/gatherly/pkg/errors"
)

// CommunitySearchService retrieves and ranks communities for an interpreted
// query. Community relevance is activity-based: the more published events a
// community has matching the query's constraints, the higher it scores.
type CommunitySearchService struct {
	communities repositories.CommunityRepository
	resolver    *ResolverService
}

// NewCommunitySearchService creates a new community search service
func NewCommunitySearchService(communities repositories.CommunityRepository, resolver *ResolverService) *CommunitySearchService {
	return &CommunitySearchService{
		communities: communities,
		resolver:    resolver,
	}
}

// Search retrieves up to the request limit of communities with their
// matching published event counts and returns them ordered by descending
// relevance. A public-only filter is applied only when the intent explicitly
// asks for public communities.
func (s *CommunitySearchService) Search(ctx context.Context, intent *entities.SearchIntent, req *entities.StirRequest) ([]entities.ScoredCommunity, error) {
	location := intent.CommunityFilters.Location
	if location == "" {
		location = req.Location
	}
	locationID, err := s.resolver.ResolveLocationID(ctx, location)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve community location", err)
	}

	categoryIDs, err := s.resolver.ResolveCategoryIDs(ctx, intent.CommunityFilters.Topics)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve community topics", err)
	}

	matches, err := s.communities.ListWithMatchingEvents(ctx, repositories.CommunityMatchFilter{
		OnlyPublic:  intent.CommunityFilters.IsPublic != nil && *intent.CommunityFilters.IsPublic,
		LocationID:  locationID,
		CategoryIDs: categoryIDs,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to retrieve community candidates", err)
	}

	scored := make([]entities.ScoredCommunity, 0, len(matches))
	for _, match := range matches {
		score, reason := scoreCommunity(match.MatchingEvents)
		scored = append(scored, entities.ScoredCommunity{
			ID:             match.Community.ID,
			Name:           match.Community.Name,
			Topic:          match.Community.Topic,
			IsPublic:       match.Community.IsPublic,
			MatchingEvents: match.MatchingEvents,
			Score:          score,
			Reason:         reason,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	log.Ctx(ctx).Debug().
		Int("candidates", len(matches)).
		Int("returned", len(scored)).
		Msg("Community search completed")

	return scored, nil
}
