package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
	"github.com/gatherhq/gatherly/pkg/errors"
)

// EventSearchService retrieves and ranks events for an interpreted query.
type EventSearchService struct {
	events   repositories.EventRepository
	resolver *ResolverService
}

// NewEventSearchService creates a new event search service
func NewEventSearchService(events repositories.EventRepository, resolver *ResolverService) *EventSearchService {
	return &EventSearchService{
		events:   events,
		resolver: resolver,
	}
}

// Search retrieves up to the request limit of candidate events for the
// intent, scores each against the requester's context, and returns them
// ordered by descending relevance. Candidates that score zero are still
// returned; relevance ordering is the caller's signal, not a cutoff.
func (s *EventSearchService) Search(ctx context.Context, intent *entities.SearchIntent, req *entities.StirRequest, userCtx *entities.UserContext) ([]entities.ScoredEvent, error) {
	categoryIDs, err := s.resolver.ResolveCategoryIDs(ctx, intent.EventFilters.Categories)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve event categories", err)
	}

	location := intent.EventFilters.Location
	if location == "" {
		location = req.Location
	}
	locationID, err := s.resolver.ResolveLocationID(ctx, location)
	if err != nil {
		return nil, errors.NewInternalError("failed to resolve event location", err)
	}

	dateRange := intent.EventFilters.DateRange
	if dateRange.Start == "" && dateRange.End == "" && req.DateRange != nil {
		dateRange = *req.DateRange
	}

	filter := repositories.EventSearchFilter{
		LocationID:  locationID,
		StartAfter:  parseSearchDate(dateRange.Start),
		EndBefore:   parseSearchDate(dateRange.End),
		CategoryIDs: categoryIDs,
		OnlineOnly:  intent.EventFilters.Online,
		Limit:       req.Limit,
	}
	if intent.EventFilters.Price.Max != nil {
		maxPrice := float64(*intent.EventFilters.Price.Max)
		filter.MaxPrice = &maxPrice
	}

	candidates, err := s.events.FindCandidates(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError("failed to retrieve event candidates", err)
	}

	scored := make([]entities.ScoredEvent, 0, len(candidates))
	for _, event := range candidates {
		score, reason := scoreEvent(event, intent.Keywords, userCtx)
		scored = append(scored, entities.ScoredEvent{
			ID:          event.ID,
			Title:       event.Title,
			Status:      event.Status,
			LocationID:  event.LocationID,
			CommunityID: event.CommunityID,
			IsOnline:    event.IsOnline,
			Price:       event.Price,
			StartsAt:    event.StartsAt,
			Score:       score,
			Reason:      reason,
		})
	}

	// Stable sort keeps the store's soonest-first order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	log.Ctx(ctx).Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(scored)).
		Msg("Event search completed")

	return scored, nil
}

// parseSearchDate accepts the model's plain ISO dates and full timestamps.
// Unparseable values drop the bound rather than failing the search.
func parseSearchDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	return nil
}
