package services

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/providers"
	"github.com/gatherhq/gatherly/internal/infrastructure/observability"
	"github.com/gatherhq/gatherly/pkg/errors"
)

// Request bounds
const (
	maxQueryLength = 500
	defaultLimit   = 10
	maxLimit       = 50
)

type intentParser interface {
	ParseIntent(ctx context.Context, query string) (*entities.SearchIntent, error)
}

type eventSearcher interface {
	Search(ctx context.Context, intent *entities.SearchIntent, req *entities.StirRequest, userCtx *entities.UserContext) ([]entities.ScoredEvent, error)
}

type userSearcher interface {
	Search(ctx context.Context, intent *entities.SearchIntent, req *entities.StirRequest) ([]entities.ScoredUser, error)
}

type communitySearcher interface {
	Search(ctx context.Context, intent *entities.SearchIntent, req *entities.StirRequest) ([]entities.ScoredCommunity, error)
}

// StirService runs a natural-language search end to end: parse the query
// into an intent, load the requester's context, fan out to the selected
// entity searches, and assemble the combined result.
type StirService struct {
	intents     intentParser
	events      eventSearcher
	users       userSearcher
	communities communitySearcher
	userContext providers.UserContextProvider

	metricsOnce sync.Once
	metrics     *observability.Metrics
}

// NewStirService creates a new stir service
func NewStirService(
	intents intentParser,
	events eventSearcher,
	users userSearcher,
	communities communitySearcher,
	userContext providers.UserContextProvider,
) *StirService {
	return &StirService{
		intents:     intents,
		events:      events,
		users:       users,
		communities: communities,
		userContext: userContext,
	}
}

// Search executes a stir search. The request type selects which entity
// searches run; unselected result lists come back empty, never null. Any
// failing branch fails the whole search so callers never see partial
// results presented as complete.
func (s *StirService) Search(ctx context.Context, req *entities.StirRequest) (*entities.StirResult, error) {
	start := time.Now()

	if err := normalizeRequest(req); err != nil {
		return nil, err
	}

	intent, err := s.intents.ParseIntent(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	var userCtx *entities.UserContext
	if req.UserID != "" && s.userContext != nil {
		userCtx, err = s.userContext.GetUserContext(ctx, req.UserID)
		if err != nil {
			return nil, errors.NewInternalError("failed to load user context", err)
		}
	}

	result := &entities.StirResult{
		Events:      []entities.ScoredEvent{},
		Users:       []entities.ScoredUser{},
		Communities: []entities.ScoredCommunity{},
		SearchSummary: entities.SearchSummary{
			Interpretation: intent.Summary.Interpretation,
			Filters:        entities.SearchFilters{Intent: intent},
			Suggestions:    intent.Summary.Suggestions,
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	if req.Type == entities.SearchTypeAll || req.Type == entities.SearchTypeEvents {
		g.Go(func() error {
			events, err := s.events.Search(gctx, intent, req, userCtx)
			if err != nil {
				return err
			}
			result.Events = events
			return nil
		})
	}

	if req.Type == entities.SearchTypeAll || req.Type == entities.SearchTypeUsers {
		g.Go(func() error {
			users, err := s.users.Search(gctx, intent, req)
			if err != nil {
				return err
			}
			result.Users = users
			return nil
		})
	}

	if req.Type == entities.SearchTypeAll || req.Type == entities.SearchTypeCommunities {
		g.Go(func() error {
			communities, err := s.communities.Search(gctx, intent, req)
			if err != nil {
				return err
			}
			result.Communities = communities
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.recordSearch(ctx, req.Type, time.Since(start))

	log.Ctx(ctx).Info().
		Str("type", req.Type).
		Int("events", len(result.Events)).
		Int("users", len(result.Users)).
		Int("communities", len(result.Communities)).
		Dur("duration", time.Since(start)).
		Msg("Stir search completed")

	return result, nil
}

// normalizeRequest validates and defaults the request in place.
func normalizeRequest(req *entities.StirRequest) error {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return errors.NewValidationError("query is required")
	}
	// Bound is in characters, not bytes, so multi-byte queries get the
	// same budget.
	if utf8.RuneCountInString(req.Query) > maxQueryLength {
		return errors.NewValidationError("query exceeds 500 characters")
	}

	switch req.Type {
	case "":
		req.Type = entities.SearchTypeAll
	case entities.SearchTypeAll, entities.SearchTypeEvents, entities.SearchTypeUsers, entities.SearchTypeCommunities:
	default:
		return errors.NewValidationError("type must be one of all, events, users, communities")
	}

	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}

	return nil
}

func (s *StirService) recordSearch(ctx context.Context, searchType string, elapsed time.Duration) {
	s.metricsOnce.Do(func() {
		m, err := observability.InitMetrics()
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("Failed to initialize search metrics")
			return
		}
		s.metrics = m
	})
	if s.metrics == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("search.type", searchType))
	s.metrics.SearchCount.Add(ctx, 1, attrs)
	s.metrics.SearchDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}
