package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/providers"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

const intentCacheTTLSeconds = 86400 // 24 hours

// IntentService turns a free-text query into a normalized SearchIntent via
// the language model.
type IntentService struct {
	llm   providers.LanguageModelProvider
	cache providers.CacheProvider
}

// NewIntentService creates a new intent service. A nil provider is allowed
// and makes every parse fail with an unavailable error.
func NewIntentService(llm providers.LanguageModelProvider) *IntentService {
	return &IntentService{llm: llm}
}

// SetCache sets the cache provider for parsed intents.
func (s *IntentService) SetCache(cache providers.CacheProvider) {
	s.cache = cache
}

// ParseIntent interprets the query and returns a fully normalized intent:
// every optional array is present (possibly empty) and every nested struct
// exists, so downstream code never checks for absence.
func (s *IntentService) ParseIntent(ctx context.Context, query string) (*entities.SearchIntent, error) {
	if s.llm == nil {
		return nil, &apperrors.AppError{
			Type:    apperrors.ErrorTypeUnavailable,
			Message: "intent parsing requires a language model",
			Err:     providers.ErrLanguageModelUnavailable,
		}
	}

	q := strings.TrimSpace(query)
	cacheKey := "stir_intent:" + strings.ToLower(q)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached entities.SearchIntent
			if json.Unmarshal(data, &cached) == nil {
				cached.Normalize()
				return &cached, nil
			}
		}
	}

	raw, err := s.llm.Generate(ctx, buildIntentUserPrompt(q), intentSystemPrompt, intentOutputSchema)
	if err != nil {
		if errors.Is(err, providers.ErrResponseMalformed) {
			return nil, &apperrors.AppError{
				Type:    apperrors.ErrorTypeValidation,
				Message: "language model returned a malformed intent",
				Err:     err,
			}
		}
		return nil, apperrors.NewExternalError("intent parsing failed", err)
	}

	var intent entities.SearchIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, &apperrors.AppError{
			Type:    apperrors.ErrorTypeValidation,
			Message: "language model returned a malformed intent",
			Err:     err,
		}
	}
	if err := intent.Validate(); err != nil {
		return nil, &apperrors.AppError{
			Type:    apperrors.ErrorTypeValidation,
			Message: "language model returned an invalid intent",
			Err:     err,
		}
	}

	intent.Normalize()

	log.Debug().
		Str("query", q).
		Str("primary_type", intent.PrimaryType).
		Int("keywords", len(intent.Keywords)).
		Msg("parsed search intent")

	if s.cache != nil {
		if data, err := json.Marshal(&intent); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, intentCacheTTLSeconds)
		}
	}

	return &intent, nil
}
