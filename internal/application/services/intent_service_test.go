package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/providers"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

func TestParseIntent_NormalizesSparseResponse(t *testing.T) {
	llm := &fakeLanguageModel{response: []byte(`{"keywords":["react"]}`)}
	svc := NewIntentService(llm)

	intent, err := svc.ParseIntent(context.Background(), "react meetups")
	require.NoError(t, err)

	assert.Equal(t, entities.IntentTypeMixed, intent.PrimaryType)
	assert.Equal(t, []string{"react"}, intent.Keywords)

	// Every optional array must be present after parsing, never nil.
	assert.NotNil(t, intent.EventFilters.Categories)
	assert.NotNil(t, intent.UserFilters.Professions)
	assert.NotNil(t, intent.UserFilters.ExperienceLevels)
	assert.NotNil(t, intent.UserFilters.Interests)
	assert.NotNil(t, intent.CommunityFilters.Topics)
	assert.NotNil(t, intent.Summary.Suggestions)
}

func TestParseIntent_PreservesPopulatedFields(t *testing.T) {
	llm := &fakeLanguageModel{response: []byte(`{
		"primary_type": "events",
		"keywords": ["react", "meetup"],
		"event_filters": {"categories": ["Technology"], "location": "Lagos", "price": {"max": 50}},
		"summary": {"interpretation": "React meetups near Lagos", "suggestions": ["React workshops"]}
	}`)}
	svc := NewIntentService(llm)

	intent, err := svc.ParseIntent(context.Background(), "react meetups in lagos under $50")
	require.NoError(t, err)

	assert.Equal(t, entities.IntentTypeEvents, intent.PrimaryType)
	assert.Equal(t, []string{"react", "meetup"}, intent.Keywords)
	assert.Equal(t, []string{"Technology"}, intent.EventFilters.Categories)
	assert.Equal(t, "Lagos", intent.EventFilters.Location)
	require.NotNil(t, intent.EventFilters.Price.Max)
	assert.Equal(t, 50, *intent.EventFilters.Price.Max)
	assert.Equal(t, "React meetups near Lagos", intent.Summary.Interpretation)
}

func TestParseIntent_NoProviderIsUnavailable(t *testing.T) {
	svc := NewIntentService(nil)

	_, err := svc.ParseIntent(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
	assert.ErrorIs(t, err, providers.ErrLanguageModelUnavailable)
}

func TestParseIntent_MalformedResponseIsValidationError(t *testing.T) {
	llm := &fakeLanguageModel{err: fmt.Errorf("%w: not json", providers.ErrResponseMalformed)}
	svc := NewIntentService(llm)

	_, err := svc.ParseIntent(context.Background(), "react meetups")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestParseIntent_ProviderFailureIsExternalError(t *testing.T) {
	llm := &fakeLanguageModel{err: errors.New("upstream timeout")}
	svc := NewIntentService(llm)

	_, err := svc.ParseIntent(context.Background(), "react meetups")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestParseIntent_InvalidPrimaryTypeRejected(t *testing.T) {
	llm := &fakeLanguageModel{response: []byte(`{"primary_type":"venues"}`)}
	svc := NewIntentService(llm)

	_, err := svc.ParseIntent(context.Background(), "venues downtown")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestParseIntent_UnknownExperienceLevelsDropped(t *testing.T) {
	llm := &fakeLanguageModel{response: []byte(`{
		"primary_type": "users",
		"user_filters": {"experience_levels": ["SENIOR", "WIZARD", "MID"]}
	}`)}
	svc := NewIntentService(llm)

	intent, err := svc.ParseIntent(context.Background(), "senior engineers")
	require.NoError(t, err)
	assert.Equal(t, []string{"SENIOR", "MID"}, intent.UserFilters.ExperienceLevels)
}

func TestParseIntent_CachesByNormalizedQuery(t *testing.T) {
	llm := &fakeLanguageModel{response: []byte(`{"primary_type":"events"}`)}
	cache := newFakeCache()
	svc := NewIntentService(llm)
	svc.SetCache(cache)

	_, err := svc.ParseIntent(context.Background(), "  React Meetups ")
	require.NoError(t, err)
	assert.Equal(t, int32(1), llm.calls.Load())
	assert.Equal(t, 1, cache.sets)

	// Same query modulo case and whitespace hits the cache.
	intent, err := svc.ParseIntent(context.Background(), "react meetups")
	require.NoError(t, err)
	assert.Equal(t, int32(1), llm.calls.Load())
	assert.Equal(t, entities.IntentTypeEvents, intent.PrimaryType)
	assert.NotNil(t, intent.Keywords)
}
