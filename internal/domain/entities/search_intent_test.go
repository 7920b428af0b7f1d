package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FillsEveryOptionalField(t *testing.T) {
	// Decoded from a minimal model response with everything omitted.
	var intent SearchIntent
	require.NoError(t, json.Unmarshal([]byte(`{}`), &intent))

	intent.Normalize()

	assert.Equal(t, IntentTypeMixed, intent.PrimaryType)
	assert.NotNil(t, intent.Keywords)
	assert.NotNil(t, intent.EventFilters.Categories)
	assert.NotNil(t, intent.UserFilters.Professions)
	assert.NotNil(t, intent.UserFilters.ExperienceLevels)
	assert.NotNil(t, intent.UserFilters.Interests)
	assert.NotNil(t, intent.CommunityFilters.Topics)
	assert.NotNil(t, intent.Summary.Suggestions)
}

func TestNormalize_PreservesPresentValues(t *testing.T) {
	intent := SearchIntent{
		PrimaryType: IntentTypeEvents,
		Keywords:    []string{"react"},
		EventFilters: EventIntentFilters{
			Categories: []string{"Tech"},
			Location:   "Austin",
		},
	}

	intent.Normalize()

	assert.Equal(t, IntentTypeEvents, intent.PrimaryType)
	assert.Equal(t, []string{"react"}, intent.Keywords)
	assert.Equal(t, []string{"Tech"}, intent.EventFilters.Categories)
	assert.Equal(t, "Austin", intent.EventFilters.Location)
}

func TestValidate_RejectsUnknownPrimaryType(t *testing.T) {
	intent := SearchIntent{PrimaryType: "places"}
	assert.Error(t, intent.Validate())
}

func TestValidate_RejectsNegativePriceMax(t *testing.T) {
	max := -5
	intent := SearchIntent{EventFilters: EventIntentFilters{Price: PriceFilter{Max: &max}}}
	assert.Error(t, intent.Validate())
}

func TestValidate_DropsUnknownExperienceLevels(t *testing.T) {
	intent := SearchIntent{
		UserFilters: UserIntentFilters{
			ExperienceLevels: []string{"SENIOR", "WIZARD", "JUNIOR"},
		},
	}

	require.NoError(t, intent.Validate())
	assert.Equal(t, []string{"SENIOR", "JUNIOR"}, intent.UserFilters.ExperienceLevels)
}

func TestNormalize_RoundTripsThroughJSONWithoutNulls(t *testing.T) {
	var intent SearchIntent
	require.NoError(t, json.Unmarshal([]byte(`{"primary_type":"users"}`), &intent))
	intent.Normalize()

	data, err := json.Marshal(intent)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"keywords":null`)
	assert.NotContains(t, string(data), `"categories":null`)
	assert.NotContains(t, string(data), `"suggestions":null`)
}
