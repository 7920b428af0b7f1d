package entities

import "fmt"

// Primary result types an interpreted query can target
const (
	IntentTypeEvents      = "events"
	IntentTypeUsers       = "users"
	IntentTypeCommunities = "communities"
	IntentTypeMixed       = "mixed"
)

// SearchIntent is the structured interpretation of a free-text search query.
// After Normalize has been called, no slice field is nil and no nested
// struct is missing. Downstream code relies on that and never checks.
type SearchIntent struct {
	PrimaryType      string                 `json:"primary_type"`
	Keywords         []string               `json:"keywords"`
	EventFilters     EventIntentFilters     `json:"event_filters"`
	UserFilters      UserIntentFilters      `json:"user_filters"`
	CommunityFilters CommunityIntentFilters `json:"community_filters"`
	Summary          IntentSummary          `json:"summary"`
}

// EventIntentFilters holds event-specific filters extracted from the query.
type EventIntentFilters struct {
	Categories []string    `json:"categories"`
	Price      PriceFilter `json:"price"`
	Location   string      `json:"location,omitempty"`
	DateRange  DateRange   `json:"date_range"`
	Online     *bool       `json:"online,omitempty"`
}

// PriceFilter bounds event prices.
type PriceFilter struct {
	Max *int `json:"max,omitempty"`
}

// DateRange holds ISO dates; either side may be empty.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// UserIntentFilters holds user-specific filters extracted from the query.
type UserIntentFilters struct {
	Professions      []string `json:"professions"`
	ExperienceLevels []string `json:"experience_levels"`
	Interests        []string `json:"interests"`
	Location         string   `json:"location,omitempty"`
}

// CommunityIntentFilters holds community-specific filters extracted from the query.
type CommunityIntentFilters struct {
	Topics   []string `json:"topics"`
	Location string   `json:"location,omitempty"`
	IsPublic *bool    `json:"is_public,omitempty"`
}

// IntentSummary is the human-readable interpretation attached to results.
type IntentSummary struct {
	Interpretation string           `json:"interpretation"`
	Extracted      ExtractedDetails `json:"extracted"`
	Suggestions    []string         `json:"suggestions"`
}

// ExtractedDetails surfaces the notable extracted values for display.
type ExtractedDetails struct {
	Location  string     `json:"location,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
	Budget    *int       `json:"budget,omitempty"`
}

// Validate checks the fields the model cannot be trusted to get right.
// Unknown experience levels are dropped rather than rejected: a bad value
// in one list should not sink the whole interpretation.
func (i *SearchIntent) Validate() error {
	switch i.PrimaryType {
	case "", IntentTypeEvents, IntentTypeUsers, IntentTypeCommunities, IntentTypeMixed:
	default:
		return fmt.Errorf("invalid primary_type %q", i.PrimaryType)
	}

	if i.EventFilters.Price.Max != nil && *i.EventFilters.Price.Max < 0 {
		return fmt.Errorf("negative price max %d", *i.EventFilters.Price.Max)
	}

	if len(i.UserFilters.ExperienceLevels) > 0 {
		kept := i.UserFilters.ExperienceLevels[:0]
		for _, level := range i.UserFilters.ExperienceLevels {
			if IsValidExperienceLevel(level) {
				kept = append(kept, level)
			}
		}
		i.UserFilters.ExperienceLevels = kept
	}

	return nil
}

// Normalize fills defaults so no optional field is ever absent: every nil
// slice becomes empty and primary_type falls back to mixed. Must be called
// on every parsed intent before it reaches the entity searches.
func (i *SearchIntent) Normalize() {
	if i.PrimaryType == "" {
		i.PrimaryType = IntentTypeMixed
	}
	if i.Keywords == nil {
		i.Keywords = []string{}
	}
	if i.EventFilters.Categories == nil {
		i.EventFilters.Categories = []string{}
	}
	if i.UserFilters.Professions == nil {
		i.UserFilters.Professions = []string{}
	}
	if i.UserFilters.ExperienceLevels == nil {
		i.UserFilters.ExperienceLevels = []string{}
	}
	if i.UserFilters.Interests == nil {
		i.UserFilters.Interests = []string{}
	}
	if i.CommunityFilters.Topics == nil {
		i.CommunityFilters.Topics = []string{}
	}
	if i.Summary.Suggestions == nil {
		i.Summary.Suggestions = []string{}
	}
}
