package entities

import "time"

// Search result types a caller can request
const (
	SearchTypeAll         = "all"
	SearchTypeEvents      = "events"
	SearchTypeUsers       = "users"
	SearchTypeCommunities = "communities"
)

// StirRequest is the input to a Stir search.
type StirRequest struct {
	Query     string     `json:"query"`
	Type      string     `json:"type,omitempty"`
	Location  string     `json:"location,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	UserID    string     `json:"-"`
}

// ScoredEvent is an event search candidate with its relevance score.
type ScoredEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	LocationID  string    `json:"location_id,omitempty"`
	CommunityID string    `json:"community_id,omitempty"`
	IsOnline    bool      `json:"is_online"`
	Price       float64   `json:"price"`
	StartsAt    time.Time `json:"starts_at"`
	Score       float64   `json:"score"`
	Reason      string    `json:"reason"`
}

// ScoredUser is a user search candidate with its relevance score.
type ScoredUser struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Profession      string  `json:"profession,omitempty"`
	ExperienceLevel string  `json:"experience_level,omitempty"`
	LocationID      string  `json:"location_id,omitempty"`
	Score           float64 `json:"score"`
	Reason          string  `json:"reason"`
}

// ScoredCommunity is a community search candidate with its relevance score.
type ScoredCommunity struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Topic          string  `json:"topic,omitempty"`
	IsPublic       bool    `json:"is_public"`
	MatchingEvents int     `json:"matching_events"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

// SearchSummary explains how the query was understood.
type SearchSummary struct {
	Interpretation string        `json:"interpretation"`
	Filters        SearchFilters `json:"filters"`
	Suggestions    []string      `json:"suggestions"`
}

// SearchFilters wraps the parsed intent for the response payload.
type SearchFilters struct {
	Intent *SearchIntent `json:"intent"`
}

// StirResult is the combined output of a Stir search. Entity lists are
// always present; searches not selected by the request type come back as
// empty slices, never null.
type StirResult struct {
	Events        []ScoredEvent     `json:"events"`
	Users         []ScoredUser      `json:"users"`
	Communities   []ScoredCommunity `json:"communities"`
	SearchSummary SearchSummary     `json:"searchSummary"`
}

// Interest is a user's weighted interest in a category.
type Interest struct {
	CategoryID string `json:"category_id"`
	Level      int    `json:"level"` // 0-10
}

// Membership is a user's community membership as seen by scoring.
type Membership struct {
	CommunityID string `json:"community_id"`
	Role        string `json:"role"`
}

// UserContext is the requesting user's context consumed by scoring.
// It is read-only input; a nil context means an anonymous caller and all
// personalization terms contribute zero.
type UserContext struct {
	UserID      string       `json:"user_id"`
	LocationID  string       `json:"location_id,omitempty"`
	Interests   []Interest   `json:"interests"`
	Communities []Membership `json:"communities"`
}
