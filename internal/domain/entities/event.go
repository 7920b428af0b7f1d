package entities

import "time"

// Event statuses
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
)

// Event represents an event in the system
type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	LocationID  string    `json:"location_id,omitempty" db:"location_id"`
	CommunityID string    `json:"community_id,omitempty" db:"community_id"`
	IsOnline    bool      `json:"is_online" db:"is_online"`
	Price       float64   `json:"price" db:"price"`
	Currency    string    `json:"currency" db:"currency"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time `json:"ends_at" db:"ends_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// CategoryIDs carries the event's category memberships when the
	// adapter loads them alongside the row.
	CategoryIDs []string `json:"category_ids,omitempty"`
}

// RSVP represents a user's RSVP to an event
type RSVP struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	EventID   string    `json:"event_id" db:"event_id"`
	Status    string    `json:"status" db:"status"` // going, interested, declined
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
