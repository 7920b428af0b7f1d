package entities

import "time"

// Community represents a community in the system
type Community struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Topic       string    `json:"topic,omitempty" db:"topic"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	LocationID  string    `json:"location_id,omitempty" db:"location_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CommunityMembership represents a user's membership in a community
type CommunityMembership struct {
	CommunityID string    `json:"community_id" db:"community_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Role        string    `json:"role" db:"role"` // member, moderator, owner
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
