package entities

import "time"

// Experience levels
const (
	ExperienceJunior    = "JUNIOR"
	ExperienceMid       = "MID"
	ExperienceSenior    = "SENIOR"
	ExperienceExecutive = "EXECUTIVE"
)

// User represents a user in the system
type User struct {
	ID              string    `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	Name            string    `json:"name" db:"name"`
	Profession      string    `json:"profession,omitempty" db:"profession"`
	ExperienceLevel string    `json:"experience_level,omitempty" db:"experience_level"`
	LocationID      string    `json:"location_id,omitempty" db:"location_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// InterestCategoryIDs carries the user's interest categories when the
	// adapter loads them alongside the row.
	InterestCategoryIDs []string `json:"interest_category_ids,omitempty"`
}

// IsValidExperienceLevel reports whether level is one of the known values.
func IsValidExperienceLevel(level string) bool {
	switch level {
	case ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}
