package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProfileTypeParent = "parent"
	ProfileTypeChild  = "child"
)

// AgeBands are the three fixed audience categories. They parameterize
// both generation style and content filtering.
var AgeBands = []string{"3-5", "6-8", "9-12"}

func ValidAgeBand(band string) bool {
	for _, b := range AgeBands {
		if b == band {
			return true
		}
	}
	return false
}

// Profile belongs to a guardian. Child profiles carry an age band and can
// be attached to stories; the parent profile is created at registration.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_profiles_user_type" json:"user_id"`
	Type      string    `gorm:"size:20;not null;index:idx_profiles_user_type" json:"type"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	AgeBand   string    `gorm:"size:10" json:"age_band,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
