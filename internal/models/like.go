package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is the engagement marker. The unique index on (user_id, story_id)
// is what makes concurrent likes collapse to a single row; application
// code never read-then-writes around it.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_story" json:"user_id"`
	StoryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_story;index" json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
}
