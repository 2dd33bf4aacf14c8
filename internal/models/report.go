package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusProcessed = "processed"
	ReportStatusDismissed = "dismissed"
)

// Report is a complaint against a published story. Immutable after
// creation except for Status: processed en masse when the story is
// removed, dismissed one by one by an administrator, never reopened.
type Report struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReporterUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_user_id"`
	StoryID        uuid.UUID `gorm:"type:uuid;not null;index" json:"story_id"`
	Reason         string    `gorm:"size:500;not null" json:"reason"`
	Status         string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
