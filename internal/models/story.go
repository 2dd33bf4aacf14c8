package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	KindStory = "story"
	KindRhyme = "rhyme"

	StoryStatusDraft     = "draft"
	StoryStatusPublished = "published"
	StoryStatusRemoved   = "removed"
)

// StoryInputs are the structured generation inputs the story was composed
// from. They are kept so the feed can filter on theme and the owner can
// regenerate with tweaks.
type StoryInputs struct {
	Theme      string `json:"theme"`
	Characters string `json:"characters"`
	Emotion    string `json:"emotion"`
	Moral      string `json:"moral,omitempty"`
	Situation  string `json:"situation,omitempty"`
	Tone       string `json:"tone,omitempty"`
}

// NewStoryInputs wraps inputs for the JSONB column.
func NewStoryInputs(in StoryInputs) datatypes.JSONType[StoryInputs] {
	return datatypes.NewJSONType(in)
}

// Story is one story or rhyme. Status moves draft → published → removed;
// publishing is one-way and removal is terminal. The body of a removed
// story stays in the row but is never served to non-owners.
type Story struct {
	ID             uuid.UUID                          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID                          `gorm:"type:uuid;not null;index" json:"user_id"`
	ChildProfileID *uuid.UUID                         `gorm:"type:uuid" json:"child_profile_id,omitempty"`
	Kind           string                             `gorm:"size:20;not null" json:"kind"`
	Title          string                             `gorm:"size:255;not null" json:"title"`
	Content        string                             `gorm:"type:text;not null" json:"content"`
	Inputs         datatypes.JSONType[StoryInputs]    `gorm:"type:jsonb" json:"inputs"`
	AgeBand        string                             `gorm:"size:10;not null" json:"age_band"`
	Status         string                             `gorm:"size:20;not null;default:'draft';index:idx_stories_status_published,priority:1" json:"status"`
	PublishedAt    *time.Time                         `gorm:"index:idx_stories_status_published,priority:2,sort:desc" json:"published_at,omitempty"`
	CreatedAt      time.Time                          `json:"created_at"`
	UpdatedAt      time.Time                          `json:"updated_at"`
}
