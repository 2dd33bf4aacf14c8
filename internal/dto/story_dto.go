package dto

import "github.com/google/uuid"

type StoryInputsPayload struct {
	Theme      string `json:"theme" validate:"required,max=200"`
	Characters string `json:"characters" validate:"max=300"`
	Emotion    string `json:"emotion" validate:"max=100"`
	Moral      string `json:"moral" validate:"max=200"`
	Situation  string `json:"situation" validate:"max=300"`
	Tone       string `json:"tone" validate:"omitempty,oneof=joyeux rassurant drôle éducatif"`
}

type CreateStoryRequest struct {
	ChildProfileID *uuid.UUID         `json:"child_profile_id"`
	Kind           string             `json:"kind" validate:"required,oneof=story rhyme"`
	Title          string             `json:"title" validate:"required,max=255"`
	Content        string             `json:"content" validate:"required"`
	Inputs         StoryInputsPayload `json:"inputs"`
	AgeBand        string             `json:"age_band" validate:"required,oneof=3-5 6-8 9-12"`
}

// UpdateStoryRequest carries a partial edit; nil fields are left alone.
type UpdateStoryRequest struct {
	Title   *string             `json:"title" validate:"omitempty,max=255"`
	Content *string             `json:"content"`
	Inputs  *StoryInputsPayload `json:"inputs"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type LikeResponse struct {
	StoryID   uuid.UUID `json:"story_id"`
	LikeCount int64     `json:"like_count"`
	Liked     bool      `json:"liked"`
}
