package dto

import "github.com/google/uuid"

type GenerateRequest struct {
	ChildProfileID *uuid.UUID `json:"child_profile_id"`
	Kind           string     `json:"kind" validate:"required,oneof=story rhyme"`
	AgeBand        string     `json:"age_band" validate:"required,oneof=3-5 6-8 9-12"`
	Theme          string     `json:"theme" validate:"required,max=200"`
	Characters     string     `json:"characters" validate:"required,max=300"`
	Emotion        string     `json:"emotion" validate:"required,max=100"`
	Moral          string     `json:"moral" validate:"max=200"`
	Situation      string     `json:"situation" validate:"max=300"`
	Tone           string     `json:"tone" validate:"omitempty,oneof=joyeux rassurant drôle éducatif"`
}
