package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/prompt"
)

// TextGenerator is the outbound generation dependency. Production wires
// the Ollama client; tests substitute a stub.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, rawInputs []string) (string, error)
	Model() string
}

// GenerateService turns validated creation inputs into a generated,
// safety-screened story body plus a default title. Nothing is persisted:
// the guardian reviews the text and saves it as a draft explicitly.
type GenerateService struct {
	generator TextGenerator
}

func NewGenerateService(generator TextGenerator) *GenerateService {
	return &GenerateService{generator: generator}
}

type GenerateParams struct {
	ChildProfileID *uuid.UUID
	Kind           string
	AgeBand        string
	Theme          string
	Characters     string
	Emotion        string
	Moral          string
	Situation      string
	Tone           string
}

type GenerateResult struct {
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Inputs         models.StoryInputs `json:"inputs"`
	Kind           string             `json:"kind"`
	AgeBand        string             `json:"age_band"`
	ChildProfileID *uuid.UUID         `json:"child_profile_id,omitempty"`
}

func (s *GenerateService) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	composed := prompt.Compose(prompt.Params{
		Kind:       params.Kind,
		AgeBand:    params.AgeBand,
		Theme:      params.Theme,
		Characters: params.Characters,
		Emotion:    params.Emotion,
		Moral:      params.Moral,
		Situation:  params.Situation,
		Tone:       params.Tone,
	})

	// Only the free-text fields are screened; kind/ageBand/tone are
	// closed enumerations validated upstream.
	rawInputs := []string{params.Theme, params.Characters, params.Emotion, params.Moral, params.Situation}
	content, err := s.generator.Generate(ctx, composed, rawInputs)
	if err != nil {
		return nil, err
	}

	title := "Comptine : " + params.Theme
	if params.Kind == models.KindStory {
		title = "Histoire : " + params.Theme
	}

	return &GenerateResult{
		Title:   title,
		Content: content,
		Inputs: models.StoryInputs{
			Theme:      params.Theme,
			Characters: params.Characters,
			Emotion:    params.Emotion,
			Moral:      params.Moral,
			Situation:  params.Situation,
			Tone:       params.Tone,
		},
		Kind:           params.Kind,
		AgeBand:        params.AgeBand,
		ChildProfileID: params.ChildProfileID,
	}, nil
}
