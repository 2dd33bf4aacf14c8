package services

import (
	"context"
	"strings"
	"testing"

	"github.com/petitconteur/backend/internal/generation"
	"github.com/petitconteur/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	prompt    string
	rawInputs []string
	content   string
	err       error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, rawInputs []string) (string, error) {
	g.prompt = prompt
	g.rawInputs = rawInputs
	if g.err != nil {
		return "", g.err
	}
	return g.content, nil
}

func (g *stubGenerator) Model() string { return "llama3.2" }

func TestGenerateStoryTitle(t *testing.T) {
	gen := &stubGenerator{content: "Il était une fois."}
	svc := NewGenerateService(gen)

	res, err := svc.Generate(context.Background(), GenerateParams{
		Kind:    models.KindStory,
		AgeBand: "3-5",
		Theme:   "la forêt",
	})
	require.NoError(t, err)
	assert.Equal(t, "Histoire : la forêt", res.Title)
	assert.Equal(t, "Il était une fois.", res.Content)
}

func TestGenerateRhymeTitle(t *testing.T) {
	gen := &stubGenerator{content: "Petit lapin, gros câlin."}
	svc := NewGenerateService(gen)

	res, err := svc.Generate(context.Background(), GenerateParams{
		Kind:    models.KindRhyme,
		AgeBand: "3-5",
		Theme:   "les lapins",
	})
	require.NoError(t, err)
	assert.Equal(t, "Comptine : les lapins", res.Title)
}

func TestGenerateScreensFreeTextFieldsOnly(t *testing.T) {
	gen := &stubGenerator{content: "ok"}
	svc := NewGenerateService(gen)

	_, err := svc.Generate(context.Background(), GenerateParams{
		Kind:       models.KindStory,
		AgeBand:    "6-8",
		Theme:      "la mer",
		Characters: "un dauphin",
		Emotion:    "joie",
		Moral:      "partager",
		Situation:  "une tempête approche",
		Tone:       "rassurant",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"la mer", "un dauphin", "joie", "partager", "une tempête approche"}, gen.rawInputs)
	assert.True(t, strings.Contains(gen.prompt, "Thème : la mer."))
}

func TestGeneratePropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: generation.ErrUnsafeInput}
	svc := NewGenerateService(gen)

	_, err := svc.Generate(context.Background(), GenerateParams{
		Kind:    models.KindStory,
		AgeBand: "3-5",
		Theme:   "violence",
	})
	assert.ErrorIs(t, err, generation.ErrUnsafeInput)
}

func TestGenerateEchoesInputs(t *testing.T) {
	gen := &stubGenerator{content: "texte"}
	svc := NewGenerateService(gen)

	res, err := svc.Generate(context.Background(), GenerateParams{
		Kind:       models.KindStory,
		AgeBand:    "9-12",
		Theme:      "l'espace",
		Characters: "une astronaute",
		Emotion:    "curiosité",
		Tone:       "éducatif",
	})
	require.NoError(t, err)
	assert.Equal(t, "l'espace", res.Inputs.Theme)
	assert.Equal(t, "une astronaute", res.Inputs.Characters)
	assert.Equal(t, "éducatif", res.Inputs.Tone)
	assert.Equal(t, "9-12", res.AgeBand)
	assert.Nil(t, res.ChildProfileID)
}
