package prompt

import "strings"

// Params are the structured, already-screened generation inputs. The
// composer never rejects: validation and safety checks happen upstream.
type Params struct {
	Kind       string // models.KindStory or models.KindRhyme
	AgeBand    string // "3-5", "6-8" or "9-12"
	Theme      string
	Characters string
	Emotion    string
	Moral      string
	Situation  string
	Tone       string
}

// The wording and clause order below condition the model's behavior and
// are part of the contract. Do not reorder or rephrase casually.
const (
	ageInstruction35  = "Phrases très courtes, vocabulaire simple, répétitions possibles."
	ageInstruction68  = "Phrases courtes à moyennes, vocabulaire accessible, peu de métaphores."
	ageInstruction912 = "Tu peux utiliser des phrases plus longues et un vocabulaire plus riche, tout en restant adapté aux enfants."

	closingInstruction = "Réponds uniquement avec le texte de l'histoire ou de la comptine, sans titre ni préambule."
)

// Compose builds the full generation prompt. Fixed clause order: kind+age
// instruction, theme, characters, emotion, then the optional tone, moral
// and situation clauses, then the closing instruction.
func Compose(p Params) string {
	ageInstruction := ageInstruction912
	switch p.AgeBand {
	case "3-5":
		ageInstruction = ageInstruction35
	case "6-8":
		ageInstruction = ageInstruction68
	}

	var kindInstruction string
	if p.Kind == "story" {
		kindInstruction = "Écris une histoire pour enfant en français. " + ageInstruction +
			" L'histoire doit être bienveillante, sans violence ni contenu inapproprié."
	} else {
		kindInstruction = "Écris une comptine pour enfant en français, avec des rimes et un rythme régulier. " +
			ageInstruction + " La comptine doit être joyeuse et adaptée aux enfants."
	}

	parts := []string{
		kindInstruction,
		"Thème : " + p.Theme + ".",
		"Personnages : " + p.Characters + ".",
		"Émotion à transmettre : " + p.Emotion + ".",
	}
	if p.Tone != "" {
		parts = append(parts, "Ton : "+p.Tone+".")
	}
	if p.Moral != "" {
		parts = append(parts, "Morale ou message : "+p.Moral+".")
	}
	if p.Situation != "" {
		parts = append(parts, "Situation de départ : "+p.Situation+".")
	}
	parts = append(parts, closingInstruction)

	return strings.Join(parts, "\n")
}
