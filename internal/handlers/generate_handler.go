package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/petitconteur/backend/internal/dto"
	"github.com/petitconteur/backend/internal/generation"
	"github.com/petitconteur/backend/internal/services"
)

type GenerateHandler struct {
	generateService *services.GenerateService
}

func NewGenerateHandler(generateService *services.GenerateService) *GenerateHandler {
	return &GenerateHandler{generateService: generateService}
}

// Generate produces a story draft from validated inputs. The result is
// returned to the guardian for review, never persisted here.
func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Corps de requête invalide",
		})
	}
	if err := dto.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	result, err := h.generateService.Generate(c.Context(), services.GenerateParams{
		ChildProfileID: req.ChildProfileID,
		Kind:           req.Kind,
		AgeBand:        req.AgeBand,
		Theme:          req.Theme,
		Characters:     req.Characters,
		Emotion:        req.Emotion,
		Moral:          req.Moral,
		Situation:      req.Situation,
		Tone:           req.Tone,
	})
	if err != nil {
		var unavailable *generation.UnavailableError
		var requestErr *generation.RequestError
		switch {
		case errors.Is(err, generation.ErrUnsafeInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Contenu non autorisé détecté dans votre demande",
			})
		case errors.Is(err, generation.ErrUnsafeOutput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Le texte généré ne respecte pas nos règles de sécurité, veuillez réessayer",
			})
		case errors.As(err, &unavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: unavailable.Hint,
			})
		case errors.As(err, &requestErr):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Le service de génération a répondu avec une erreur",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}

	return c.JSON(result)
}
