package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/dto"
	"github.com/petitconteur/backend/internal/middleware"
	"github.com/petitconteur/backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Report lets any authenticated user flag a published story.
func (h *ModerationHandler) Report(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentification requise",
		})
	}

	storyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Identifiant d'histoire invalide",
		})
	}

	var req dto.ReportRequest
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

	report, err := h.moderationService.Report(c.Context(), userID, storyID, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Histoire non trouvée",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ListPending(c *fiber.Ctx) error {
	reports, err := h.moderationService.ListPending(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// RemoveStory takes the story down and closes its reports. When report
// cleanup fails the removal itself stands, so the response stays 200
// with a reconciliation warning instead of an error status.
func (h *ModerationHandler) RemoveStory(c *fiber.Ctx) error {
	storyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Identifiant d'histoire invalide",
		})
	}

	story, err := h.moderationService.RemoveStory(c.Context(), storyID)
	if err != nil {
		var partial *services.PartialRemovalError
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Histoire non trouvée",
			})
		case errors.As(err, &partial):
			return c.JSON(fiber.Map{
				"story":   story,
				"warning": "Histoire retirée, mais des signalements restent à traiter",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.JSON(fiber.Map{"story": story})
}

func (h *ModerationHandler) BlockUser(c *fiber.Ctx) error {
	var req dto.BlockUserRequest
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

	user, err := h.moderationService.BlockUser(c.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Utilisateur non trouvé",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user), "message": "Utilisateur bloqué"})
}

func (h *ModerationHandler) DismissReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Identifiant de signalement invalide",
		})
	}

	if err := h.moderationService.DismissReport(c.Context(), reportID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Signalement non trouvé",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.JSON(fiber.Map{"message": "Signalement classé sans suite"})
}
