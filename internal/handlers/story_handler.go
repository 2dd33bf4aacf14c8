package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/dto"
	"github.com/petitconteur/backend/internal/middleware"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
	"github.com/petitconteur/backend/internal/services"
)

type StoryHandler struct {
	storyService *services.StoryService
}

func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

func storyInputsFromPayload(p dto.StoryInputsPayload) models.StoryInputs {
	return models.StoryInputs{
		Theme:      p.Theme,
		Characters: p.Characters,
		Emotion:    p.Emotion,
		Moral:      p.Moral,
		Situation:  p.Situation,
		Tone:       p.Tone,
	}
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentification requise",
		})
	}

	stories, err := h.storyService.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.JSON(fiber.Map{"stories": stories})
}

func (h *StoryHandler) Get(c *fiber.Ctx) error {
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

	view, err := h.storyService.Get(c.Context(), storyID, userID)
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
	return c.JSON(view)
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentification requise",
		})
	}

	var req dto.CreateStoryRequest
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

	story, err := h.storyService.Create(c.Context(), userID, services.CreateStoryParams{
		ChildProfileID: req.ChildProfileID,
		Kind:           req.Kind,
		Title:          req.Title,
		Content:        req.Content,
		Inputs:         storyInputsFromPayload(req.Inputs),
		AgeBand:        req.AgeBand,
	})
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profil enfant non trouvé",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
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

	var req dto.UpdateStoryRequest
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

	patch := repository.StoryPatch{Title: req.Title, Content: req.Content}
	if req.Inputs != nil {
		inputs := storyInputsFromPayload(*req.Inputs)
		patch.Inputs = &inputs
	}

	story, err := h.storyService.Update(c.Context(), storyID, userID, patch)
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
	return c.JSON(story)
}

func (h *StoryHandler) Publish(c *fiber.Ctx) error {
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

	story, err := h.storyService.Publish(c.Context(), storyID, userID)
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
	return c.JSON(story)
}

func (h *StoryHandler) Like(c *fiber.Ctx) error {
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

	count, err := h.storyService.Like(c.Context(), storyID, userID)
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
	return c.JSON(dto.LikeResponse{StoryID: storyID, LikeCount: count, Liked: true})
}

func (h *StoryHandler) Unlike(c *fiber.Ctx) error {
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

	count, err := h.storyService.Unlike(c.Context(), storyID, userID)
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
	return c.JSON(dto.LikeResponse{StoryID: storyID, LikeCount: count, Liked: false})
}
