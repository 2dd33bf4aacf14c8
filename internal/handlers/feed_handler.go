package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/petitconteur/backend/internal/dto"
	"github.com/petitconteur/backend/internal/middleware"
	"github.com/petitconteur/backend/internal/services"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Get serves the shared feed. Filters come in as query parameters:
// ?age_band=3-5&theme=forêt.
func (h *FeedHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentification requise",
		})
	}

	items, err := h.feedService.Get(c.Context(), userID, c.Query("age_band"), c.Query("theme"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Erreur interne du serveur",
		})
	}
	return c.JSON(fiber.Map{"stories": items})
}
