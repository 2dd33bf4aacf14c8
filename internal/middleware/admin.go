package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/config"
	"github.com/petitconteur/backend/internal/dto"
	"github.com/petitconteur/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired grants access when the caller's email is on the
// configured admin list or the account carries the admin role in the
// database. Runs behind JWTProtected.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Authentification requise",
			})
		}

		if contains(adminEmails, CurrentEmail(c)) {
			return c.Next()
		}

		if userID != uuid.Nil {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err == nil {
				if user.Role == models.RoleAdmin {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Accès administrateur requis",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
