package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/petitconteur/backend/internal/config"
	"github.com/petitconteur/backend/internal/handlers"
	"github.com/petitconteur/backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	storyHandler *handlers.StoryHandler,
	feedHandler *handlers.FeedHandler,
	generateHandler *handlers.GenerateHandler,
	moderationHandler *handlers.ModerationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	protected := api.Group("", middleware.JWTProtected(cfg))

	// Child profiles
	protected.Get("/profiles", profileHandler.List)
	protected.Post("/profiles", profileHandler.CreateChild)
	protected.Put("/profiles/:id", profileHandler.UpdateChild)
	protected.Delete("/profiles/:id", profileHandler.DeleteChild)

	// Generation gets its own budget: each call ties up the model
	generate := protected.Group("/generate")
	generate.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	generate.Post("", generateHandler.Generate)

	// Stories: the owner's library and the shared feed
	protected.Get("/stories", storyHandler.List)
	protected.Post("/stories", storyHandler.Create)
	protected.Get("/stories/feed", feedHandler.Get)
	protected.Get("/stories/:id", storyHandler.Get)
	protected.Put("/stories/:id", storyHandler.Update)
	protected.Post("/stories/:id/publish", storyHandler.Publish)
	protected.Post("/stories/:id/like", storyHandler.Like)
	protected.Delete("/stories/:id/like", storyHandler.Unlike)
	protected.Post("/stories/:id/report", moderationHandler.Report)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/reports", moderationHandler.ListPending)
	admin.Delete("/stories/:id", moderationHandler.RemoveStory)
	admin.Post("/users/block", moderationHandler.BlockUser)
	admin.Put("/reports/:id/dismiss", moderationHandler.DismissReport)
}
