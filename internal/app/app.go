// Package app assembles the Fiber application from its dependencies.
package app

import (
	"time"

	"blog/internal/config"
	"blog/internal/database"
	"blog/internal/handlers"
	"blog/internal/middleware"
	"blog/internal/repositories"
	"blog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a Fiber app. publisher may
// be nil, which disables domain events.
func New(cfg config.Config, db *gorm.DB, publisher services.EventPublisher, log *zap.Logger) *fiber.App {
	store := repositories.NewGORMStore(db)
	validate := validator.New()

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(store, tokenService)
	userService := services.NewUserService(store, publisher, log)
	postService := services.NewPostService(store, publisher, log)
	voteService := services.NewVoteService(store, publisher, log)

	authHandler := handlers.NewAuthHandler(authService, tokenService.TTL(), cfg.CookieSecure, validate, log)
	userHandler := handlers.NewUserHandler(userService, validate, log)
	postHandler := handlers.NewPostHandler(postService, validate, log)
	voteHandler := handlers.NewVoteHandler(voteService, validate, log)

	app := fiber.New(fiber.Config{
		AppName: "blog",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code, message = e.Code, e.Message
			} else {
				log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{"message": message})
		},
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New()) // Request logger

	// --- Routes ---
	auth := middleware.AuthRequired(authService, log)
	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app, auth)
	postHandler.RegisterRoutes(app, auth)
	voteHandler.RegisterRoutes(app, auth)

	app.Get("/health", healthHandler(db, log))

	return app
}

func healthHandler(db *gorm.DB, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := database.Health(c.UserContext(), db)
		if err != nil {
			log.Warn("health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "degraded",
				"time":     time.Now().Format(time.RFC3339),
				"database": stats,
			})
		}
		return c.JSON(fiber.Map{
			"status":   "ok",
			"time":     time.Now().Format(time.RFC3339),
			"database": stats,
		})
	}
}
