// Package app assembles the Fiber application from its collaborators.
package app

import (
	"log/slog"
	"time"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"

	_ "catalog/internal/docs" // swagger document

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Deps are the collaborators New wires together.
type Deps struct {
	Config config.Config
	DB     *gorm.DB
	// Publisher is optional; leave nil to disable product events.
	Publisher services.EventPublisher
	Logger    *slog.Logger
}

// New builds the HTTP application: middleware, health check, product routes and,
// when enabled, the interactive API documentation.
func New(deps Deps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	productRepo := repositories.NewGORMProductRepository(deps.DB)
	productService := services.NewProductService(productRepo, deps.Publisher, deps.Config.RabbitMQExchange)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New(fiber.Config{
		AppName:               "catalog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.CORS(deps.Config.CORSOrigins))
	app.Use(middleware.RequestContext(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if err := database.Ping(c.UserContext(), deps.DB); err != nil {
			dbStatus = "down"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	})

	if deps.Config.EnableSwagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	return app
}
