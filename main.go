package main

import (
	"log"
	"os"

	"fleamarket_backend/config"
	"fleamarket_backend/handlers"
	"fleamarket_backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
	} else {
		if err := config.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		config.SeedUsers(db)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Fleamarket Backend",
		ServerHeader: "Fleamarket Backend Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	handlers.RegisterRoutes(app, db)

	middleware.SetupErrorHandler(app)

	log.Printf("Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
