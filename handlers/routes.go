package handlers

import (
	"fleamarket_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegisterRoutes wires all API routes. Routes registered before the auth
// middleware are public; everything after requires a valid bearer token.
func RegisterRoutes(app *fiber.App, db *gorm.DB) {
	authHandler := NewAuthHandler(db)
	userHandler := NewUserHandler(db)
	productHandler := NewProductHandler(db)
	transactionHandler := NewTransactionHandler(db)

	api := app.Group("/api")

	// Public routes
	api.Post("/users", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/token/refresh", authHandler.Refresh)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Authenticated routes
	api.Use(utils.AuthMiddleware)

	api.Get("/users/:id", userHandler.GetUser)
	api.Get("/users/:id/sales", userHandler.GetSales)
	api.Get("/users/:id/purchases", userHandler.GetPurchases)
	api.Post("/users/:id/change_password", authHandler.ChangePassword)

	api.Post("/products", productHandler.CreateProduct)
	api.Put("/products/:id", productHandler.UpdateProduct)
	api.Post("/products/:id/purchase", productHandler.Purchase)

	api.Get("/transactions", transactionHandler.ListTransactions)
	api.Post("/transactions/:id/complete", transactionHandler.Complete)
}
