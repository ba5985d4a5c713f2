package handlers

import (
	"strconv"

	"fleamarket_backend/lifecycle"
	"fleamarket_backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TransactionHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db, Store: store.New(db)}
}

// ListTransactions - GET /api/transactions
//
// Always scoped to the caller; the client cannot ask for anyone else's
// history here.
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	transactions, err := h.Store.ListTransactionsFor(requester.ID, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch transactions"})
	}
	return c.JSON(fiber.Map{"data": NewTransactionViews(transactions)})
}

// Complete - POST /api/transactions/:id/complete
//
// Seller-only; completes the transaction and its product together.
func (h *TransactionHandler) Complete(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	completed, err := lifecycle.Complete(h.DB, uint(id), requester)
	if err != nil {
		return c.Status(domainStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.Store.TransactionByID(completed.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch transaction"})
	}
	return c.JSON(fiber.Map{"data": NewTransactionView(record)})
}
