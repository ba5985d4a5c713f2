package handlers

import (
	"strconv"

	"fleamarket_backend/policy"
	"fleamarket_backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// recentTransactionCount caps how many transactions the user detail embeds.
const recentTransactionCount = 5

type UserHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db, Store: store.New(db)}
}

// GetUser - GET /api/users/:id
//
// Returns the user detail with their on-sale products and most recent
// transactions embedded. Only the user themselves or an admin may look.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	target, err := h.Store.UserByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if ok, _ := policy.CanViewUser(requester, target); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	products, err := h.Store.ListOwnProductsOnSale(target.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}
	transactions, err := h.Store.ListTransactionsFor(target.ID, recentTransactionCount)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch transactions"})
	}

	view := UserDetailView{
		UserView:     NewUserView(target),
		Products:     NewProductViews(products),
		Transactions: NewTransactionViews(transactions),
	}
	return c.JSON(fiber.Map{"data": view})
}

// GetSales - GET /api/users/:id/sales
//
// Every product the user has listed, whatever its status.
func (h *UserHandler) GetSales(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	target, err := h.Store.UserByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if ok, _ := policy.CanViewUser(requester, target); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	products, err := h.Store.ListSales(target.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch sales"})
	}
	return c.JSON(fiber.Map{"data": NewProductViews(products)})
}

// GetPurchases - GET /api/users/:id/purchases
func (h *UserHandler) GetPurchases(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	target, err := h.Store.UserByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if ok, _ := policy.CanViewUser(requester, target); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	transactions, err := h.Store.ListPurchases(target.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch purchases"})
	}
	return c.JSON(fiber.Map{"data": NewTransactionViews(transactions)})
}
