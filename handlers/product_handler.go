package handlers

import (
	"strconv"

	"fleamarket_backend/lifecycle"
	"fleamarket_backend/models"
	"fleamarket_backend/policy"
	"fleamarket_backend/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db, Store: store.New(db)}
}

// ProductRequest is the payload for creating or updating a product. Status is
// deliberately absent: it only moves through the lifecycle endpoints.
type ProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ListProducts - GET /api/products
//
// Public. Supports exact-match ?status= filtering and pagination.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := h.Store.ListProducts(c.Query("status"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	meta := models.NewPaginationMeta(page, limit, total)
	return c.JSON(models.SuccessResponse("Products fetched", NewProductViews(products), meta))
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	product, err := h.Store.ProductByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(fiber.Map{"data": NewProductView(product)})
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	if !req.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be greater than zero"})
	}

	product := models.Product{
		SellerID: requester.ID,
		Name:     req.Name,
		Price:    req.Price,
		Status:   models.ProductOnSale,
	}
	if err := h.Store.CreateProduct(&product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": NewProductView(&product)})
}

// UpdateProduct - PUT /api/products/:id
//
// Generic detail edit for the owner. The store's write path pins the
// updatable columns, so this can never move a product's status.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	product, err := h.Store.ProductByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	if ok, _ := policy.CanManageProduct(requester, product); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	if !req.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be greater than zero"})
	}

	if err := h.Store.UpdateProductDetails(product, req.Name, req.Price); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
	}

	return c.JSON(fiber.Map{"data": NewProductView(product)})
}

// Purchase - POST /api/products/:id/purchase
//
// Reserves the product for the caller and opens the transaction tracking the
// deal.
func (h *ProductHandler) Purchase(c *fiber.Ctx) error {
	requester, err := currentUser(c, h.Store)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	created, err := lifecycle.Purchase(h.DB, uint(id), requester)
	if err != nil {
		return c.Status(domainStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.Store.TransactionByID(created.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch transaction"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": NewTransactionView(record)})
}
