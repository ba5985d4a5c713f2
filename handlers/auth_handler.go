package handlers

import (
	"os"
	"strconv"
	"time"

	"fleamarket_backend/models"
	"fleamarket_backend/policy"
	"fleamarket_backend/store"
	"fleamarket_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultRefreshTokenTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db, Store: store.New(db)}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest defines the payload for the token refresh endpoint
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// ChangePasswordRequest defines the payload for changing a password
type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

// Register - POST /api/users
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" ||
		req.FirstName == "" || req.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}
	if req.Password != req.Password2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Passwords do not match"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := h.Store.CreateUser(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username or email already taken"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": NewUserView(&user)})
}

// Login - POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	user, err := h.Store.UserByUsername(req.Username)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	return h.respondTokenPair(c, user)
}

// Refresh - POST /api/token/refresh
//
// Refresh tokens are single use: the presented token is revoked and a fresh
// pair is issued.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	token, err := h.Store.ConsumeRefreshToken(utils.HashToken(req.Refresh))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Refresh token is invalid"})
	}
	if token.ExpiresAt.Before(time.Now()) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Refresh token has expired"})
	}

	user, err := h.Store.UserByID(token.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Refresh token is invalid"})
	}

	return h.respondTokenPair(c, user)
}

// ChangePassword - POST /api/users/:id/change_password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
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

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password is required"})
	}
	if req.NewPassword != req.NewPassword2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Passwords do not match"})
	}
	if !utils.CheckPasswordHash(req.OldPassword, target.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}
	if err := h.Store.UpdatePassword(target.ID, hashedPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update password"})
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

func (h *AuthHandler) respondTokenPair(c *fiber.Ctx, user *models.User) error {
	access, err := utils.GenerateAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not login"})
	}

	refresh := utils.NewRefreshToken()
	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(refresh),
		ExpiresAt: time.Now().Add(refreshTokenTTL()),
	}
	if err := h.Store.SaveRefreshToken(&record); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not login"})
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
		"user":    NewUserView(user),
	})
}

func refreshTokenTTL() time.Duration {
	if v := os.Getenv("REFRESH_EXPIRES_IN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultRefreshTokenTTL
}
