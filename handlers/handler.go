package handlers

import (
	"errors"

	"fleamarket_backend/models"
	"fleamarket_backend/store"

	"github.com/gofiber/fiber/v2"
)

// currentUser loads the authenticated caller from the user id the auth
// middleware left in Locals. The record is re-read on every request so
// policy decisions never run on stale identity data.
func currentUser(c *fiber.Ctx, st *store.Store) (*models.User, error) {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return nil, models.ErrForbidden
	}
	return st.UserByID(userID)
}

// domainStatus maps a domain error to its HTTP status code. Business-rule
// conflicts are client errors; anything unrecognized is a server fault.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrSelfTradeForbidden),
		errors.Is(err, models.ErrAlreadyCompleted):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
