package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/skinmarket/market/backend/models"
	"github.com/skinmarket/market/internal/domain/errs"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendMessage sends 200 with a {"message"} body
func SendMessage(c *fiber.Ctx, message string) error {
	return SendJSON(c, http.StatusOK, models.MessageResponse{Message: message})
}

// SendCreated sends 201 with the new resource id
func SendCreated(c *fiber.Ctx, id int64, message string) error {
	return SendJSON(c, http.StatusCreated, models.CreatedResponse{ID: id, Message: message})
}

// SendError sends an {"error"} body
func SendError(c *fiber.Ctx, statusCode int, message string) error {
	return SendJSON(c, statusCode, models.ErrorResponse{Error: message})
}

// SendValidationError sends 400 with per-field details
func SendValidationError(c *fiber.Ctx, ve *errs.ValidationError) error {
	return SendJSON(c, http.StatusBadRequest, models.ErrorResponse{
		Error:   "Validation failed",
		Details: ve.Fields,
	})
}

// GetIPAddress extracts the client IP address
func GetIPAddress(c *fiber.Ctx) string {
	if ips := c.IPs(); len(ips) > 0 {
		return ips[0]
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}
