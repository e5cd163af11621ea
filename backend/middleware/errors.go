package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/skinmarket/market/backend/models"
	"github.com/skinmarket/market/backend/utils"
	"github.com/skinmarket/market/internal/domain/catalog"
	"github.com/skinmarket/market/internal/domain/errs"
)

// CustomErrorHandler maps domain errors to HTTP responses
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	// Error responses keep the wildcard origin
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")

	var (
		ve  *errs.ValidationError
		nfe *errs.NotFoundError
		ce  *errs.ConflictError
		fe  *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return utils.SendValidationError(c, ve)
	case errors.As(err, &nfe):
		return utils.SendError(c, fiber.StatusNotFound, nfe.Error())
	case errors.As(err, &ce):
		return utils.SendError(c, fiber.StatusConflict, ce.Error())
	case errors.Is(err, catalog.ErrImagesDisabled):
		return utils.SendError(c, fiber.StatusNotImplemented, err.Error())
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}

	slog.Error("Unhandled request error",
		slog.String("type", "error"),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()))

	return utils.SendError(c, fiber.StatusInternalServerError, err.Error())
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
