package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/skinmarket/market/backend/models"
	"github.com/skinmarket/market/backend/utils"
	"github.com/skinmarket/market/internal/domain/catalog"
	"github.com/skinmarket/market/internal/domain/trades"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Catalog catalog.Service
	Trades  trades.Service
	Health  Pinger
	Version string
	Commit  string
}

// parseInt64 is a utility function to parse int64 from string
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// MethodNotAllowed answers any method a resource does not serve.
func MethodNotAllowed() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendJSON(c, fiber.StatusMethodNotAllowed, models.ErrorResponse{Error: "Method not allowed"})
	}
}
