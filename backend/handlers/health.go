package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/skinmarket/market/backend/models"
	"github.com/skinmarket/market/backend/utils"
	"github.com/skinmarket/market/skinmarket/config"
)

// HealthCheck reports service and database status
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), config.HealthCheckTimeout)
		defer cancel()

		health := models.HealthCheck{
			Status:   "ok",
			Database: "ok",
			Version:  webApp.Version,
			Commit:   webApp.Commit,
		}
		status := fiber.StatusOK
		if err := webApp.Health.Ping(ctx); err != nil {
			slog.Warn("Health check failed",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
			health.Status = "degraded"
			health.Database = "unreachable"
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}
