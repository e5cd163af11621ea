package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skinmarket/market/backend/models"
	"github.com/skinmarket/market/backend/utils"
)

// TradesGet lists offers by status, optionally for one participant.
func TradesGet(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offers, err := webApp.Trades.List(c.UserContext(), c.Query("user"), c.Query("status"))
		if err != nil {
			return err
		}
		return utils.SendJSON(c, fiber.StatusOK, offers)
	}
}

func TradesCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.TradeCreateRequest
		if err := utils.DecodeJSON(c, &req); err != nil {
			return err
		}
		input, err := utils.ValidateTradeCreateRequest(&req)
		if err != nil {
			return err
		}

		id, err := webApp.Trades.Create(c.UserContext(), input)
		if err != nil {
			return err
		}
		return utils.SendCreated(c, id, "Trade offer created")
	}
}

func TradesUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.TradeStatusRequest
		if err := utils.DecodeJSON(c, &req); err != nil {
			return err
		}
		id, status, err := utils.ValidateTradeStatusRequest(&req)
		if err != nil {
			return err
		}

		status = strings.ToLower(strings.TrimSpace(status))
		if err := webApp.Trades.SetStatus(c.UserContext(), id, status); err != nil {
			return err
		}
		return utils.SendMessage(c, fmt.Sprintf("Trade %s", status))
	}
}
