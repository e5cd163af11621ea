package utils

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/skinmarket/market/internal/domain/errs"
)

// DecodeJSON decodes the request body regardless of Content-Type, since
// browser clients of this API do not always send one.
func DecodeJSON(c *fiber.Ctx, v interface{}) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body: "+err.Error())
	}
	return nil
}

// QueryInt64 parses an optional integer query parameter.
func QueryInt64(c *fiber.Ctx, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &errs.ValidationError{Fields: map[string]string{key: "must be an integer"}}
	}
	return &v, nil
}
