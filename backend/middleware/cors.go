package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig maps a path prefix to the methods advertised for it.
type CORSConfig struct {
	Methods      map[string]string
	AllowHeaders string
}

// DefaultCORSConfig advertises the methods each resource actually serves.
var DefaultCORSConfig = CORSConfig{
	Methods: map[string]string{
		"/skins":        "GET, POST, PUT, DELETE, OPTIONS",
		"/skins/images": "POST, OPTIONS",
		"/trades":       "GET, POST, PUT, OPTIONS",
	},
	AllowHeaders: "Content-Type",
}

func (cfg CORSConfig) methodsFor(path string) string {
	best := ""
	for prefix := range cfg.Methods {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "GET, OPTIONS"
	}
	return cfg.Methods[best]
}

// CORS sets a wildcard origin on every response and answers preflight
// requests with 200 and an empty body.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, cfg.methodsFor(c.Path()))
		c.Set(fiber.HeaderAccessControlAllowHeaders, cfg.AllowHeaders)

		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusOK)
			return nil
		}
		return c.Next()
	}
}
