package backend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/skinmarket/market/backend/handlers"
	"github.com/skinmarket/market/backend/middleware"
	"github.com/skinmarket/market/skinmarket/config"
)

// Options tunes the HTTP layer.
type Options struct {
	BodyLimit int
	RateLimit RateLimitOptions
}

type RateLimitOptions struct {
	Requests   int
	Window     time.Duration
	MaxClients int
}

func (o *Options) setDefaults() {
	if o.BodyLimit <= 0 {
		o.BodyLimit = config.DefaultBodyLimit
	}
	if o.RateLimit.Requests <= 0 {
		o.RateLimit.Requests = config.DefaultRateLimitRequests
	}
	if o.RateLimit.Window <= 0 {
		o.RateLimit.Window = config.DefaultRateLimitWindow
	}
	if o.RateLimit.MaxClients <= 0 {
		o.RateLimit.MaxClients = config.DefaultRateLimitClients
	}
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(webApp *handlers.WebApp, opts Options) (*fiber.App, error) {
	opts.setDefaults()

	limiter, err := middleware.NewRateLimiter(opts.RateLimit.Requests, opts.RateLimit.Window, opts.RateLimit.MaxClients)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "SkinMarket API",
		ServerHeader:          "SkinMarket",
		BodyLimit:             opts.BodyLimit,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          middleware.CustomErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.CORS(middleware.DefaultCORSConfig))
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.RateLimit(limiter))

	setupRoutes(app, webApp)
	return app, nil
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Post("/skins/images", handlers.SkinsUploadImage(webApp))
	app.All("/skins/images", handlers.MethodNotAllowed())

	app.Get("/skins", handlers.SkinsGet(webApp))
	app.Post("/skins", handlers.SkinsCreate(webApp))
	app.Put("/skins", handlers.SkinsUpdate(webApp))
	app.Delete("/skins", handlers.SkinsDelete(webApp))
	app.All("/skins", handlers.MethodNotAllowed())

	app.Get("/trades", handlers.TradesGet(webApp))
	app.Post("/trades", handlers.TradesCreate(webApp))
	app.Put("/trades", handlers.TradesUpdate(webApp))
	app.All("/trades", handlers.MethodNotAllowed())
}
