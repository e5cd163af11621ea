package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/skinmarket/market/backend"
	"github.com/skinmarket/market/backend/handlers"
	"github.com/skinmarket/market/internal/domain/catalog"
	"github.com/skinmarket/market/internal/domain/trades"
	"github.com/skinmarket/market/internal/gateways/database/repositories"
	"github.com/skinmarket/market/internal/gateways/memory"
	"github.com/skinmarket/market/internal/gateways/spaces"
	"github.com/skinmarket/market/skinmarket"
	"github.com/skinmarket/market/skinmarket/config"
	"github.com/skinmarket/market/skinmarket/database"
	"github.com/skinmarket/market/skinmarket/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

type stores struct {
	skins  catalog.Repository
	trades trades.Repository
	health handlers.Pinger
	close  func()
}

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := skinmarket.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.New("SkinMarket", cfg.Log.Format, cfg.Log.Level, cfg.Log.AddSource)))
	slog.Info("Starting SkinMarket API",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "sys"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", slog.Any("error", err))
		os.Exit(-1)
	}
	defer st.close()

	var images catalog.ImageStore
	if spacesCfg := spaces.Config(cfg.Spaces); spacesCfg.Enabled() {
		store, err := spaces.NewImageStore(ctx, spacesCfg)
		if err != nil {
			slog.Error("Failed to initialize image storage", slog.Any("error", err))
			os.Exit(-1)
		}
		images = store
		slog.Info("Image uploads enabled", slog.String("bucket", cfg.Spaces.Bucket))
	}

	app, err := backend.NewApp(&handlers.WebApp{
		Catalog: catalog.NewService(st.skins, images),
		Trades: trades.NewService(st.trades, st.skins, trades.Options{
			EnforceOwnership: cfg.Trade.EnforceOwnership,
			RecentLimit:      cfg.Trade.RecentLimit,
		}),
		Health:  st.health,
		Version: version,
		Commit:  commit,
	}, backend.Options{
		BodyLimit: cfg.Web.BodyLimit,
		RateLimit: backend.RateLimitOptions{
			Requests:   cfg.RateLimit.Requests,
			Window:     cfg.RateLimit.Window.Std(),
			MaxClients: cfg.RateLimit.MaxClients,
		},
	})
	if err != nil {
		slog.Error("Failed to build HTTP server", slog.Any("error", err))
		os.Exit(-1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", slog.String("address", cfg.Web.Address()), slog.String("type", "sys"))
		return app.Listen(cfg.Web.Address())
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down...", slog.String("type", "sys"))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Shutdown complete", slog.String("type", "sys"))
}

// openStores connects the configured storage driver.
func openStores(ctx context.Context, cfg *skinmarket.Config) (*stores, error) {
	if cfg.DB.Driver == "memory" {
		slog.Warn("Using in-memory store; data is lost on exit", slog.String("type", "db"))
		store := memory.NewStore()
		return &stores{
			skins:  store.Skins(),
			trades: store.Trades(),
			health: store,
			close:  func() {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, config.SchemaTimeout)
	defer cancel()

	db, err := database.New(connectCtx, cfg.DB.Connection())
	if err != nil {
		return nil, err
	}
	if err := db.InitializeSchema(connectCtx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("Database connected successfully", slog.String("type", "db"))

	return &stores{
		skins:  repositories.NewSkinRepository(db.BunDB()),
		trades: repositories.NewTradeRepository(db.BunDB()),
		health: db,
		close:  db.Close,
	}, nil
}
