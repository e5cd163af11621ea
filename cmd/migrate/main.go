package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/skinmarket/market/skinmarket"
	"github.com/skinmarket/market/skinmarket/config"
	"github.com/skinmarket/market/skinmarket/database"
	"github.com/skinmarket/market/skinmarket/logger"
)

func main() {
	path := flag.String("config", "config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := skinmarket.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logger.New("SkinMarket-Migrate", cfg.Log.Format, cfg.Log.Level, cfg.Log.AddSource)))

	if cfg.DB.Driver != "postgres" {
		slog.Info("Nothing to migrate", slog.String("driver", cfg.DB.Driver))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.SchemaTimeout)
	defer cancel()

	db, err := database.New(ctx, cfg.DB.Connection())
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Migration completed successfully")
}
