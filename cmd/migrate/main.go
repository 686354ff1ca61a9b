// Command migrate applies the ledger schema migrations and exits. Use it
// when ledgerd runs with server.auto_migrate disabled.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/qaza-tracker/internal/adapter/postgres"
	"github.com/heartmarshall/qaza-tracker/internal/app"
	"github.com/heartmarshall/qaza-tracker/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("database.dsn is required")
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("migrations applied", slog.Int("count", applied))
}
