package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/config"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/dotenv"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/postgres"
	"github.com/Boring-Software-Nation/figaro-contract/migrations"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger/zap_adapter"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// migrate up | down | status
func main() {
	zapLogger, err := zap_adapter.NewZapAdapter("migrate", os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var log logger.Logger = zapLogger

	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			log.Error("failed to load .env file", logger.NewField("error", err))
			os.Exit(1)
		}
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Error("load config", logger.NewField("error", err))
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, command); err != nil {
		log.With(
			logger.NewField("command", command),
			logger.NewField("error", err),
		).Error("migration failed")
		os.Exit(1)
	}

	log.With(logger.NewField("command", command)).Info("migration finished")
}

func run(ctx context.Context, cfg *config.Database, command string) error {
	db, err := sql.Open("pgx", postgres.DSN(cfg))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, ".")
	case "down":
		return goose.DownContext(ctx, db, ".")
	case "status":
		return goose.StatusContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
