package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/maxviazov/player-roster-service/internal/config"
	"github.com/maxviazov/player-roster-service/internal/logger"
	"github.com/maxviazov/player-roster-service/internal/repository"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	command := flag.String("command", "up", "goose command: up, down, status, version, reset")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	db, err := sql.Open("pgx", cfg.Postgres.DSN())
	if err != nil {
		appLogger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := repository.Migrate(context.Background(), db, *command); err != nil {
		appLogger.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}
	appLogger.Info().Str("command", *command).Msg("✅ migration finished")
}
