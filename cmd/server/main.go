package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/itbasis/go-clock"

	"github.com/maxviazov/player-roster-service/internal/config"
	"github.com/maxviazov/player-roster-service/internal/handler"
	"github.com/maxviazov/player-roster-service/internal/logger"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/repository/postgres"
	"github.com/maxviazov/player-roster-service/internal/service"
	"github.com/maxviazov/player-roster-service/internal/validation"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load application config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(ctx, cfg.Postgres, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := repository.MigratePool(ctx, db.Pool()); err != nil {
			appLogger.Fatal().Err(err).Msg("❌ Migrations failed")
		}
		appLogger.Info().Msg("✅ Migrations applied")
	}

	clk := clock.New()
	v := validation.New(clk)
	pool := db.Pool()
	players := postgres.NewPlayerRepository(pool, clk)
	teamPlayers := postgres.NewTeamPlayerRepository(pool, clk)
	stats := postgres.NewPlayerStatisticRepository(pool, clk)

	services := handler.Services{
		Players:     service.NewPlayerService(players, v, clk, appLogger),
		TeamPlayers: service.NewTeamPlayerService(postgres.NewTxManager(pool), players, teamPlayers, v, clk, appLogger),
		Statistics:  service.NewPlayerStatisticService(players, teamPlayers, stats, v, clk, appLogger),
	}

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestTimeout(cfg.HTTP.RequestTimeout))
	handler.Register(r, postgres.NewPinger(pool), cfg.HTTP.UserHeader, services)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()
	appLogger.Info().Int("port", cfg.App.Port).Msg("🚀 Service started")

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
