package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/opal-salon/salon-scheduler/internal/config"
	dbpkg "github.com/opal-salon/salon-scheduler/internal/db"
	"github.com/opal-salon/salon-scheduler/internal/infra/cache"
	"github.com/opal-salon/salon-scheduler/internal/metrics"
	"github.com/opal-salon/salon-scheduler/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	db := dbpkg.NewDB(cfg)

	var snap cache.DaySnapshot
	if cfg.RedisAddr != "" {
		snap = cache.NewRedisSnapshot(cfg.RedisAddr)
	} else {
		snap = cache.NewMemorySnapshot()
	}

	metrics.Register()

	r := gin.Default()

	routes.RegisterRoutes(r, db, snap, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
