package main

import (
	"os"
	"time"

	"github.com/kgrubic/boston-energy/internal/app"
	"github.com/kgrubic/boston-energy/internal/cache"
	"github.com/kgrubic/boston-energy/internal/config"
	"github.com/kgrubic/boston-energy/internal/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}
	if cfg.SeedOnStart {
		if err := database.Seed(db); err != nil {
			log.Fatal().Err(err).Msg("database seed")
		}
	}

	ca := cache.New(cfg.RedisURL, 5*time.Minute)
	if ca != nil {
		log.Info().Msg("redis cache enabled")
	}

	fiberApp, err := app.CreateApp(cfg, db, ca)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
