package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/you/hmsauth/internal/app"
	"github.com/you/hmsauth/internal/config"
	"github.com/you/hmsauth/internal/logger"
)

func main() {
	// .env is optional; secrets may also come from the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if err := app.Run(cfg); err != nil {
		log.Fatal().Err(err).Msg("app")
	}
}
