package main

import (
	"os"

	"github.com/danyunou/taco-platform/configs"
	"github.com/danyunou/taco-platform/middlewares"
	"github.com/danyunou/taco-platform/routes"
	"github.com/danyunou/taco-platform/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger

	cfg := configs.LoadConfig()

	if err := configs.ConnectDB(cfg); err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	if err := configs.SetupDatabase(); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	if err := configs.SeedRoles(); err != nil {
		logger.Fatal().Err(err).Msg("seeding roles failed")
	}
	if err := configs.SeedAdmin(cfg); err != nil {
		logger.Fatal().Err(err).Msg("seeding admin failed")
	}

	hub := ws.NewKitchenHub()
	go hub.Run()

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(&logger))
	routes.RegisterRoutes(r, cfg, hub)

	logger.Info().Str("port", cfg.Port).Msg("taco-platform listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
