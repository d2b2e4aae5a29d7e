package main

import (
	"shashoo/internal/config"
	"shashoo/internal/logger"
	"shashoo/internal/server"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	if cfg.LogFormat == "pretty" {
		log = logger.NewPretty(cfg.LogLevel)
	}

	s, err := server.Init(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Server initialization failed")
	}

	s.Run()
}
