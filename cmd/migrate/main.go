package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fyyur/internal/config"
	"fyyur/internal/logging"
	"fyyur/migrations"
)

func main() {
	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal().Msg("usage: migrate [up|down]")
	}

	_ = godotenv.Load("config/local.env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.SetGlobalLogger(logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}))

	if cfg.Database.Driver != config.StoragePostgres {
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("migrations need STORAGE_DRIVER=postgres")
	}

	direction := migrations.Direction(os.Args[1])
	if err := migrations.Run(cfg.Database.URL, direction); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Str("direction", string(direction)).Msg("migrations complete")
}
