package main

import (
	"mapty/internal/config"
	"mapty/internal/db"
	"mapty/internal/logging"
)

func main() {
	log := logging.New("info", nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.Storage.Driver != config.StorageSQLite {
		log.Info().Str("driver", cfg.Storage.Driver).Msg("no migrations needed")
		return
	}

	database, err := db.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	migrations, err := db.Migrations(cfg.Storage.MigrationsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open migrations")
	}
	if err := db.RunMigrations(database, migrations); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	log.Info().Str("db", cfg.Storage.DBPath).Msg("migrations applied successfully")
}
