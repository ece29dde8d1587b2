package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"mapty/internal/config"
	"mapty/internal/db"
	"mapty/internal/geo"
	"mapty/internal/handler"
	"mapty/internal/logging"
	"mapty/internal/model"
	"mapty/internal/repository"
	"mapty/internal/router"
	"mapty/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logging.New("info", nil)
		bootstrap.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(cfg.LogLevel, nil)

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open storage")
	}
	defer closeStore()

	repo := repository.NewWorkoutRepository(store, cfg.Storage.Key, log)
	reported := geo.NewReportedLocator()
	locator := geo.Chain{reported, geo.NewStaticLocator(cfg.Map.Home)}
	app := service.NewAppService(repo, locator, reported, model.NewIDGenerator(nil), service.MapSettings{
		Zoom:        cfg.Map.Zoom,
		TileURL:     cfg.Map.TileURL,
		Attribution: cfg.Map.Attribution,
	}, log)

	if err := app.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("restore workouts")
	}

	engine, err := router.New(handler.NewWorkoutHandler(app), handler.NewPageHandler(app), cfg.CORSOrigins, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Driver).Msg("mapty listening")
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("run server")
		closeStore()
		os.Exit(1)
	}
}

func openStore(cfg config.Config, log zerolog.Logger) (repository.KVStore, func(), error) {
	if cfg.Storage.Driver == config.StorageBadger {
		database, err := db.OpenBadger(cfg.Storage.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.CloseBadger(database); err != nil {
				log.Error().Err(err).Msg("close badger")
			}
		}
		return repository.NewBadgerStore("mapty", database), closeFn, nil
	}

	database, err := db.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}
	migrations, err := db.Migrations(cfg.Storage.MigrationsDir)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	if err := db.RunMigrations(database, migrations); err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("close sqlite")
		}
	}
	return repository.NewSQLiteStore(database), closeFn, nil
}
