package cmd

import (
	"context"
	"fmt"

	"bootcamp/config"
	"bootcamp/database"
	"bootcamp/events"
	"bootcamp/repository"
	"bootcamp/repository/sqlite"
	"bootcamp/service"

	log "github.com/sirupsen/logrus"
)

// openStore connects the configured store and returns its unit of work
// factory together with a function that releases it
func openStore(ctx context.Context, cfg *config.Config, eventBus *events.Bus) (service.UnitOfWorkFactory, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		log.WithField("path", cfg.SQLitePath).Info("Opening sqlite store...")
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		closeFn := func() {
			if err := sqlite.Close(db); err != nil {
				log.Errorf("Error closing sqlite store: %v", err)
			}
		}
		return sqlite.NewUnitOfWorkFactory(db, eventBus), closeFn, nil

	case config.StoreDriverPostgres:
		databaseURL := cfg.GetDatabaseURL()

		log.Info("Running database migrations...")
		if err := database.RunMigrationsWithURL(databaseURL); err != nil {
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established successfully")
		return repository.NewUnitOfWorkFactory(db, eventBus), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// configureLogging applies the configured level and formatter
func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Invalid log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
