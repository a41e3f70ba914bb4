package main

import (
	"fmt"

	dbadapter "tasktracker/internal/adapter/db"
	"tasktracker/internal/config"
	"tasktracker/internal/core/ports"
)

type store struct {
	repository ports.TaskRepository
	pinger     ports.Pinger
	close      func() error
}

// openStore connects the task repository matching the configured driver.
func openStore(cfg *config.Config) (*store, error) {
	if cfg.DbDriver == config.DriverSQLite {
		db, err := dbadapter.ConnectSQLite(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		return &store{
			repository: dbadapter.NewGormTaskRepository(db),
			pinger:     sqlDB,
			close:      sqlDB.Close,
		}, nil
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	return &store{
		repository: dbadapter.NewTaskRepository(db),
		pinger:     db,
		close:      db.Close,
	}, nil
}
