package db

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktracker/internal/config"
)

// ConnectDB opens the sqlx pool for the MySQL or PostgreSQL driver.
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	driverName, dsn, err := sqlDSN(conf)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func sqlDSN(conf *config.Config) (string, string, error) {
	switch conf.DbDriver {
	case config.DriverMySQL:
		params := conf.DbParams
		if params == "" {
			params = "parseTime=true&multiStatements=true"
		}
		return "mysql", fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?%s",
			conf.DbUser,
			conf.DbPassword,
			conf.DbHost,
			conf.DbPort,
			conf.DbName,
			params,
		), nil
	case config.DriverPostgres:
		params := conf.DbParams
		if params == "" {
			params = "sslmode=disable"
		}
		return "pgx", fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?%s",
			conf.DbUser,
			conf.DbPassword,
			conf.DbHost,
			conf.DbPort,
			conf.DbName,
			params,
		), nil
	default:
		return "", "", fmt.Errorf("unsupported sql driver %q", conf.DbDriver)
	}
}

// ConnectSQLite opens the embedded SQLite store and migrates the tasks table.
func ConnectSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	// SQLite serialises writers; one connection also keeps ":memory:" databases alive.
	sqlDB.SetMaxOpenConns(1)

	if err := MigrateSQLite(db); err != nil {
		return nil, err
	}

	return db, nil
}

func MigrateSQLite(db *gorm.DB) error {
	if err := db.AutoMigrate(&taskModel{}); err != nil {
		return fmt.Errorf("failed to migrate tasks table: %w", err)
	}
	return nil
}
