package database

import (
	"fmt"

	"quiz-arena/internal/config"
	"quiz-arena/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
)

func init() {
	// go-ora takes :name placeholders; sqlx does not know the driver name.
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

// Connect opens a pooled sqlx handle for the configured driver and pings it.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DB.Driver
	if driver != config.DriverOracle && driver != config.DriverPgx {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	logger.Get().Info("Connected to database",
		zap.String("driver", driver),
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port),
		zap.String("name", cfg.DB.DBName))
	return db, nil
}
