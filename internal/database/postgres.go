package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options bounds the underlying connection pool and the startup retry loop.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnectAttempts int
}

// ConnectPostgres establishes a pooled connection to PostgreSQL, retrying
// with exponential backoff so the process tolerates a database that is still
// starting up. It fails hard once the attempts are exhausted.
func ConnectPostgres(dsn string, opts Options, logger zerolog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	attempts := opts.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var db *gorm.DB
	var err error

	backoff := time.Second
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}

		if attempt == attempts {
			return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", attempts, err)
		}

		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("postgres not ready, retrying")

		time.Sleep(backoff)
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	return db, nil
}
