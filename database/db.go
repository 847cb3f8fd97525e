package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dinepick/logging"

	_ "github.com/lib/pq"
)

// Connect opens the PostgreSQL database holding the restaurants table. The
// handle is only used during startup to read the dataset once.
func Connect(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		return nil, fmt.Errorf("database: DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	// One-shot reader; keep the pool small and let idle connections go.
	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(2)

	logging.Info().Msg("connected to PostgreSQL")
	return db, nil
}
