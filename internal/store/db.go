package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// NewDB opens a Postgres connection pool and verifies connectivity.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the legislators table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS legislators (
			govtrack_id INTEGER PRIMARY KEY,
			first_name  VARCHAR(100) NOT NULL,
			last_name   VARCHAR(100) NOT NULL,
			birthday    DATE NOT NULL,
			gender      VARCHAR(10) NOT NULL,
			type        VARCHAR(10) NOT NULL,
			state       VARCHAR(2) NOT NULL,
			district    VARCHAR(10),
			party       VARCHAR(50) NOT NULL,
			url         VARCHAR(500),
			notes       TEXT
		)
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
