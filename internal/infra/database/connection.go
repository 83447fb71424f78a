package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/lib/pq"               // registers "postgres"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

// NewDBConnection opens the pool and pings it before handing it out.
func NewDBConnection(ctx context.Context, driver, connString string) (*sql.DB, error) {
	if connString == "" {
		return nil, errors.New("database: empty connection string")
	}
	if driver != DriverPQ && driver != DriverPGX {
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return db, nil
}

// SQLState extracts the Postgres error code from either driver's error type,
// or "" when err did not come from the server.
func SQLState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports a duplicate key (23505), e.g. an id collision.
func IsUniqueViolation(err error) bool {
	return SQLState(err) == "23505"
}
