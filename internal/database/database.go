package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

const schema = `
	CREATE EXTENSION IF NOT EXISTS pgcrypto;

	CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name    text NOT NULL,
		last_name     text NOT NULL,
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		phone_number  text,
		created_at    timestamptz NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id     uuid NOT NULL REFERENCES users(id),
		amount      numeric(14,2) NOT NULL CHECK (amount > 0),
		description text,
		date        timestamptz NOT NULL,
		category    text,
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz
	);

	CREATE INDEX IF NOT EXISTS transactions_user_date_idx
		ON transactions (user_id, date DESC);
`

// EnsureSchema creates the users and transactions tables if they do not
// exist yet. There is no migration history; the schema is additive only.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	return nil
}
