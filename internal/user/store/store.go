package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/prajwal2403/fintrack/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectUserColumns = `
	u.id, u.first_name, u.last_name, u.email, u.password_hash, u.phone_number, u.created_at
`

func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var phone sql.NullString

	if err := s.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &phone, &u.CreatedAt,
	); err != nil {
		return nil, err
	}

	if phone.Valid {
		u.PhoneNumber = &phone.String
	}

	return &u, nil
}

const uniqueViolation = "23505"

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.PhoneNumber,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrDuplicateEmail
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.email = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("finding user by email: %w", err)
	}

	return u, nil
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("finding user by id: %w", err)
	}

	return u, nil
}
