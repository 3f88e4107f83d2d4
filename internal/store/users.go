package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// CreateUser inserts an admin user. Emails are stored lower-cased.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, apperr.ErrAlreadyExists
		}
		return nil, fmt.Errorf("store: create user: %w", err)
	}
	return u, nil
}

// UserByEmail looks up a user by email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userWhere(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

// UserByID looks up a user by id.
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.userWhere(ctx, "id", id)
}

func (s *Store) userWhere(ctx context.Context, column, value string) (*models.User, error) {
	var u models.User
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE `+column+` = ?`, value,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: user by %s: %w", column, err)
	}
	return &u, nil
}
