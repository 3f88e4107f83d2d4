package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/folio/internal/models"
)

// CreateContact persists a contact message and returns it with its id.
func (s *Store) CreateContact(ctx context.Context, name, email, message string) (*models.Message, error) {
	now := time.Now().UTC()
	m := &models.Message{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO contacts (id, name, email, message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Email, m.Message, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create contact: %w", err)
	}
	return m, nil
}

// ListContacts returns all contact messages, newest first.
func (s *Store) ListContacts(ctx context.Context) ([]models.Message, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, name, email, message, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list contacts: %w", err)
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
