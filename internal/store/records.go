package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/catalog"
)

// FindProjects returns every stored project record, newest first.
func (s *Store) FindProjects(ctx context.Context) ([]catalog.ProjectRecord, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, slug, title, description, image, link, tags, featured
		FROM projects
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: find projects: %w", err)
	}
	defer rows.Close()

	var out []catalog.ProjectRecord
	for rows.Next() {
		var (
			r                                     catalog.ProjectRecord
			slug, title, desc, image, link, tags sql.NullString
			featured                              sql.NullBool
		)
		if err := rows.Scan(&r.StoreID, &slug, &title, &desc, &image, &link, &tags, &featured); err != nil {
			return nil, err
		}
		r.ID = nullPtr(slug)
		r.Title = nullPtr(title)
		r.Description = nullPtr(desc)
		r.Image = nullPtr(image)
		r.Link = nullPtr(link)
		if tags.Valid {
			// Malformed tag arrays are treated as absent.
			var decoded []string
			if err := json.Unmarshal([]byte(tags.String), &decoded); err == nil {
				r.Tags = decoded
			}
		}
		if featured.Valid {
			r.Featured = &featured.Bool
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FindCertificates returns every stored certificate record, most recent date first.
func (s *Store) FindCertificates(ctx context.Context) ([]catalog.CertificateRecord, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, slug, title, issuer, date, description, type, link
		FROM certificates
		ORDER BY date DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: find certificates: %w", err)
	}
	defer rows.Close()

	var out []catalog.CertificateRecord
	for rows.Next() {
		var (
			r                                            catalog.CertificateRecord
			slug, title, issuer, date, desc, typ, link sql.NullString
		)
		if err := rows.Scan(&r.StoreID, &slug, &title, &issuer, &date, &desc, &typ, &link); err != nil {
			return nil, err
		}
		r.ID = nullPtr(slug)
		r.Title = nullPtr(title)
		r.Issuer = nullPtr(issuer)
		r.Date = nullPtr(date)
		r.Description = nullPtr(desc)
		r.Type = nullPtr(typ)
		r.Link = nullPtr(link)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountProjects returns the number of stored projects.
func (s *Store) CountProjects(ctx context.Context) (int, error) {
	return s.count(ctx, "projects")
}

// CountCertificates returns the number of stored certificates.
func (s *Store) CountCertificates(ctx context.Context) (int, error) {
	return s.count(ctx, "certificates")
}

func (s *Store) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT count(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count %s: %w", table, err)
	}
	return n, nil
}

// UpsertProject stores r keyed by its link. With insertOnly set an existing
// record is left untouched. It reports whether a new record was created.
func (s *Store) UpsertProject(ctx context.Context, r catalog.ProjectRecord, insertOnly bool) (bool, error) {
	if !catalog.IsUsable(r.Link) {
		return false, fmt.Errorf("store: project link is required: %w", apperr.ErrInvalidInput)
	}
	link := strings.TrimSpace(*r.Link)

	var tags any
	if r.Tags != nil {
		b, err := json.Marshal(r.Tags)
		if err != nil {
			return false, fmt.Errorf("store: encode tags: %w", err)
		}
		tags = string(b)
	}
	var featured any
	if r.Featured != nil {
		featured = *r.Featured
	}

	return s.upsert(ctx, "projects", link, insertOnly, func(tx *sql.Tx, id string, exists bool, now time.Time) error {
		if exists {
			_, err := tx.ExecContext(ctx, `
				UPDATE projects SET slug = ?, title = ?, description = ?, image = ?, tags = ?, featured = ?, updated_at = ?
				WHERE id = ?
			`, ptrVal(r.ID), ptrVal(r.Title), ptrVal(r.Description), ptrVal(r.Image), tags, featured, now, id)
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (id, slug, title, description, image, link, tags, featured, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, ptrVal(r.ID), ptrVal(r.Title), ptrVal(r.Description), ptrVal(r.Image), link, tags, featured, now, now)
		return err
	})
}

// UpsertCertificate stores r keyed by its link.
func (s *Store) UpsertCertificate(ctx context.Context, r catalog.CertificateRecord, insertOnly bool) (bool, error) {
	if !catalog.IsUsable(r.Link) {
		return false, fmt.Errorf("store: certificate link is required: %w", apperr.ErrInvalidInput)
	}
	link := strings.TrimSpace(*r.Link)

	return s.upsert(ctx, "certificates", link, insertOnly, func(tx *sql.Tx, id string, exists bool, now time.Time) error {
		if exists {
			_, err := tx.ExecContext(ctx, `
				UPDATE certificates SET slug = ?, title = ?, issuer = ?, date = ?, description = ?, type = ?, updated_at = ?
				WHERE id = ?
			`, ptrVal(r.ID), ptrVal(r.Title), ptrVal(r.Issuer), ptrVal(r.Date), ptrVal(r.Description), ptrVal(r.Type), now, id)
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO certificates (id, slug, title, issuer, date, description, type, link, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, ptrVal(r.ID), ptrVal(r.Title), ptrVal(r.Issuer), ptrVal(r.Date), ptrVal(r.Description), ptrVal(r.Type), link, now, now)
		return err
	})
}

type writeFunc func(tx *sql.Tx, id string, exists bool, now time.Time) error

func (s *Store) upsert(ctx context.Context, table, link string, insertOnly bool, write writeFunc) (bool, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE link = ?`, link).Scan(&id)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("store: lookup %s: %w", table, err)
	}
	if exists && insertOnly {
		return false, nil
	}
	if !exists {
		id = uuid.NewString()
	}

	if err := write(tx, id, exists, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("store: upsert %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("store: commit: %w", err)
	}
	return !exists, nil
}

// SampleTitles returns up to limit titles from the given collection.
func (s *Store) SampleTitles(ctx context.Context, collection string, limit int) ([]string, error) {
	switch collection {
	case "projects", "certificates":
	default:
		return nil, fmt.Errorf("store: unknown collection %q: %w", collection, apperr.ErrInvalidInput)
	}
	rows, err := s.conn.QueryContext(ctx, `SELECT COALESCE(title, '') FROM `+collection+` ORDER BY rowid LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: sample %s: %w", collection, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func ptrVal(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
