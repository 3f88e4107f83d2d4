package store

import (
	"context"
	"fmt"
	"time"
)

// ContentChecksums returns the last synced checksum of every content file.
func (s *Store) ContentChecksums(ctx context.Context) (map[string]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT path, checksum FROM content_files`)
	if err != nil {
		return nil, fmt.Errorf("store: content checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// SetContentChecksum records that path was synced at checksum cs.
func (s *Store) SetContentChecksum(ctx context.Context, path, cs string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO content_files (path, checksum, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET checksum = excluded.checksum, updated_at = excluded.updated_at
	`, path, cs, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: set content checksum: %w", err)
	}
	return nil
}

// ForgetContentFile drops the bookkeeping row for path. Records imported from
// it stay in their collections.
func (s *Store) ForgetContentFile(ctx context.Context, path string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM content_files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("store: forget content file: %w", err)
	}
	return nil
}
