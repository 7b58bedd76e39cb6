// Package sqlite persists the project locally, the desktop stand-in for the
// browser's object store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ksenko/lyrstage/internal/types"
)

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS segments (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	text TEXT NOT NULL,
	start_time REAL NOT NULL,
	end_time REAL NOT NULL,
	style TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_segments_position ON segments(position);
CREATE TABLE IF NOT EXISTS media (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	path TEXT NOT NULL,
	kind TEXT NOT NULL
);
`

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create project dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open project db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveLyrics replaces the stored segment list wholesale. The list is small
// (one song) and the caller already debounces, so a full rewrite keeps the
// stored order trivially consistent with the in-memory canonical order.
func (s *Store) SaveLyrics(ctx context.Context, segments []types.LyricSegment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM segments"); err != nil {
		return fmt.Errorf("clear segments: %w", err)
	}
	for i, seg := range segments {
		style, err := json.Marshal(seg.Style)
		if err != nil {
			return fmt.Errorf("marshal style for %s: %w", seg.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO segments (id, position, text, start_time, end_time, style)
			VALUES (?, ?, ?, ?, ?, ?)`,
			seg.ID, i, seg.Text, seg.StartTime, seg.EndTime, string(style)); err != nil {
			return fmt.Errorf("insert segment %s: %w", seg.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) SaveMedia(ctx context.Context, media types.MediaRef) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO media (id, path, kind) VALUES (1, ?, ?)`,
		media.Path, media.Kind)
	return err
}

// Load returns the last-saved project, or ok=false when nothing was saved.
func (s *Store) Load(ctx context.Context) (types.ProjectData, bool, error) {
	var data types.ProjectData

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, start_time, end_time, style
		FROM segments ORDER BY position`)
	if err != nil {
		return data, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var seg types.LyricSegment
		var style string
		if err := rows.Scan(&seg.ID, &seg.Text, &seg.StartTime, &seg.EndTime, &style); err != nil {
			return data, false, err
		}
		if err := json.Unmarshal([]byte(style), &seg.Style); err != nil {
			return data, false, fmt.Errorf("unmarshal style for %s: %w", seg.ID, err)
		}
		data.Segments = append(data.Segments, seg)
	}
	if err := rows.Err(); err != nil {
		return data, false, err
	}

	var media types.MediaRef
	err = s.db.QueryRowContext(ctx, "SELECT path, kind FROM media WHERE id = 1").
		Scan(&media.Path, &media.Kind)
	switch {
	case err == sql.ErrNoRows:
		// no media saved yet
	case err != nil:
		return data, false, err
	default:
		data.Media = &media
	}

	return data, len(data.Segments) > 0 || data.Media != nil, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM segments"); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM media")
	return err
}
