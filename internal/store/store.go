// Package store persists saved designs in a local SQLite database. Each
// design row holds the JSON layout document plus a user-facing name.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sblake94/plugin-gui-designer/internal/export"
	"github.com/sblake94/plugin-gui-designer/internal/models"
)

// ErrDesignNotFound marks an unknown design id.
var ErrDesignNotFound = errors.New("design not found")

const schema = `
CREATE TABLE IF NOT EXISTS designs (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	document   TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_designs_updated_at ON designs(updated_at DESC);
`

// Store is a SQLite-backed design repository.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the design database at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening design database: %w", err)
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging design database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying design schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a new design, or overwrites the design with the given id
// when id is non-empty. It returns the stored design's info.
func (s *Store) Save(ctx context.Context, id, name string, doc models.Document) (models.DesignInfo, error) {
	body, err := export.Document(doc.Canvas, doc.Components)
	if err != nil {
		return models.DesignInfo{}, err
	}

	now := time.Now().UnixMilli()
	if id == "" {
		id = uuid.New().String()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO designs (id, name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		id, name, string(body), now, now)
	if err != nil {
		return models.DesignInfo{}, fmt.Errorf("saving design: %w", err)
	}

	return models.DesignInfo{ID: id, Name: name, UpdatedAt: now}, nil
}

// Get loads one design's layout document.
func (s *Store) Get(ctx context.Context, id string) (*models.Document, models.DesignInfo, error) {
	var (
		info models.DesignInfo
		body string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, document, updated_at FROM designs WHERE id = ?`, id).
		Scan(&info.ID, &info.Name, &body, &info.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.DesignInfo{}, ErrDesignNotFound
	}
	if err != nil {
		return nil, models.DesignInfo{}, fmt.Errorf("loading design: %w", err)
	}

	doc, err := export.ParseDocument([]byte(body))
	if err != nil {
		return nil, models.DesignInfo{}, fmt.Errorf("design %s: %w", id, err)
	}
	return doc, info, nil
}

// List returns design infos, most recently updated first.
func (s *Store) List(ctx context.Context) ([]models.DesignInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, updated_at FROM designs ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing designs: %w", err)
	}
	defer rows.Close()

	infos := []models.DesignInfo{}
	for rows.Next() {
		var info models.DesignInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning design row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a design. It reports whether the design existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM designs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting design: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
