package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tina-pina/the-scoop/internal/store"
)

const createSnapshotTableSQL = `
CREATE TABLE IF NOT EXISTS snapshot (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);
`

// SQLite keeps the latest snapshot as a JSON document in a one-row table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and creates the table if needed.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createSnapshotTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("persist: create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context) (*store.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: load snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("persist: decode snapshot: %w", err)
	}

	return &snap, nil
}

func (s *SQLite) Save(ctx context.Context, snap store.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshot (id, data, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("persist: save snapshot: %w", err)
	}

	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
