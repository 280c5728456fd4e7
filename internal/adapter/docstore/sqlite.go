package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// SQLiteStore keeps documents in a single table with JSON-encoded data. The
// merge write is a read-modify-write inside a transaction since sqlite has
// no jsonb overlay operator.
type SQLiteStore struct {
	db *sql.DB
}

var (
	_ Store    = (*SQLiteStore)(nil)
	_ Migrator = (*SQLiteStore)(nil)
)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			path       TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			data       TEXT NOT NULL DEFAULT '{}',
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection);`)
	if err != nil {
		return unavailable("create documents table", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, path string) (Document, bool, error) {
	if _, _, err := splitPath(path); err != nil {
		return nil, false, err
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = ?`, path).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("get document", err)
	}
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, unavailable("decode document", err)
	}
	return doc, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, path string, doc Document, merge bool) error {
	collection, _, err := splitPath(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin set document", err)
	}
	defer tx.Rollback()

	next := doc
	if merge {
		var raw string
		err := tx.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = ?`, path).Scan(&raw)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// nothing to merge onto
		case err != nil:
			return unavailable("read document for merge", err)
		default:
			var existing Document
			if err := json.Unmarshal([]byte(raw), &existing); err != nil {
				return unavailable("decode document for merge", err)
			}
			next = Merge(existing, doc)
		}
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return unavailable("encode document", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (path, collection, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (path) DO UPDATE
		SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		path, collection, string(encoded))
	if err != nil {
		return unavailable("set document", err)
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit set document", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	if _, _, err := splitPath(path); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
		return unavailable("delete document", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, collection string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, data FROM documents WHERE collection = ? ORDER BY path`, collection)
	if err != nil {
		return nil, unavailable("list documents", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var path, raw string
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, unavailable("scan document", err)
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, unavailable("decode document", err)
		}
		_, id, err := splitPath(path)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{ID: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list documents", err)
	}
	return entries, nil
}
