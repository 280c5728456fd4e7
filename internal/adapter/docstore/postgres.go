package docstore

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps documents in a single jsonb table. The merge write
// maps onto the jsonb || operator, which is the same top-level field overlay
// the rest of the system assumes.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	_ Store    = (*PostgresStore)(nil)
	_ Migrator = (*PostgresStore)(nil)
)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			path       TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			data       JSONB NOT NULL DEFAULT '{}'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return unavailable("create documents table", err)
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection)`)
	if err != nil {
		return unavailable("create collection index", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, path string) (Document, bool, error) {
	if _, _, err := splitPath(path); err != nil {
		return nil, false, err
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM documents WHERE path = $1`, path).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("get document", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, unavailable("decode document", err)
	}
	return doc, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, path string, doc Document, merge bool) error {
	collection, _, err := splitPath(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return unavailable("encode document", err)
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `
		INSERT INTO documents (path, collection, data, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (path) DO UPDATE
		SET data = EXCLUDED.data, updated_at = now()`
	if merge {
		query = `
			INSERT INTO documents (path, collection, data, updated_at)
			VALUES ($1, $2, $3::jsonb, now())
			ON CONFLICT (path) DO UPDATE
			SET data = documents.data || EXCLUDED.data, updated_at = now()`
	}
	if _, err := s.pool.Exec(ctx, query, path, collection, raw); err != nil {
		return unavailable("set document", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, path string) error {
	if _, _, err := splitPath(path); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE path = $1`, path); err != nil {
		return unavailable("delete document", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT path, data FROM documents WHERE collection = $1 ORDER BY path`, collection)
	if err != nil {
		return nil, unavailable("list documents", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var path string
		var raw []byte
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, unavailable("scan document", err)
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
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
