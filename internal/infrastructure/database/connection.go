package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nplqhub/revise/internal/adapter/docstore"
	"github.com/nplqhub/revise/internal/infrastructure/config"
)

// NewStore opens the document store for the configured driver and returns
// it with a cleanup function.
func NewStore(cfg *config.Config) (docstore.Store, func(), error) {
	switch cfg.DatabaseDriver() {
	case "postgres":
		return newPostgresStore(cfg)
	case "sqlite":
		return newSQLiteStore(cfg)
	case "memory":
		return docstore.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver())
	}
}

func newPostgresStore(cfg *config.Config) (docstore.Store, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("parse pool config: %w", err)
	}
	poolCfg.MaxConns = 10

	if cfg.Database.LogSQL {
		logger := log.New(log.Writer(), "pgx ", log.LstdFlags|log.Lmicroseconds)
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger: tracelog.LoggerFunc(func(_ context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
				logger.Printf("level=%s msg=%s data=%v", lvl, msg, data)
			}),
			LogLevel: tracelog.LogLevelTrace,
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}

	return docstore.NewPostgresStore(pool), pool.Close, nil
}

func newSQLiteStore(cfg *config.Config) (docstore.Store, func(), error) {
	db, err := sql.Open("sqlite3", cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// go-sqlite3 serializes writes per connection; a single connection
	// avoids SQLITE_BUSY under concurrent merges.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Printf("close sqlite database: %v", err)
		}
	}
	return docstore.NewSQLiteStore(db), cleanup, nil
}

// Migrate runs schema setup when the store needs it.
func Migrate(ctx context.Context, store docstore.Store) error {
	migrator, ok := store.(docstore.Migrator)
	if !ok {
		return nil
	}
	return migrator.Migrate(ctx)
}
