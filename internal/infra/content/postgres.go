package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
)

// Querier is the subset of pgxpool.Pool used by Postgres.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres loads the newest library document from the content_library table:
//
//	CREATE TABLE content_library (
//	    version    TEXT PRIMARY KEY,
//	    document   TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Postgres struct {
	db     Querier
	logger *slog.Logger
}

// NewPostgres constructs the source.
func NewPostgres(db Querier, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{db: db, logger: logger.With("component", "content.postgres")}
}

// Load fetches the newest document and decodes it.
func (p *Postgres) Load(ctx context.Context) (*cycle.Library, error) {
	var (
		version  string
		document string
	)
	err := p.db.QueryRow(ctx, `
		SELECT version, document
		FROM content_library
		ORDER BY created_at DESC, version DESC
		LIMIT 1
	`).Scan(&version, &document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("content_library table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("query content library: %w", err)
	}
	lib, err := Decode([]byte(document))
	if err != nil {
		return nil, fmt.Errorf("library row %s: %w", version, err)
	}
	p.logger.Info("library row loaded", "version", version)
	return lib, nil
}

// Connect opens a pool for the given DSN and verifies it with a ping.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

var _ cycle.ContentSource = (*Postgres)(nil)
