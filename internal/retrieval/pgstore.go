package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// ErrInvalidTableName indicates the configured corpus table name is not
// a plain SQL identifier.
var ErrInvalidTableName = errors.New("invalid corpus table name")

// Table names come from configuration, not user input, but they are
// interpolated into SQL so they are restricted to plain identifiers.
var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PgStore is the production VectorStore backed by PostgreSQL with the
// pgvector extension. Ranking uses cosine distance; the reported score
// is cosine similarity, so it is non-increasing down the result list.
//
// PgStore is safe for concurrent use.
type PgStore struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// NewPgStore creates a PgStore over the given pool and corpus table.
func NewPgStore(pool *pgxpool.Pool, table string, logger *slog.Logger) (*PgStore, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PgStore{pool: pool, table: table, logger: logger}, nil
}

// Query implements VectorStore.
func (s *PgStore) Query(ctx context.Context, vector []float32, topK int) ([]Passage, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopK, topK)
	}

	sql := fmt.Sprintf(`SELECT id, text, metadata, 1 - (embedding <=> $1) AS score
		FROM %s ORDER BY embedding <=> $1 LIMIT $2`,
		pgx.Identifier{s.table}.Sanitize())

	rows, err := s.pool.Query(ctx, sql, pgvector.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var passages []Passage
	for rows.Next() {
		var (
			p        Passage
			metaJSON []byte
		)
		if err := rows.Scan(&p.ID, &p.Text, &metaJSON, &p.Score); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &p.Metadata); err != nil {
				s.logger.Warn("unparseable passage metadata", "id", p.ID, "error", err)
				p.Metadata = nil
			}
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading passages: %w", err)
	}
	return passages, nil
}

// UpsertVectors inserts or replaces passages with their embeddings.
// vectors[i] belongs to passages[i]. This is the ingestion write path;
// the serving path only reads through Query.
func (s *PgStore) UpsertVectors(ctx context.Context, passages []Passage, vectors [][]float32) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passage/vector count mismatch: %d vs %d", len(passages), len(vectors))
	}

	sql := fmt.Sprintf(`INSERT INTO %s (id, text, metadata, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding`,
		pgx.Identifier{s.table}.Sanitize())

	batch := &pgx.Batch{}
	for i, p := range passages {
		metaJSON, err := json.Marshal(p.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata for %q: %w", p.ID, err)
		}
		batch.Queue(sql, p.ID, p.Text, metaJSON, pgvector.NewVector(vectors[i]))
	}

	results := s.pool.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			s.logger.Warn("closing upsert batch", "error", err)
		}
	}()

	for range passages {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upserting passage: %w", err)
		}
	}

	s.logger.Debug("upserted passages", "count", len(passages))
	return nil
}
