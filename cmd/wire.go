package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyayalabs/nyaya/internal/assistant"
	"github.com/nyayalabs/nyaya/internal/classify"
	"github.com/nyayalabs/nyaya/internal/config"
	"github.com/nyayalabs/nyaya/internal/draft"
	"github.com/nyayalabs/nyaya/internal/llm"
	"github.com/nyayalabs/nyaya/internal/retrieval"
)

// runtime bundles the constructed service objects for one command
// invocation. Everything is dependency-injected; there are no
// package-level client handles.
type runtime struct {
	cfg       *config.Config
	pool      *pgxpool.Pool
	client    *llm.Client
	store     *retrieval.PgStore
	assistant *assistant.Assistant
	drafts    *draft.Store
	logger    *slog.Logger
}

// newRuntime wires the full pipeline from configuration.
func newRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*runtime, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to corpus database: %w", err)
	}

	client, err := llm.NewClient(ctx, cfg, logger.With("component", "llm"))
	if err != nil {
		pool.Close()
		return nil, err
	}

	store, err := retrieval.NewPgStore(pool, cfg.CorpusTable, logger.With("component", "store"))
	if err != nil {
		pool.Close()
		return nil, err
	}

	drafts, err := draft.NewStore(cfg.DraftDir, logger.With("component", "drafts"))
	if err != nil {
		pool.Close()
		return nil, err
	}

	a, err := assistant.New(assistant.Config{
		Retriever:        retrieval.New(client, store, logger.With("component", "retriever")),
		Generator:        client,
		Classifier:       classify.New(client, logger.With("component", "classifier")),
		Drafts:           drafts,
		StructuredOutput: cfg.StructuredOutput,
		Logger:           logger.With("component", "assistant"),
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &runtime{
		cfg:       cfg,
		pool:      pool,
		client:    client,
		store:     store,
		assistant: a,
		drafts:    drafts,
		logger:    logger,
	}, nil
}

// close releases the runtime's resources.
func (r *runtime) close() {
	r.pool.Close()
}
