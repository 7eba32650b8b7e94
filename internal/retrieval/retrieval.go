// Package retrieval fetches statute passages relevant to a query.
//
// The pipeline is embed → nearest-neighbor search → flatten. The
// retriever trusts the store's ranking and never re-ranks; downstream
// stages must tolerate an empty context.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Retrieval depths for the two request flows. The document flow uses a
// wider context because an uploaded document spans more legal ground
// than a single question.
const (
	QueryTopK    = 10
	DocumentTopK = 15
)

var (
	// ErrContextUnavailable wraps any embedder or store failure. The
	// request aborts; there are no retries.
	ErrContextUnavailable = errors.New("legal context unavailable")

	// ErrInvalidTopK indicates a non-positive retrieval depth.
	ErrInvalidTopK = errors.New("top-k must be positive")
)

// Passage is one retrieved corpus entry. Passages are immutable and
// ordered by descending relevance score.
type Passage struct {
	ID       string
	Text     string
	Score    float32
	Metadata map[string]string
}

// Embedder converts text into a fixed-length vector. The mapping must
// be deterministic: same input, same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore is the nearest-neighbor search contract. Query returns
// at most topK passages ranked by similarity. The ingestion path
// writes through the concrete store, not this interface.
type VectorStore interface {
	Query(ctx context.Context, vector []float32, topK int) ([]Passage, error)
}

// Retriever orchestrates the embedder and the vector store.
type Retriever struct {
	embedder Embedder
	store    VectorStore
	logger   *slog.Logger
}

// New creates a Retriever. logger may be nil.
func New(embedder Embedder, store VectorStore, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{embedder: embedder, store: store, logger: logger}
}

// Retrieve returns the topK passages nearest to query, in the store's
// rank order. An empty result is not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]Passage, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopK, topK)
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}

	passages, err := r.store.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}

	r.logger.Debug("retrieved passages", "top_k", topK, "returned", len(passages))
	return passages, nil
}

// Flatten joins passage texts into a single newline-separated context
// string, one passage per line, preserving rank order. An empty slice
// yields an empty string.
func Flatten(passages []Passage) string {
	if len(passages) == 0 {
		return ""
	}
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}
