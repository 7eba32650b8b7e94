// Package testutil provides deterministic fakes for the retrieval and
// generation services.
package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"sync"

	"github.com/nyayalabs/nyaya/internal/llm"
	"github.com/nyayalabs/nyaya/internal/retrieval"
)

// FakeEmbedder maps text to a deterministic vector derived from its
// SHA-256 digest. Same input, same vector, like the real service.
type FakeEmbedder struct {
	// Err, when non-nil, is returned by every Embed call.
	Err error

	// Dim is the vector width. Zero means 8.
	Dim int
}

// Embed implements retrieval.Embedder.
func (f *FakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	dim := f.Dim
	if dim == 0 {
		dim = 8
	}
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, dim)
	for i := range vec {
		bits := binary.BigEndian.Uint32(sum[(i*4)%len(sum):])
		vec[i] = float32(bits%1000) / 1000
	}
	return vec, nil
}

// FakeStore is an in-memory VectorStore returning a fixed passage list
// truncated to topK. It ignores the query vector; ranking fidelity is
// the production store's concern.
type FakeStore struct {
	Passages []retrieval.Passage
	Err      error

	mu      sync.Mutex
	queries int
}

// Query implements retrieval.VectorStore.
func (f *FakeStore) Query(_ context.Context, _ []float32, topK int) ([]retrieval.Passage, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	if topK > len(f.Passages) {
		topK = len(f.Passages)
	}
	out := make([]retrieval.Passage, topK)
	copy(out, f.Passages[:topK])
	return out, nil
}

// Queries returns how many Query calls the store served.
func (f *FakeStore) Queries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

// FakeGenerator returns canned responses keyed by substring match
// against the request's text parts. First matching rule wins; the
// fallback answers everything else.
//
// Safe for concurrent use.
type FakeGenerator struct {
	mu       sync.Mutex
	rules    []fakeRule
	fallback string
	err      error
	calls    []llm.Request
}

type fakeRule struct {
	pattern  string
	response string
}

// NewFakeGenerator creates a generator answering fallback by default.
func NewFakeGenerator(fallback string) *FakeGenerator {
	return &FakeGenerator{fallback: fallback}
}

// AddResponse registers a pattern-response pair. The pattern matches
// case-insensitively against the concatenated text parts.
func (g *FakeGenerator) AddResponse(pattern, response string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rules = append(g.rules, fakeRule{pattern: strings.ToLower(pattern), response: response})
}

// Fail makes every subsequent Generate call return err.
func (g *FakeGenerator) Fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// Generate implements llm.Generator.
func (g *FakeGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, req)
	if g.err != nil {
		return "", g.err
	}

	var text strings.Builder
	for _, p := range req.Parts {
		text.WriteString(strings.ToLower(p.Text))
		text.WriteString("\n")
	}
	haystack := text.String()
	for _, r := range g.rules {
		if strings.Contains(haystack, r.pattern) {
			return r.response, nil
		}
	}
	return g.fallback, nil
}

// Calls returns a copy of every recorded request.
func (g *FakeGenerator) Calls() []llm.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := make([]llm.Request, len(g.calls))
	copy(cp, g.calls)
	return cp
}
