// Package llm wraps the Gemini API behind a narrow text-generation
// contract.
//
// The wrapped service sees one request shape: an optional system
// instruction, one user turn of text and/or inline file parts, and an
// optional response schema. Callers never touch chat sessions or
// transport details, so the underlying SDK can change without touching
// the pipeline.
package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

var (
	// ErrGenerateFailed wraps any upstream generation failure.
	ErrGenerateFailed = errors.New("generation failed")

	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrEmbedFailed wraps any upstream embedding failure.
	ErrEmbedFailed = errors.New("embedding failed")
)

// Part is one piece of the user turn: either text or inline binary
// data (an uploaded PDF).
type Part struct {
	Text string
	Data []byte
	MIME string
}

// TextPart returns a text part.
func TextPart(s string) Part { return Part{Text: s} }

// FilePart returns an inline binary part.
func FilePart(data []byte, mime string) Part {
	return Part{Data: data, MIME: mime}
}

// Request describes one generation call.
//
// System is always delivered before any other content. The Gemini
// interface has a dedicated system-instruction field, so the historic
// seed-as-first-user-turn workaround is not needed; callers only see
// this contract.
type Request struct {
	System string
	Parts  []Part

	// Schema, when non-nil, constrains the response to JSON matching
	// the schema. Callers must keep a free-text fallback: models can
	// still deviate.
	Schema *genai.Schema
}

// Generator is the consumer-side contract for text generation.
// Production code uses *Client; tests inject fakes.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
