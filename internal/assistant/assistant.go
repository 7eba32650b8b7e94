// Package assistant wires retrieval, generation, classification,
// parsing, and draft export into the two request pipelines.
//
// Both pipelines are single-request, synchronous chains of blocking
// calls. Nothing here holds mutable state across requests; concurrent
// requests share only read-only configuration and client handles.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/nyayalabs/nyaya/internal/analysis"
	"github.com/nyayalabs/nyaya/internal/doctype"
	"github.com/nyayalabs/nyaya/internal/draft"
	"github.com/nyayalabs/nyaya/internal/llm"
	"github.com/nyayalabs/nyaya/internal/prompt"
	"github.com/nyayalabs/nyaya/internal/retrieval"
)

// MaxQueryLen is the query length cap, in characters.
const MaxQueryLen = 500

var (
	// ErrEmptyQuery indicates a blank query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrQueryTooLong indicates the query exceeds MaxQueryLen characters.
	ErrQueryTooLong = fmt.Errorf("query exceeds %d characters", MaxQueryLen)

	// ErrEmptyDocument indicates an empty upload.
	ErrEmptyDocument = errors.New("document is empty")
)

// DocumentClassifier labels an uploaded PDF. It never fails; ambiguous
// or unreadable documents come back as doctype.General.
type DocumentClassifier interface {
	Classify(ctx context.Context, pdf []byte) doctype.Type
}

// Validation is the outcome of the document flow.
type Validation struct {
	Type     doctype.Type
	Analysis analysis.Result

	// Draft is the exported .docx, nil when export failed. A failed
	// export degrades the response instead of aborting it.
	Draft *draft.Draft
}

// Assistant runs the query and document pipelines.
type Assistant struct {
	retriever  *retrieval.Retriever
	generator  llm.Generator
	classifier DocumentClassifier
	drafts     *draft.Store
	structured bool
	logger     *slog.Logger
}

// Config collects the assistant's dependencies.
type Config struct {
	Retriever  *retrieval.Retriever
	Generator  llm.Generator
	Classifier DocumentClassifier
	Drafts     *draft.Store

	// StructuredOutput requests schema-constrained JSON for document
	// analysis; the label parser remains the fallback.
	StructuredOutput bool

	Logger *slog.Logger
}

// New creates an Assistant. All dependencies except Logger are required.
func New(cfg Config) (*Assistant, error) {
	if cfg.Retriever == nil {
		return nil, errors.New("retriever is required")
	}
	if cfg.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if cfg.Classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if cfg.Drafts == nil {
		return nil, errors.New("draft store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		retriever:  cfg.Retriever,
		generator:  cfg.Generator,
		classifier: cfg.Classifier,
		drafts:     cfg.Drafts,
		structured: cfg.StructuredOutput,
		logger:     logger,
	}, nil
}

// Answer runs the query flow: retrieve the ten nearest statute
// passages and answer conditioned on them. Retrieval or generation
// failures abort the request; there are no retries.
func (a *Assistant) Answer(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > MaxQueryLen {
		return "", ErrQueryTooLong
	}

	passages, err := a.retriever.Retrieve(ctx, query, retrieval.QueryTopK)
	if err != nil {
		return "", err
	}
	context := retrieval.Flatten(passages)

	answer, err := a.generator.Generate(ctx, llm.Request{
		System: prompt.LegalQuery,
		Parts:  []llm.Part{llm.TextPart(prompt.QueryTurn(context, query))},
	})
	if err != nil {
		return "", err
	}

	a.logger.Debug("answered query", "passages", len(passages), "answer_chars", len(answer))
	return answer, nil
}

// Validate runs the document flow: classify the PDF, retrieve statute
// context for its type, generate the six-section analysis, and export
// the draft.
func (a *Assistant) Validate(ctx context.Context, pdf []byte) (*Validation, error) {
	if len(pdf) == 0 {
		return nil, ErrEmptyDocument
	}

	docType := a.classifier.Classify(ctx, pdf)

	passages, err := a.retriever.Retrieve(ctx, prompt.QueryTerms(docType), retrieval.DocumentTopK)
	if err != nil {
		return nil, err
	}
	context := retrieval.Flatten(passages)

	req := llm.Request{
		Parts: []llm.Part{
			llm.FilePart(pdf, "application/pdf"),
			llm.TextPart(prompt.DocumentPrompt(context, docType)),
		},
	}
	if a.structured {
		req.Schema = analysis.Schema()
	}

	raw, err := a.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := a.parse(raw)

	v := &Validation{Type: docType, Analysis: result}
	d, err := a.drafts.Save(docType, result.Draft)
	if err != nil {
		// Analysis still has value without the export.
		a.logger.Warn("draft export failed", "type", docType, "error", err)
	} else {
		v.Draft = d
	}

	a.logger.Debug("validated document",
		"type", docType, "passages", len(passages), "exported", v.Draft != nil)
	return v, nil
}

// parse decodes the model output, preferring the structured path and
// falling back to label scraping when the JSON contract was not met.
func (a *Assistant) parse(raw string) analysis.Result {
	if a.structured {
		if r, err := analysis.ParseJSON(raw); err == nil {
			return r
		}
		a.logger.Warn("structured analysis output unparsable, falling back to label parser")
	}
	return analysis.Parse(raw)
}
