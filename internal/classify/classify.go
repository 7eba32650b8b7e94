// Package classify labels uploaded documents with a doctype.Type.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nyayalabs/nyaya/internal/doctype"
	"github.com/nyayalabs/nyaya/internal/llm"
	"github.com/nyayalabs/nyaya/internal/prompt"
)

// Classifier asks the model what kind of legal document was uploaded
// and normalizes the free-form answer into the fixed taxonomy.
type Classifier struct {
	generator llm.Generator
	logger    *slog.Logger
}

// New creates a Classifier. logger may be nil.
func New(generator llm.Generator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{generator: generator, logger: logger}
}

// Classify labels the PDF. This is a best-effort heuristic over LLM
// output, and availability wins over precision: any generator error,
// empty answer, or unrecognized label degrades to doctype.General
// rather than failing the request.
func (c *Classifier) Classify(ctx context.Context, pdf []byte) doctype.Type {
	out, err := c.generator.Generate(ctx, llm.Request{
		Parts: []llm.Part{
			llm.FilePart(pdf, "application/pdf"),
			llm.TextPart(prompt.ClassifyInstruction),
		},
	})
	if err != nil {
		c.logger.Warn("document classification failed, defaulting to general", "error", err)
		return doctype.General
	}

	label := strings.ToLower(strings.TrimSpace(out))
	t := doctype.FromLabel(label)
	c.logger.Debug("classified document", "label", label, "type", t)
	return t
}
