package llm

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/nyayalabs/nyaya/internal/config"
)

// Client is the production Generator backed by the Gemini API. It also
// provides embeddings for the retrieval layer.
//
// Client is safe for concurrent use; generation knobs are fixed at
// construction and never mutated.
type Client struct {
	genai         *genai.Client
	model         string
	embedderModel string
	temperature   float32
	topP          float32
	topK          float32
	maxTokens     int32
	logger        *slog.Logger
}

// NewClient creates a Gemini-backed client from the application
// configuration.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{
		genai:         gc,
		model:         cfg.Model,
		embedderModel: cfg.EmbedderModel,
		temperature:   cfg.Temperature,
		topP:          cfg.TopP,
		topK:          float32(cfg.TopK),
		maxTokens:     cfg.MaxTokens,
		logger:        logger,
	}, nil
}

// Generate implements Generator. Upstream failures wrap
// ErrGenerateFailed; the caller decides whether that aborts the request.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	gcfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		TopP:             genai.Ptr(c.topP),
		TopK:             genai.Ptr(c.topK),
		MaxOutputTokens:  c.maxTokens,
		ResponseMIMEType: "text/plain",
	}
	if req.System != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		gcfg.ResponseMIMEType = "application/json"
		gcfg.ResponseSchema = req.Schema
	}

	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Data != nil {
			parts = append(parts, genai.NewPartFromBytes(p.Data, p.MIME))
			continue
		}
		parts = append(parts, genai.NewPartFromText(p.Text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, gcfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("generated response", "model", c.model, "chars", len(text))
	return text, nil
}

// Embed converts text into a fixed-length vector using the configured
// embedding model. The mapping is deterministic for a given model
// version. Output is truncated to config.EmbeddingDimension to match
// the corpus schema.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	dim := int32(config.EmbeddingDimension)
	resp, err := c.genai.Models.EmbedContent(ctx, c.embedderModel,
		genai.Text(text),
		&genai.EmbedContentConfig{OutputDimensionality: &dim},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedFailed, err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrEmbedFailed)
	}
	return resp.Embeddings[0].Values, nil
}
