package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/answerit/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// It holds one client per model tier so the adaptive selector's decision
// maps onto two concrete models behind the same interface.
type Embedder struct {
	light  embeddings.Embedder
	heavy  embeddings.Embedder
	logger *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	light, err := newTierEmbedder(config.EmbeddingHost, config.LightEmbeddingModel)
	if err != nil {
		return nil, err
	}

	heavy, err := newTierEmbedder(config.EmbeddingHost, config.HeavyEmbeddingModel)
	if err != nil {
		return nil, err
	}

	return &Embedder{
		light:  light,
		heavy:  heavy,
		logger: slog.Default().With("component", "openai-embedder"),
	}, nil
}

// newTierEmbedder builds one langchaingo embedder for a single model.
// Use "none" as token for local OpenAI-compatible services that don't require authentication.
func newTierEmbedder(host, model string) (embeddings.Embedder, error) {
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}

	return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// forTier resolves the client for a tier. Unknown tiers fall back to light,
// matching the selector's never-raise contract.
func (e *Embedder) forTier(tier ai.ModelTier) embeddings.Embedder {
	if tier == ai.TierHeavy {
		return e.heavy
	}
	return e.light
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string, tier ai.ModelTier) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text), "tier", tier)

	vectors, err := e.forTier(tier).EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "tier", tier, "err", err)
		return nil, err
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result", "tier", tier)
		return []float32{}, nil
	}

	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string, tier ai.ModelTier) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts), "tier", tier)

	vectors, err := e.forTier(tier).EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "tier", tier, "err", err)
		return nil, err
	}

	return vectors, nil
}
