package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string using
	// the model behind the requested tier. Identical input to the same tier
	// must produce stable vectors; caching upstream depends on it.
	// Returns an error if the embedding generation fails, so callers can
	// degrade to lexical matching.
	EmbedText(ctx context.Context, text string, tier ModelTier) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string, tier ModelTier) ([][]float32, error)
}

// Generator produces short free-form text, used for the optional generative
// answer fallback. Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText completes the prompt and returns at most maxLength runes.
	// Returns an error if generation fails; callers fall through to the
	// default template instead of surfacing it.
	GenerateText(ctx context.Context, prompt string, maxLength int) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Generator instances, ensuring
// they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
