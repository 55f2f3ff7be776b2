package warmup

import "errors"

var (
	// ErrEmbedderRequired indicates that the embedder parameter is nil.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrSinkRequired indicates that no vector sink was provided.
	ErrSinkRequired = errors.New("vector sink is required")

	// ErrInvalidMaxAttempts indicates maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
