package answerit

import "errors"

var (
	// ErrCorpusStoreRequired indicates that the corpus store parameter is nil.
	ErrCorpusStoreRequired = errors.New("corpus store is required")

	// ErrAIDisabled indicates an operation that needs the embedding service
	// was called on an engine built without one.
	ErrAIDisabled = errors.New("ai provider is disabled")
)
