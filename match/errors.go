package match

import "errors"

var (
	// ErrCorpusRequired indicates that the corpus parameter is nil.
	ErrCorpusRequired = errors.New("corpus is required")

	// ErrClassifierRequired indicates that the classifier parameter is nil.
	ErrClassifierRequired = errors.New("classifier is required")
)
