package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store loads a resolved corpus from a backing source.
//
// Implementations return ErrEmptyCorpus when the source holds no matchable
// answers and no default template.
type Store interface {
	Load(ctx context.Context) (*Corpus, error)
}

// FileStore loads the corpus from a single JSON or YAML file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// Interface compliance check.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a store reading from path. The format is chosen by
// file extension (".yaml"/".yml" for YAML, JSON otherwise).
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: slog.Default().With("component", "corpus-file-store"),
	}
}

// Load reads, parses, and resolves the corpus file.
func (s *FileStore) Load(ctx context.Context) (*Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("loading corpus file", "path", s.path)
	corpus, err := LoadFile(s.path)
	if err != nil {
		s.logger.Error("failed to load corpus file", "path", s.path, "error", err)
		return nil, err
	}
	s.logger.Info("corpus loaded",
		"path", s.path,
		"answers", corpus.Len(),
		"domains", len(corpus.Domains()))
	return corpus, nil
}

// LoadFile reads and resolves a corpus document from path.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return Resolve(doc)
}
