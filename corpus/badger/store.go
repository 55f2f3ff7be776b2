// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package badger persists resolved corpora and category embedding vectors
// in BadgerDB, so a restarted engine can serve semantic matches without
// recomputing embeddings.
package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/answerit/corpus"
)

// Store reads and writes the active corpus record. It implements
// corpus.Store so the engine can boot from a seeded database instead of a
// corpus file.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

var _ corpus.Store = (*Store)(nil)

// NewStore creates a corpus store on an open backend.
func NewStore(backend *Backend) (*Store, error) {
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "corpus-badger-store"),
	}, nil
}

// Close releases resources. Store has no resources of its own; the caller
// owns the backend.
func (s *Store) Close() error {
	return nil
}

// Put stores c as the active corpus, replacing any previous revision.
func (s *Store) Put(ctx context.Context, c *corpus.Corpus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return corpus.ErrStorageClosed
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCorpusKey(activeCorpusName)
		if err := tx.Set(key, corpus.MarshalCorpus(c)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.logger.Info("corpus stored", "answers", c.Len(), "hash", uint64(c.Hash()))
	return nil
}

// Load reads and deserializes the active corpus. Returns corpus.ErrNotFound
// when the database has not been seeded.
func (s *Store) Load(ctx context.Context) (*corpus.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.backend.IsClosed() {
		return nil, corpus.ErrStorageClosed
	}

	var result *corpus.Corpus
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCorpusKey(activeCorpusName))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return corpus.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = corpus.UnmarshalCorpus(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("corpus loaded", "answers", result.Len(), "hash", uint64(result.Hash()))
	return result, nil
}
