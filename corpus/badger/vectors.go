package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
)

// VectorRepository stores category embedding vectors keyed by corpus
// revision, model tier, and category. Vectors computed for one corpus
// revision never leak into another.
type VectorRepository struct {
	backend *Backend
	logger  *slog.Logger
}

// NewVectorRepository creates a vector repository on an open backend.
func NewVectorRepository(backend *Backend) (*VectorRepository, error) {
	return &VectorRepository{
		backend: backend,
		logger:  slog.Default().With("component", "vector-repository"),
	}, nil
}

// Close releases resources. VectorRepository has no resources of its own.
func (r *VectorRepository) Close() error {
	return nil
}

// PutVector stores one category vector.
func (r *VectorRepository) PutVector(ctx context.Context, corpusHash core.ID, tier, category string, vector []float32) error {
	return r.PutVectors(ctx, corpusHash, tier, map[string][]float32{category: vector})
}

// PutVectors stores a batch of category vectors in a single transaction.
func (r *VectorRepository) PutVectors(ctx context.Context, corpusHash core.ID, tier string, vectors map[string][]float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return corpus.ErrStorageClosed
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for category, vector := range vectors {
			key := makeVectorKey(corpusHash, tier, category)
			if err := tx.Set(key, corpus.MarshalVector(vector)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("vectors stored",
		"count", len(vectors),
		"tier", tier,
		"hash", uint64(corpusHash))
	return nil
}

// GetVector retrieves one category vector. Returns corpus.ErrNotFound when
// no vector is stored for the triple.
func (r *VectorRepository) GetVector(ctx context.Context, corpusHash core.ID, tier, category string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, corpus.ErrStorageClosed
	}

	var vector []float32
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(corpusHash, tier, category))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return corpus.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			vector, err = corpus.UnmarshalVector(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// GetVectors retrieves all category vectors for one corpus revision and
// tier, keyed by category.
func (r *VectorRepository) GetVectors(ctx context.Context, corpusHash core.ID, tier string) (map[string][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, corpus.ErrStorageClosed
	}

	result := make(map[string][]float32)
	prefix := makeVectorPrefix(corpusHash, tier)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			category := string(item.Key()[len(prefix):])

			err := item.Value(func(val []byte) error {
				vector, err := corpus.UnmarshalVector(val)
				if err != nil {
					return err
				}
				result[category] = vector
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("vectors loaded",
		"count", len(result),
		"tier", tier,
		"hash", uint64(corpusHash))
	return result, nil
}

// DeleteVectors removes every vector stored for one corpus revision across
// all tiers. Called when a revision is replaced and its vectors are stale.
func (r *VectorRepository) DeleteVectors(ctx context.Context, corpusHash core.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return corpus.ErrStorageClosed
	}

	prefix := makeHashPrefix(corpusHash)

	// Collect keys first; deleting while iterating invalidates the iterator.
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Info("stale vectors deleted", "count", len(keys), "hash", uint64(corpusHash))
	return nil
}
