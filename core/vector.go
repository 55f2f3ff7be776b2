package core

import (
	"encoding/binary"
	"math"

	"github.com/go-crypt/x/blake2b"
)

// CosineSimilarity computes the cosine of the angle between two embedding
// vectors. Mismatched lengths and zero-norm inputs yield exactly 0.0, never
// NaN, so downstream threshold comparisons stay total.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EmbeddingKey derives a deterministic ID from an embedding vector.
// Components are rounded to four decimal places before hashing so that
// near-identical vectors from repeated model calls collapse to one key.
func EmbeddingKey(vector []float32) ID {
	h, _ := blake2b.New(8, nil)
	var buf [4]byte
	for _, v := range vector {
		rounded := int32(math.Round(float64(v) * 10000))
		binary.LittleEndian.PutUint32(buf[:], uint32(rounded))
		h.Write(buf[:])
	}
	return ID(binary.LittleEndian.Uint64(h.Sum(nil)))
}
