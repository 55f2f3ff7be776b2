package core

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1.0,
		},
		{
			name: "known similarity",
			a:    []float32{1, 0, 0},
			b:    []float32{0.9, 0.43589, 0},
			want: 0.9,
		},
		{
			name: "zero vector yields zero not NaN",
			a:    []float32{0, 0, 0},
			b:    []float32{1, 2, 3},
			want: 0.0,
		},
		{
			name: "length mismatch yields zero",
			a:    []float32{1, 2},
			b:    []float32{1, 2, 3},
			want: 0.0,
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatalf("CosineSimilarity() = NaN")
			}
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{0.2, 0.5, 0.1, 0.9}
	b := []float32{0.7, 0.1, 0.4, 0.3}

	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Errorf("CosineSimilarity() is not symmetric")
	}
}

func TestEmbeddingKey(t *testing.T) {
	base := []float32{0.1234, 0.5678, 0.9}

	t.Run("deterministic", func(t *testing.T) {
		if EmbeddingKey(base) != EmbeddingKey([]float32{0.1234, 0.5678, 0.9}) {
			t.Errorf("EmbeddingKey() not deterministic")
		}
	})

	t.Run("sub-rounding noise collapses to same key", func(t *testing.T) {
		noisy := []float32{0.123401, 0.567799, 0.9}
		if EmbeddingKey(base) != EmbeddingKey(noisy) {
			t.Errorf("EmbeddingKey() changed for noise below the rounding precision")
		}
	})

	t.Run("differences above rounding precision change the key", func(t *testing.T) {
		shifted := []float32{0.1244, 0.5678, 0.9}
		if EmbeddingKey(base) == EmbeddingKey(shifted) {
			t.Errorf("EmbeddingKey() collided for distinct vectors")
		}
	})
}
