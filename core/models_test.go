package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "kargom nerede",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "a much longer query about shipping times and refund policies that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestFingerprintQuery(t *testing.T) {
	base := FingerprintQuery("çalışma saatleri nedir", "")

	if got := FingerprintQuery("çalışma saatleri nedir", ""); got != base {
		t.Errorf("FingerprintQuery() not deterministic: %d vs %d", got, base)
	}

	if got := FingerprintQuery("çalışma saatleri nedir", "order-123"); got == base {
		t.Errorf("FingerprintQuery() ignored context: %d", got)
	}

	if got := FingerprintQuery("kargom nerede", ""); got == base {
		t.Errorf("FingerprintQuery() collided for different queries: %d", got)
	}
}

func TestLevelFromConfidence(t *testing.T) {
	tests := []struct {
		name       string
		relevant   bool
		confidence float64
		want       RelevanceLevel
	}{
		{
			name:       "irrelevant regardless of confidence",
			relevant:   false,
			confidence: 0.95,
			want:       LevelIrrelevant,
		},
		{
			name:       "highly relevant at 0.85",
			relevant:   true,
			confidence: 0.85,
			want:       LevelHighlyRelevant,
		},
		{
			name:       "relevant at 0.70",
			relevant:   true,
			confidence: 0.70,
			want:       LevelRelevant,
		},
		{
			name:       "partially relevant at 0.55",
			relevant:   true,
			confidence: 0.55,
			want:       LevelPartiallyRelevant,
		},
		{
			name:       "low relevance below 0.55",
			relevant:   true,
			confidence: 0.40,
			want:       LevelLowRelevance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelFromConfidence(tt.relevant, tt.confidence)
			if got != tt.want {
				t.Errorf("LevelFromConfidence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_Fingerprint(t *testing.T) {
	q1 := NewQuery("  Çalışma Saatleri Nedir  ", "")
	q2 := NewQuery("çalışma saatleri nedir", "")

	if q1.Fingerprint() != q2.Fingerprint() {
		t.Errorf("Query.Fingerprint() differs for equivalent normalized queries")
	}
}
