package match

import (
	"sync"

	"github.com/poiesic/answerit/ai"
)

// vectorIndex holds per-tier category keyword vectors. Read-heavy: every
// semantic match scans it, writes only arrive from warmup or on-demand
// fills.
type vectorIndex struct {
	mu     sync.RWMutex
	byTier map[ai.ModelTier]map[string][]float32
}

func newVectorIndex() *vectorIndex {
	return &vectorIndex{byTier: make(map[ai.ModelTier]map[string][]float32)}
}

func (v *vectorIndex) get(tier ai.ModelTier, category string) ([]float32, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	vec, ok := v.byTier[tier][category]
	return vec, ok
}

func (v *vectorIndex) put(tier ai.ModelTier, category string, vector []float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.byTier[tier] == nil {
		v.byTier[tier] = make(map[string][]float32)
	}
	v.byTier[tier][category] = vector
}

func (v *vectorIndex) size(tier ai.ModelTier) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.byTier[tier])
}
