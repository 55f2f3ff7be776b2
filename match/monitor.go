package match

import (
	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/cache"
	"github.com/poiesic/answerit/core"
)

// Monitor provides hooks to observe the matching process.
// Implement this interface to track which stage answered and why.
type Monitor interface {
	Start(q *core.Query)
	CacheHit(hit *cache.Hit)
	AfterClassification(res *core.ClassificationResult)
	KeywordHit(category string, score float64, fuzzy bool)
	AfterTierSelection(tier ai.ModelTier)
	SemanticCacheHit(similarity float64)
	SemanticHit(category string, score float64)
	Finish(result *core.MatchResult)
}

// noopMonitor is a no-op implementation of Monitor.
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Query)                            {}
func (n *noopMonitor) CacheHit(_ *cache.Hit)                          {}
func (n *noopMonitor) AfterClassification(_ *core.ClassificationResult) {}
func (n *noopMonitor) KeywordHit(_ string, _ float64, _ bool)         {}
func (n *noopMonitor) AfterTierSelection(_ ai.ModelTier)              {}
func (n *noopMonitor) SemanticCacheHit(_ float64)                     {}
func (n *noopMonitor) SemanticHit(_ string, _ float64)                {}
func (n *noopMonitor) Finish(_ *core.MatchResult)                     {}
