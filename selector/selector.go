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


// Package selector picks the embedding model tier per query. Tight latency
// budgets force the light tier, explicit quality priority forces the heavy
// tier, and everything in between is decided by a lexical complexity score.
package selector

import (
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
)

const (
	// DefaultLatencyFloor is the budget below which the light tier is forced
	// regardless of query complexity.
	DefaultLatencyFloor = 150 * time.Millisecond

	// complexityThreshold is the score above which the heavy tier is chosen.
	complexityThreshold = 0.7
)

// Selector decides the model tier for each query and keeps per-tier latency
// statistics for offline tuning. Safe for concurrent use.
type Selector struct {
	domainTerms  []string
	latencyFloor time.Duration
	logger       *slog.Logger

	mu    sync.Mutex
	stats map[ai.ModelTier]*TierStats
}

// TierStats accumulates observed latencies for one tier. The numbers are for
// offline tuning only; SelectTier never reads them.
type TierStats struct {
	Count        uint64
	TotalLatency time.Duration
}

// AverageLatency returns the mean observed latency, or 0 before the first
// observation.
func (s TierStats) AverageLatency() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.Count)
}

// Option configures a Selector.
type Option func(*Selector) error

// WithDomainTerms sets the terms whose presence raises query complexity,
// typically corpus.KeywordTerms().
func WithDomainTerms(terms ...string) Option {
	return func(s *Selector) error {
		s.domainTerms = append(s.domainTerms, terms...)
		return nil
	}
}

// WithLatencyFloor sets the budget below which the light tier is forced.
// Non-positive values keep the default.
func WithLatencyFloor(d time.Duration) Option {
	return func(s *Selector) error {
		if d > 0 {
			s.latencyFloor = d
		}
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// New creates a Selector.
func New(opts ...Option) (*Selector, error) {
	s := &Selector{
		latencyFloor: DefaultLatencyFloor,
		logger:       slog.Default().With("component", "selector"),
		stats:        make(map[ai.ModelTier]*TierStats),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SelectTier picks the model tier for a query. Decision order: a positive
// latency budget under the floor forces light; quality priority forces
// heavy; otherwise complexity decides. Never fails; any internal failure
// yields the light tier.
func (s *Selector) SelectTier(q *core.Query, latencyBudget time.Duration, qualityPriority bool) (tier ai.ModelTier) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tier selection panicked", "panic", r)
			tier = ai.TierLight
		}
	}()

	if latencyBudget > 0 && latencyBudget < s.latencyFloor {
		return ai.TierLight
	}
	if qualityPriority {
		return ai.TierHeavy
	}

	score := s.Complexity(q)
	if score > complexityThreshold {
		s.logger.Debug("complex query, heavy tier", "complexity", score)
		return ai.TierHeavy
	}
	return ai.TierLight
}

// Observe records one model call's latency against its tier.
func (s *Selector) Observe(tier ai.ModelTier, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[tier]
	if !ok {
		st = &TierStats{}
		s.stats[tier] = st
	}
	st.Count++
	st.TotalLatency += latency
}

// Stats returns a snapshot of per-tier statistics. A tier appears only
// after its first observation.
func (s *Selector) Stats() map[ai.ModelTier]TierStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[ai.ModelTier]TierStats, len(s.stats))
	for tier, st := range s.stats {
		out[tier] = *st
	}
	return out
}
