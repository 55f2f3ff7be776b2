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


package warmup

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
)

// VectorSink receives one category vector per warmed category.
// Implementations must be safe for concurrent delivery.
type VectorSink interface {
	StoreVector(ctx context.Context, tier ai.ModelTier, category string, vector []float32) error
}

// Pipeline embeds category keyword texts concurrently and delivers the
// vectors to every sink.
type Pipeline struct {
	embedder    ai.Embedder
	sinks       []VectorSink
	pool        *ants.Pool
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithRetry sets the retry policy for embedding calls. maxAttempts below 1
// and non-positive delays keep the defaults.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts >= 1 {
			p.maxAttempts = maxAttempts
		}
		if baseDelay > 0 {
			p.baseDelay = baseDelay
		}
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// NewPipeline creates a warmup pipeline delivering to the given sinks.
func NewPipeline(embedder ai.Embedder, sinks []VectorSink, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(sinks) == 0 {
		return nil, ErrSinkRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		embedder:    embedder,
		sinks:       sinks,
		pool:        pool,
		maxAttempts: 3,
		baseDelay:   200 * time.Millisecond,
		logger:      slog.Default().With("component", "warmup"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}
	return p, nil
}

// Run embeds the keyword text of every keyword-bearing answer for one tier
// and delivers the vectors to all sinks. It waits for completion and
// returns the first error encountered, after attempting every category.
func (p *Pipeline) Run(ctx context.Context, answers []core.CannedAnswer, tier ai.ModelTier) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	started := time.Now()
	warmed := 0
	for i := range answers {
		answer := answers[i]
		if len(answer.Keywords) == 0 {
			continue
		}
		warmed++

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.warmCategory(ctx, &answer, tier); err != nil {
				p.logger.Error("category warmup failed",
					"category", answer.Category,
					"tier", tier,
					"error", err)
				record(err)
			}
		})
		if submitErr != nil {
			wg.Done()
			record(submitErr)
		}
	}
	wg.Wait()

	p.logger.Info("warmup finished",
		"categories", warmed,
		"tier", tier,
		"elapsed", time.Since(started))
	return firstErr
}

func (p *Pipeline) warmCategory(ctx context.Context, answer *core.CannedAnswer, tier ai.ModelTier) error {
	text := strings.Join(answer.Keywords, " ")

	var vector []float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vector, embedErr = p.embedder.EmbedText(ctx, text, tier)
		return embedErr
	}, p.maxAttempts, p.baseDelay)
	if err != nil {
		return err
	}

	for _, sink := range p.sinks {
		if err := sink.StoreVector(ctx, tier, answer.Category, vector); err != nil {
			return err
		}
	}
	return nil
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
