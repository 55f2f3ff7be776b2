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


// Package answerit assembles the relevance classifier, the content matcher,
// the semantic cache, and the adaptive model selector behind a single
// engine facade for support-chat answer lookup.
package answerit

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/ai/openai"
	"github.com/poiesic/answerit/cache"
	"github.com/poiesic/answerit/classify"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/corpus/badger"
	"github.com/poiesic/answerit/match"
	"github.com/poiesic/answerit/selector"
	"github.com/poiesic/answerit/warmup"
)

// Engine answers support-chat queries against a canned-answer corpus.
// Lookups never fail: out-of-domain queries get a redirect, unmatched
// in-domain queries get the corpus default answer.
type Engine struct {
	store        corpus.Store
	provider     ai.AIProvider
	ownsProvider bool
	cache        *cache.Cache
	vectors      *badger.VectorRepository
	logger       *slog.Logger

	semanticThreshold  float64
	generativeFallback bool
	latencyFloor       time.Duration

	state atomic.Pointer[engineState]
}

// engineState bundles the components rebuilt on every corpus (re)load.
// Reload swaps the whole bundle atomically so in-flight lookups keep a
// consistent view.
type engineState struct {
	corpus     *corpus.Corpus
	classifier *classify.Classifier
	selector   *selector.Selector
	matcher    *match.Matcher
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	aiConfig           *ai.Config
	provider           ai.AIProvider
	disableAI          bool
	cacheOptions       []cache.Option
	semanticThreshold  float64
	generativeFallback bool
	vectors            *badger.VectorRepository
	latencyFloor       time.Duration
	logger             *slog.Logger
}

// WithAIConfig sets the configuration for the default OpenAI-compatible
// provider. Ignored when WithProvider or WithoutAI is given.
func WithAIConfig(config *ai.Config) Option {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects an AI provider. The caller keeps ownership; Close
// does not close injected providers.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithoutAI builds the engine without an AI provider. Matching degrades to
// the lexical stages and WarmUp returns ErrAIDisabled.
func WithoutAI() Option {
	return func(o *engineOptions) {
		o.disableAI = true
	}
}

// WithCacheOptions forwards options to the answer cache.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(o *engineOptions) {
		o.cacheOptions = append(o.cacheOptions, opts...)
	}
}

// WithSemanticThreshold sets the minimum cosine similarity for semantic
// category matches. Values outside (0, 1] keep the matcher default.
func WithSemanticThreshold(threshold float64) Option {
	return func(o *engineOptions) {
		o.semanticThreshold = threshold
	}
}

// WithGenerativeFallback enables generated answers for in-domain queries
// that no category matched.
func WithGenerativeFallback(enabled bool) Option {
	return func(o *engineOptions) {
		o.generativeFallback = enabled
	}
}

// WithVectorRepository persists warmed category vectors so later WarmUp
// calls start from storage instead of re-embedding. The caller keeps
// ownership of the repository.
func WithVectorRepository(repo *badger.VectorRepository) Option {
	return func(o *engineOptions) {
		o.vectors = repo
	}
}

// WithLatencyFloor sets the budget below which tier selection always picks
// the light model.
func WithLatencyFloor(d time.Duration) Option {
	return func(o *engineOptions) {
		o.latencyFloor = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// New loads the corpus from store and assembles the engine. Construction
// fails on an unreadable or empty corpus and on provider misconfiguration;
// after that, lookups never return errors.
func New(store corpus.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrCorpusStoreRequired
	}

	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	c, err := store.Load(context.Background())
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:              store,
		cache:              cache.New(options.cacheOptions...),
		vectors:            options.vectors,
		semanticThreshold:  options.semanticThreshold,
		generativeFallback: options.generativeFallback,
		latencyFloor:       options.latencyFloor,
		logger:             options.logger,
	}
	if e.logger == nil {
		e.logger = slog.Default().With("component", "engine")
	}

	switch {
	case options.provider != nil:
		e.provider = options.provider
	case !options.disableAI:
		provider, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
		e.provider = provider
		e.ownsProvider = true
	}

	state, err := e.buildState(c)
	if err != nil {
		if e.ownsProvider {
			e.provider.Close()
		}
		return nil, err
	}
	e.state.Store(state)

	e.logger.Info("engine ready",
		"answers", c.Len(),
		"domains", len(c.Domains()),
		"ai", e.provider != nil)
	return e, nil
}

// buildState creates a classifier/selector/matcher bundle for one resolved
// corpus. The cache is engine-scoped and shared across states.
func (e *Engine) buildState(c *corpus.Corpus) (*engineState, error) {
	classifier, err := classify.New(
		classify.WithAllowTerms(c.KeywordTerms()...),
		classify.WithDomainCategories(c.Domains()),
		classify.WithRedirectAnswers(c.Redirects()),
	)
	if err != nil {
		return nil, err
	}

	selectorOpts := []selector.Option{
		selector.WithDomainTerms(c.KeywordTerms()...),
	}
	if e.latencyFloor > 0 {
		selectorOpts = append(selectorOpts, selector.WithLatencyFloor(e.latencyFloor))
	}
	sel, err := selector.New(selectorOpts...)
	if err != nil {
		return nil, err
	}

	matchOpts := []match.Option{
		match.WithCache(e.cache),
		match.WithSelector(sel),
		match.WithGenerativeFallback(e.generativeFallback),
	}
	if e.semanticThreshold > 0 {
		matchOpts = append(matchOpts, match.WithSemanticThreshold(e.semanticThreshold))
	}
	if e.provider != nil {
		matchOpts = append(matchOpts,
			match.WithEmbedder(e.provider.Embedder()),
			match.WithGenerator(e.provider.Generator()))
	}
	matcher, err := match.New(c, classifier, matchOpts...)
	if err != nil {
		return nil, err
	}

	return &engineState{
		corpus:     c,
		classifier: classifier,
		selector:   sel,
		matcher:    matcher,
	}, nil
}

// Classify runs the relevance pipeline over one query without matching.
func (e *Engine) Classify(text, queryContext string) *core.ClassificationResult {
	return e.state.Load().classifier.Classify(core.NewQuery(text, queryContext))
}

// FindAnswer resolves a query to an answer through the full pipeline.
func (e *Engine) FindAnswer(ctx context.Context, text string, opts ...match.FindOption) *core.MatchResult {
	return e.state.Load().matcher.FindAnswer(ctx, text, opts...)
}

// Corpus returns the currently loaded corpus.
func (e *Engine) Corpus() *corpus.Corpus {
	return e.state.Load().corpus
}

// CacheStats returns a snapshot of the answer cache counters.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// SelectorStats returns per-tier latency observations for the current
// corpus generation. Reload resets them.
func (e *Engine) SelectorStats() map[ai.ModelTier]selector.TierStats {
	return e.state.Load().selector.Stats()
}

// WarmUp pre-computes category vectors for one tier so the first semantic
// lookups skip the corpus-side embedding call. When a vector repository is
// configured, vectors persisted for the current corpus revision are loaded
// instead of re-embedded, and newly embedded vectors are persisted.
func (e *Engine) WarmUp(ctx context.Context, tier ai.ModelTier) error {
	if e.provider == nil {
		return ErrAIDisabled
	}
	state := e.state.Load()

	var stored map[string][]float32
	if e.vectors != nil {
		var err error
		stored, err = e.vectors.GetVectors(ctx, state.corpus.Hash(), string(tier))
		if err != nil {
			e.logger.Warn("vector warm start failed, re-embedding all categories",
				"tier", tier, "error", err)
			stored = nil
		}
	}
	for category, vector := range stored {
		if !state.corpus.Has(category) {
			continue
		}
		if err := state.matcher.StoreVector(ctx, tier, category, vector); err != nil {
			return err
		}
	}

	var pending []core.CannedAnswer
	for _, answer := range state.corpus.Answers() {
		if len(answer.Keywords) == 0 {
			continue
		}
		if _, ok := stored[answer.Category]; ok {
			continue
		}
		pending = append(pending, answer)
	}
	if len(pending) == 0 {
		e.logger.Info("warmup satisfied from stored vectors",
			"tier", tier, "categories", len(stored))
		return nil
	}

	sinks := []warmup.VectorSink{state.matcher}
	if e.vectors != nil {
		sinks = append(sinks, &persistedVectorSink{
			repo:       e.vectors,
			corpusHash: state.corpus.Hash(),
		})
	}
	pipeline, err := warmup.NewPipeline(e.provider.Embedder(), sinks,
		warmup.WithLogger(e.logger))
	if err != nil {
		return err
	}
	defer pipeline.Release()
	return pipeline.Run(ctx, pending, tier)
}

// persistedVectorSink writes warmed vectors to the badger repository,
// keyed by corpus revision.
type persistedVectorSink struct {
	repo       *badger.VectorRepository
	corpusHash core.ID
}

func (s *persistedVectorSink) StoreVector(ctx context.Context, tier ai.ModelTier, category string, vector []float32) error {
	return s.repo.PutVector(ctx, s.corpusHash, string(tier), category, vector)
}

// Reload loads the corpus again and swaps in freshly built components.
// The answer cache is cleared so stale answers cannot be served; vectors
// persisted for the replaced corpus revision are deleted.
func (e *Engine) Reload(ctx context.Context) error {
	c, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	state, err := e.buildState(c)
	if err != nil {
		return err
	}

	old := e.state.Swap(state)
	e.cache.Clear()

	if e.vectors != nil && old != nil && old.corpus.Hash() != c.Hash() {
		if err := e.vectors.DeleteVectors(ctx, old.corpus.Hash()); err != nil {
			e.logger.Warn("failed to delete stale vectors",
				"hash", old.corpus.Hash(), "error", err)
		}
	}

	e.logger.Info("corpus reloaded", "answers", c.Len(), "hash", c.Hash())
	return nil
}

// Close releases resources the engine owns. Injected providers and vector
// repositories stay open for their owners.
func (e *Engine) Close() error {
	if e.ownsProvider && e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
			return err
		}
	}
	return nil
}
