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


package match

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/cache"
	"github.com/poiesic/answerit/classify"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/selector"
)

const (
	// DefaultSemanticThreshold is the minimum cosine similarity for a
	// semantic category match. Looser than the cache threshold: a match here
	// still serves authored content, so a near-miss costs less.
	DefaultSemanticThreshold = 0.60

	// maxEchoedInputRunes bounds the query text interpolated into the
	// default template.
	maxEchoedInputRunes = 100

	// defaultGeneratedRunes bounds generative fallback answers.
	defaultGeneratedRunes = 240
)

// fallbackAnswer is served when the corpus declares no default template.
const fallbackAnswer = "I couldn't find an answer for that. I can help with orders, deliveries, returns, and our products."

// Matcher finds the best canned answer for a query. Safe for concurrent
// use; per-query state stays on the stack and the category vector index has
// its own lock.
type Matcher struct {
	corpus     *corpus.Corpus
	classifier *classify.Classifier
	cache      *cache.Cache
	selector   *selector.Selector
	embedder   ai.Embedder
	generator  ai.Generator
	vectors    *vectorIndex

	semanticThreshold float64
	fuzzyEnabled      bool
	generative        bool
	maxGeneratedRunes int

	logger *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithCache wires the answer cache. Without one, every query runs the full
// pipeline.
func WithCache(c *cache.Cache) Option {
	return func(m *Matcher) error {
		m.cache = c
		return nil
	}
}

// WithEmbedder enables the semantic matching stage.
func WithEmbedder(e ai.Embedder) Option {
	return func(m *Matcher) error {
		m.embedder = e
		return nil
	}
}

// WithSelector sets the tier selector consulted before each embedding call.
// Without one, the light tier is always used.
func WithSelector(s *selector.Selector) Option {
	return func(m *Matcher) error {
		m.selector = s
		return nil
	}
}

// WithGenerator wires a text generator for the generative fallback. The
// fallback stays off until enabled with WithGenerativeFallback.
func WithGenerator(g ai.Generator) Option {
	return func(m *Matcher) error {
		m.generator = g
		return nil
	}
}

// WithGenerativeFallback toggles generated answers for unmatched in-scope
// queries. Off by default.
func WithGenerativeFallback(enabled bool) Option {
	return func(m *Matcher) error {
		m.generative = enabled
		return nil
	}
}

// WithSemanticThreshold sets the minimum cosine similarity for semantic
// matches. Values outside (0, 1] keep the default.
func WithSemanticThreshold(threshold float64) Option {
	return func(m *Matcher) error {
		if threshold > 0 && threshold <= 1 {
			m.semanticThreshold = threshold
		}
		return nil
	}
}

// WithFuzzyMatching toggles fuzzy phrase credit in keyword scoring. On by
// default.
func WithFuzzyMatching(enabled bool) Option {
	return func(m *Matcher) error {
		m.fuzzyEnabled = enabled
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// New creates a Matcher over a resolved corpus.
func New(c *corpus.Corpus, classifier *classify.Classifier, opts ...Option) (*Matcher, error) {
	if c == nil {
		return nil, ErrCorpusRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	m := &Matcher{
		corpus:            c,
		classifier:        classifier,
		vectors:           newVectorIndex(),
		semanticThreshold: DefaultSemanticThreshold,
		fuzzyEnabled:      true,
		maxGeneratedRunes: defaultGeneratedRunes,
		logger:            slog.Default().With("component", "matcher"),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FindOption carries per-call parameters.
type FindOption func(*findOptions)

type findOptions struct {
	context         string
	qualityPriority bool
	latencyBudget   time.Duration
}

// WithContext attaches conversation context to the query. Context changes
// the cache fingerprint and restricts semantic cache hits.
func WithContext(context string) FindOption {
	return func(o *findOptions) {
		o.context = context
	}
}

// WithQualityPriority asks for the heavy embedding tier regardless of query
// complexity.
func WithQualityPriority() FindOption {
	return func(o *findOptions) {
		o.qualityPriority = true
	}
}

// WithLatencyBudget caps the acceptable latency; tight budgets force the
// light embedding tier.
func WithLatencyBudget(d time.Duration) FindOption {
	return func(o *findOptions) {
		o.latencyBudget = d
	}
}

// FindAnswer runs the matching pipeline for text. It never fails: the worst
// case is the out-of-domain redirect or the default template.
func (m *Matcher) FindAnswer(ctx context.Context, text string, opts ...FindOption) *core.MatchResult {
	return m.FindAnswerWithMonitor(ctx, text, nil, opts...)
}

// FindAnswerWithMonitor is FindAnswer with stage callbacks. A nil monitor is
// replaced by a no-op.
func (m *Matcher) FindAnswerWithMonitor(ctx context.Context, text string, monitor Monitor, opts ...FindOption) *core.MatchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}

	q := core.NewQuery(text, o.context)
	monitor.Start(q)

	if q.Normalized == "" {
		result := m.defaultResult(q)
		monitor.Finish(result)
		return result
	}

	if m.cache != nil {
		if hit, ok := m.cache.GetExact(q); ok {
			monitor.CacheHit(hit)
			result := &core.MatchResult{
				Answer: hit.Answer,
				Source: core.MatchSourceExactCache,
				Score:  hit.Similarity,
			}
			monitor.Finish(result)
			return result
		}
	}

	cls := m.classifier.Classify(q)
	monitor.AfterClassification(cls)
	if !cls.IsRelevant {
		answer := cls.Redirect
		if answer == "" {
			return m.finish(monitor, m.defaultResult(q))
		}
		result := &core.MatchResult{
			Answer: answer,
			Source: core.MatchSourceIrrelevant,
			Score:  cls.Confidence,
		}
		if len(cls.Categories) > 0 {
			result.Category = cls.Categories[0]
		}
		m.storeResult(q, nil, result)
		return m.finish(monitor, result)
	}

	if hit, ok := m.matchKeywords(q); ok {
		source := core.MatchSourceKeyword
		if hit.fuzzyOnly {
			source = core.MatchSourceFuzzy
		}
		monitor.KeywordHit(hit.answer.Category, hit.score, hit.fuzzyOnly)
		result := &core.MatchResult{
			Answer:   hit.answer.Answer,
			Source:   source,
			Score:    hit.score,
			Category: hit.answer.Category,
		}
		m.storeResult(q, nil, result)
		return m.finish(monitor, result)
	}

	// Domain shortcut: classification already named a corpus category, so
	// its answer is served without paying for an embedding.
	if cls.Method == core.MethodDomainAnalysis && len(cls.Categories) > 0 {
		if answer, ok := m.corpus.Answer(cls.Categories[0]); ok {
			result := &core.MatchResult{
				Answer:   answer.Answer,
				Source:   core.MatchSourceDomain,
				Score:    cls.Confidence,
				Category: answer.Category,
			}
			m.storeResult(q, nil, result)
			return m.finish(monitor, result)
		}
	}

	if m.embedder != nil {
		if result, embedding := m.semanticMatch(ctx, q, &o, monitor); result != nil {
			if result.Source == core.MatchSourceSemantic {
				m.storeResult(q, embedding, result)
			}
			return m.finish(monitor, result)
		}
	}

	if m.generative && m.generator != nil {
		if result := m.generateAnswer(ctx, q); result != nil {
			return m.finish(monitor, result)
		}
	}

	return m.finish(monitor, m.defaultResult(q))
}

func (m *Matcher) finish(monitor Monitor, result *core.MatchResult) *core.MatchResult {
	monitor.Finish(result)
	return result
}

// semanticMatch embeds the query once and serves the best cosine match: the
// semantic cache first, then per-category keyword vectors. Returns the
// computed embedding so the caller can cache the result under it. Any
// embedding failure logs a warning and returns nothing; the pipeline
// degrades to the default path.
func (m *Matcher) semanticMatch(ctx context.Context, q *core.Query, o *findOptions, monitor Monitor) (*core.MatchResult, []float32) {
	tier := ai.TierLight
	if m.selector != nil {
		tier = m.selector.SelectTier(q, o.latencyBudget, o.qualityPriority)
	}
	monitor.AfterTierSelection(tier)

	start := time.Now()
	embedding, err := m.embedder.EmbedText(ctx, q.Normalized, tier)
	if m.selector != nil {
		m.selector.Observe(tier, time.Since(start))
	}
	if err != nil {
		m.logger.Warn("query embedding failed, degrading to lexical matching", "error", err)
		return nil, nil
	}

	if m.cache != nil {
		if hit, ok := m.cache.GetSemantic(q, embedding); ok {
			monitor.SemanticCacheHit(hit.Similarity)
			return &core.MatchResult{
				Answer: hit.Answer,
				Source: core.MatchSourceSemanticCache,
				Score:  hit.Similarity,
			}, embedding
		}
	}

	var best *core.MatchResult
	for i := range m.corpus.Answers() {
		answer := &m.corpus.Answers()[i]
		if len(answer.Keywords) == 0 {
			continue
		}
		vec, ok := m.categoryVector(ctx, tier, answer)
		if !ok {
			continue
		}
		score := core.CosineSimilarity(embedding, vec)
		if score > m.semanticThreshold && (best == nil || score > best.Score) {
			best = &core.MatchResult{
				Answer:   answer.Answer,
				Source:   core.MatchSourceSemantic,
				Score:    score,
				Category: answer.Category,
			}
		}
	}
	if best != nil {
		monitor.SemanticHit(best.Category, best.Score)
	}
	return best, embedding
}

// categoryVector returns the keyword-text vector for a category, embedding
// it on demand when warmup has not primed it.
func (m *Matcher) categoryVector(ctx context.Context, tier ai.ModelTier, answer *core.CannedAnswer) ([]float32, bool) {
	if vec, ok := m.vectors.get(tier, answer.Category); ok {
		return vec, true
	}

	vec, err := m.embedder.EmbedText(ctx, strings.Join(answer.Keywords, " "), tier)
	if err != nil {
		m.logger.Warn("category embedding failed",
			"category", answer.Category,
			"tier", tier,
			"error", err)
		return nil, false
	}
	m.vectors.put(tier, answer.Category, vec)
	return vec, true
}

// StoreVector primes one category vector. It implements the warmup sink so
// a pipeline can fill the index before the first query arrives.
func (m *Matcher) StoreVector(_ context.Context, tier ai.ModelTier, category string, vector []float32) error {
	m.vectors.put(tier, category, vector)
	return nil
}

// VectorCount reports how many category vectors are primed for a tier.
func (m *Matcher) VectorCount(tier ai.ModelTier) int {
	return m.vectors.size(tier)
}

// generateAnswer asks the generator for a bounded free-form answer. Failures
// and empty output fall through to the default template. Generated text is
// not cached: it is not authored content and two asks may legitimately
// differ.
func (m *Matcher) generateAnswer(ctx context.Context, q *core.Query) *core.MatchResult {
	prompt := buildSupportPrompt(q)
	text, err := m.generator.GenerateText(ctx, prompt, m.maxGeneratedRunes)
	if err != nil {
		m.logger.Warn("generative fallback failed", "error", err)
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &core.MatchResult{Answer: text, Source: core.MatchSourceDefault}
}

func buildSupportPrompt(q *core.Query) string {
	var b strings.Builder
	b.WriteString("You are a customer support assistant for an online retailer. ")
	b.WriteString("Answer briefly, politely, and only about orders, shipping, returns, payments, or products. ")
	b.WriteString("Answer in the customer's language.\n")
	if q.Context != "" {
		b.WriteString("Context: ")
		b.WriteString(q.Context)
		b.WriteString("\n")
	}
	b.WriteString("Customer: ")
	b.WriteString(q.Raw)
	return b.String()
}

// defaultResult renders the corpus default template, substituting the
// truncated original query for the {user_input} placeholder when present.
func (m *Matcher) defaultResult(q *core.Query) *core.MatchResult {
	template := m.corpus.DefaultResponse()
	if template == "" {
		template = fallbackAnswer
	}

	answer := template
	if strings.Contains(template, corpus.UserInputPlaceholder) {
		echoed := core.TruncateRunes(strings.TrimSpace(q.Raw), maxEchoedInputRunes)
		answer = strings.ReplaceAll(template, corpus.UserInputPlaceholder, echoed)
	}
	return &core.MatchResult{Answer: answer, Source: core.MatchSourceDefault}
}

// storeResult writes a non-default result into the cache. Cache failures
// are the cache's problem; nothing here can fail the request.
func (m *Matcher) storeResult(q *core.Query, embedding []float32, result *core.MatchResult) {
	if m.cache == nil {
		return
	}
	m.cache.Put(q, embedding, result.Answer, result.Source)
}
