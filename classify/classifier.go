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


package classify

import (
	"log/slog"
	"maps"
	"time"

	"github.com/poiesic/answerit/core"
)

// Stage exit thresholds. A stage result at or above its threshold ends the
// pipeline; anything below only competes for best-of.
const (
	keywordExitThreshold = 0.85
	patternExitThreshold = 0.80
	domainExitThreshold  = 0.70
	contextExitThreshold = 0.70
)

// Classifier decides query relevance. Safe for concurrent use; all state is
// read-only after construction.
type Classifier struct {
	allowTerms []string
	denyTerms  map[string][]string
	domains    map[string]core.DomainCategory
	redirects  map[string]string
	stages     []stage
	logger     *slog.Logger
}

type stage struct {
	name      string
	threshold float64
	run       func(*core.Query) *core.ClassificationResult
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithAllowTerms adds on-topic terms to the built-in list. Terms should be
// normalized the way corpus keywords are.
func WithAllowTerms(terms ...string) Option {
	return func(c *Classifier) error {
		c.allowTerms = append(c.allowTerms, terms...)
		return nil
	}
}

// WithDenyTerms adds off-topic terms under a redirect topic.
func WithDenyTerms(topic string, terms ...string) Option {
	return func(c *Classifier) error {
		c.denyTerms[topic] = append(c.denyTerms[topic], terms...)
		return nil
	}
}

// WithDomainCategories sets the weighted term sets for domain analysis,
// typically corpus.Domains().
func WithDomainCategories(domains map[string]core.DomainCategory) Option {
	return func(c *Classifier) error {
		c.domains = domains
		return nil
	}
}

// WithRedirectAnswers overrides built-in redirect answers per topic,
// typically corpus.Redirects().
func WithRedirectAnswers(redirects map[string]string) Option {
	return func(c *Classifier) error {
		maps.Copy(c.redirects, redirects)
		return nil
	}
}

// New creates a classifier with built-in term lists and patterns, extended
// by the given options.
func New(opts ...Option) (*Classifier, error) {
	c := &Classifier{
		allowTerms: append([]string(nil), defaultAllowTerms...),
		denyTerms:  make(map[string][]string, len(defaultDenyTerms)),
		redirects:  make(map[string]string),
		logger:     slog.Default().With("component", "classifier"),
	}
	for topic, terms := range defaultDenyTerms {
		c.denyTerms[topic] = append([]string(nil), terms...)
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.stages = []stage{
		{"keyword_filter", keywordExitThreshold, c.keywordStage},
		{"pattern_matching", patternExitThreshold, c.patternStage},
		{"domain_analysis", domainExitThreshold, c.domainStage},
		{"context_analysis", contextExitThreshold, c.contextStage},
		{"deep_heuristic", 0, c.heuristicStage},
	}
	return c, nil
}

// Classify runs the stage pipeline over a prepared query. It never returns
// nil and never panics; a wholesale failure degrades to a weakly-relevant
// verdict so matching can still answer.
func (c *Classifier) Classify(q *core.Query) (result *core.ClassificationResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("classification panicked", "panic", r)
			result = fallbackResult()
		}
		result.Level = core.LevelFromConfidence(result.IsRelevant, result.Confidence)
		result.Latency = time.Since(start)
	}()

	if q == nil || q.Normalized == "" {
		return &core.ClassificationResult{
			IsRelevant: false,
			Confidence: 1.0,
			Method:     core.MethodKeywordFilter,
			Reasoning:  "empty query",
			Categories: []string{TopicGeneral},
			Redirect:   c.redirectFor(TopicGeneral),
		}
	}

	var best *core.ClassificationResult
	for _, st := range c.stages {
		res := c.runStage(st, q)
		if res == nil {
			continue
		}
		if res.Confidence >= st.threshold {
			c.logger.Debug("stage decided",
				"stage", st.name,
				"relevant", res.IsRelevant,
				"confidence", res.Confidence)
			return res
		}
		if best == nil || res.Confidence > best.Confidence {
			best = res
		}
	}

	if best == nil {
		best = fallbackResult()
	}
	c.logger.Debug("best-of verdict",
		"method", best.Method,
		"relevant", best.IsRelevant,
		"confidence", best.Confidence)
	return best
}

// runStage isolates stage panics: a crashing stage abstains instead of
// taking the pipeline down.
func (c *Classifier) runStage(st stage, q *core.Query) (res *core.ClassificationResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("classification stage panicked", "stage", st.name, "panic", r)
			res = nil
		}
	}()
	return st.run(q)
}

func fallbackResult() *core.ClassificationResult {
	return &core.ClassificationResult{
		IsRelevant: true,
		Confidence: 0.5,
		Method:     core.MethodHybridVote,
		Reasoning:  "no stage produced a verdict",
	}
}
