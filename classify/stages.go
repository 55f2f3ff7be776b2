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
	"fmt"
	"math"
	"strings"

	"github.com/poiesic/answerit/core"
)

// keywordStage counts allow-list against deny-list substring hits. A
// one-sided count is a strong verdict; mixed counts produce a weak ratio
// signal and empty counts abstain.
func (c *Classifier) keywordStage(q *core.Query) *core.ClassificationResult {
	allowHits := countContained(q.Normalized, c.allowTerms)

	denyTotal := 0
	denyByTopic := make(map[string]int, len(c.denyTerms))
	for topic, terms := range c.denyTerms {
		n := countContained(q.Normalized, terms)
		denyByTopic[topic] = n
		denyTotal += n
	}

	switch {
	case allowHits > 0 && denyTotal == 0:
		return &core.ClassificationResult{
			IsRelevant: true,
			Confidence: math.Min(0.97, 0.85+0.05*float64(allowHits)),
			Method:     core.MethodKeywordFilter,
			Reasoning:  fmt.Sprintf("%d on-topic terms, no off-topic terms", allowHits),
		}
	case denyTotal > 0 && allowHits == 0:
		topic := cascadeTopic(denyByTopic)
		return &core.ClassificationResult{
			IsRelevant: false,
			Confidence: math.Min(0.97, 0.85+0.05*float64(denyTotal)),
			Method:     core.MethodKeywordFilter,
			Reasoning:  fmt.Sprintf("%d off-topic terms, no on-topic terms", denyTotal),
			Categories: []string{topic},
			Redirect:   c.redirectFor(topic),
		}
	case allowHits == 0 && denyTotal == 0:
		return nil
	}

	// Mixed signal: lean toward the larger side, but never near a threshold.
	total := float64(allowHits + denyTotal)
	res := &core.ClassificationResult{
		IsRelevant: allowHits >= denyTotal,
		Confidence: 0.5 * math.Max(float64(allowHits), float64(denyTotal)) / total,
		Method:     core.MethodKeywordFilter,
		Reasoning:  fmt.Sprintf("mixed signal: %d on-topic vs %d off-topic terms", allowHits, denyTotal),
	}
	if !res.IsRelevant {
		topic := cascadeTopic(denyByTopic)
		res.Categories = []string{topic}
		res.Redirect = c.redirectFor(topic)
	}
	return res
}

// patternStage matches compiled phrasing patterns. Off-domain patterns are
// checked first: a query phrased like a recipe request is off-topic even
// when it mentions a product.
func (c *Classifier) patternStage(q *core.Query) *core.ClassificationResult {
	for _, p := range offDomainPatterns {
		if p.re.MatchString(q.Normalized) {
			return &core.ClassificationResult{
				IsRelevant: false,
				Confidence: 0.88,
				Method:     core.MethodPatternMatching,
				Reasoning:  "off-domain phrasing: " + p.topic,
				Categories: []string{p.topic},
				Redirect:   c.redirectFor(p.topic),
			}
		}
	}
	for _, p := range inDomainPatterns {
		if p.re.MatchString(q.Normalized) {
			return &core.ClassificationResult{
				IsRelevant: true,
				Confidence: 0.84,
				Method:     core.MethodPatternMatching,
				Reasoning:  "in-domain question template: " + p.topic,
				Categories: []string{p.topic},
			}
		}
	}
	return nil
}

// domainStage scores the query against weighted domain categories. The score
// of a category is the fraction of its terms present in the query, scaled by
// the category weight; the best category wins when it clears the floor.
func (c *Classifier) domainStage(q *core.Query) *core.ClassificationResult {
	const scoreFloor = 0.25

	var (
		bestName  string
		bestScore float64
	)
	for name, dc := range c.domains {
		if len(dc.Terms) == 0 {
			continue
		}
		matched := countContained(q.Normalized, dc.Terms)
		if matched == 0 {
			continue
		}
		score := float64(matched) / float64(len(dc.Terms)) * dc.Weight
		if score > bestScore || (score == bestScore && name < bestName) {
			bestName, bestScore = name, score
		}
	}
	if bestScore == 0 {
		return nil
	}

	if bestScore >= scoreFloor {
		return &core.ClassificationResult{
			IsRelevant: true,
			Confidence: math.Min(0.95, 0.72+0.3*bestScore),
			Method:     core.MethodDomainAnalysis,
			Reasoning:  fmt.Sprintf("domain category %q scored %.2f", bestName, bestScore),
			Categories: []string{bestName},
		}
	}
	return &core.ClassificationResult{
		IsRelevant: true,
		Confidence: 0.4 + 0.5*bestScore,
		Method:     core.MethodDomainAnalysis,
		Reasoning:  fmt.Sprintf("weak domain signal: %q scored %.2f", bestName, bestScore),
		Categories: []string{bestName},
	}
}

// contextStage is the lexical stand-in for semantic analysis: it counts
// business-flavored against personal-flavored indicator terms over the query
// and its conversation context. Costs nothing, so it runs before any model
// call would.
func (c *Classifier) contextStage(q *core.Query) *core.ClassificationResult {
	text := q.Normalized
	if q.Context != "" {
		text += " " + core.NormalizeText(q.Context)
	}

	business := countContained(text, businessIndicators)
	personal := countContained(text, personalIndicators)

	switch {
	case business > 0 && personal == 0:
		return &core.ClassificationResult{
			IsRelevant: true,
			Confidence: math.Min(0.95, 0.70+0.06*float64(business)),
			Method:     core.MethodContextAnalysis,
			Reasoning:  fmt.Sprintf("%d business indicators, no personal indicators", business),
		}
	case personal > 0 && business == 0:
		return &core.ClassificationResult{
			IsRelevant: false,
			Confidence: math.Min(0.95, 0.70+0.06*float64(personal)),
			Method:     core.MethodContextAnalysis,
			Reasoning:  fmt.Sprintf("%d personal indicators, no business indicators", personal),
			Categories: []string{TopicPersonalLife},
			Redirect:   c.redirectFor(TopicPersonalLife),
		}
	case business == 0 && personal == 0:
		return nil
	}

	total := float64(business + personal)
	res := &core.ClassificationResult{
		IsRelevant: business >= personal,
		Confidence: 0.65 * math.Max(float64(business), float64(personal)) / total,
		Method:     core.MethodContextAnalysis,
		Reasoning:  fmt.Sprintf("mixed indicators: %d business vs %d personal", business, personal),
	}
	if !res.IsRelevant {
		res.Categories = []string{TopicPersonalLife}
		res.Redirect = c.redirectFor(TopicPersonalLife)
	}
	return res
}

// heuristicStage always answers. It reads cheap surface cues: question
// shape, residual term hits, and query length. Confidence is capped at 0.75
// so a heuristic verdict is never mistaken for a confident one.
func (c *Classifier) heuristicStage(q *core.Query) *core.ClassificationResult {
	allowHits := countContained(q.Normalized, c.allowTerms)
	personalHits := countContained(q.Normalized, personalIndicators)
	question := isQuestion(q.Normalized)

	if personalHits > allowHits {
		topic := TopicPersonalLife
		return &core.ClassificationResult{
			IsRelevant: false,
			Confidence: math.Min(0.75, 0.60+0.05*float64(personalHits)),
			Method:     core.MethodDeepHeuristic,
			Reasoning:  "personal cues outweigh business cues",
			Categories: []string{topic},
			Redirect:   c.redirectFor(topic),
		}
	}

	confidence := 0.5
	reasoning := "no strong cues; defaulting to attempting a match"
	if allowHits > 0 {
		confidence = math.Min(0.75, 0.55+0.05*float64(allowHits))
		reasoning = "residual on-topic terms"
	}
	if question {
		confidence = math.Min(0.75, confidence+0.1)
		reasoning += "; question-shaped"
	}
	return &core.ClassificationResult{
		IsRelevant: true,
		Confidence: confidence,
		Method:     core.MethodDeepHeuristic,
		Reasoning:  reasoning,
	}
}

// countContained counts how many terms occur in text as substrings.
// Substring matching is deliberate: Turkish suffixes make exact word
// comparison nearly useless ("kargo" must hit "kargom", "kargomun").
func countContained(text string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			count++
		}
	}
	return count
}

// isQuestion detects question shape: a question mark, an interrogative at
// either sentence edge (Turkish puts them last, English first), or a
// trailing question particle.
func isQuestion(text string) bool {
	if strings.HasSuffix(text, "?") {
		return true
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	first, last := words[0], words[len(words)-1]
	for _, w := range interrogatives {
		if first == w || last == w {
			return true
		}
	}
	for _, p := range questionParticles {
		if last == p {
			return true
		}
	}
	return false
}
