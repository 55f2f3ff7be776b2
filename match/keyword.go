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
	"strings"
	"unicode/utf8"

	"github.com/poiesic/answerit/core"
)

const (
	// keywordScoreFloor is the minimum category score worth answering with.
	keywordScoreFloor = 0.2

	// phraseCredit is added per keyword phrase contained in the query.
	phraseCredit = 0.3
)

// keywordHit is one scored category.
type keywordHit struct {
	answer *core.CannedAnswer
	score  float64
	// fuzzyOnly is true when every phrase credit came from fuzzy matching
	// and word overlap alone was below the floor; such answers are tagged
	// source=fuzzy.
	fuzzyOnly bool
}

// matchKeywords scores every corpus category against the query and returns
// the best one at or above the floor. Per category, the score is the word
// overlap with its keyword vocabulary plus a fixed credit per contained
// keyword phrase, capped at 1.0. A query that literally contains the
// category name short-circuits the scan. Ties keep the earlier category:
// answers arrive in corpus declaration order.
func (m *Matcher) matchKeywords(q *core.Query) (*keywordHit, bool) {
	queryWords := wordSet(tokenize(q.Normalized))

	var best *keywordHit
	for i := range m.corpus.Answers() {
		answer := &m.corpus.Answers()[i]

		if strings.Contains(q.Normalized, answer.Category) {
			return &keywordHit{answer: answer, score: 1.0}, true
		}
		if len(answer.Keywords) == 0 {
			continue
		}

		overlap := keywordOverlap(queryWords, answer.Keywords)

		exactCredits, fuzzyCredits := 0, 0
		for _, phrase := range answer.Keywords {
			if strings.Contains(q.Normalized, phrase) {
				exactCredits++
				continue
			}
			if m.fuzzyEnabled && utf8.RuneCountInString(phrase) >= minFuzzyKeywordRunes &&
				fuzzyRatio(q.Normalized, phrase) >= fuzzyCreditThreshold {
				fuzzyCredits++
			}
		}

		score := overlap + phraseCredit*float64(exactCredits+fuzzyCredits)
		if score > 1.0 {
			score = 1.0
		}
		if score < keywordScoreFloor {
			continue
		}
		if best == nil || score > best.score {
			best = &keywordHit{
				answer:    answer,
				score:     score,
				fuzzyOnly: exactCredits == 0 && fuzzyCredits > 0 && overlap < keywordScoreFloor,
			}
		}
	}
	return best, best != nil
}

// keywordOverlap is |queryWords ∩ keywordWords| / |keywordWords|, where the
// keyword vocabulary is the union of words across the category's phrases.
func keywordOverlap(queryWords map[string]bool, phrases []string) float64 {
	keywordWords := make(map[string]bool)
	for _, phrase := range phrases {
		for _, w := range tokenize(phrase) {
			keywordWords[w] = true
		}
	}
	if len(keywordWords) == 0 {
		return 0
	}

	matched := 0
	for w := range keywordWords {
		if queryWords[w] {
			matched++
		}
	}
	return float64(matched) / float64(len(keywordWords))
}
