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

// Fuzzy string matching for keyword phrases that almost appear in the
// query: typos, suffixed word forms, reordered tokens. Consulted only when
// exact containment fails, and only for phrases long enough that a high
// ratio is meaningful.

const (
	// minFuzzyKeywordRunes is the shortest phrase eligible for fuzzy credit.
	// Short keywords score high ratios against unrelated text.
	minFuzzyKeywordRunes = 6

	// fuzzyCreditThreshold is the minimum ratio that earns phrase credit.
	fuzzyCreditThreshold = 0.75
)

// fuzzyRatio is the best of three similarity measures between a query and a
// keyword phrase, each in [0,1].
func fuzzyRatio(query, keyword string) float64 {
	r := sequenceRatio(query, keyword)
	if p := partialRatio(query, keyword); p > r {
		r = p
	}
	if j := tokenSetJaccard(query, keyword); j > r {
		r = j
	}
	return r
}

// sequenceRatio is 2·LCS(a,b) / (len(a)+len(b)) over runes: 1.0 for equal
// strings, 0.0 for disjoint ones.
func sequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	lcs := lcsLength(ra, rb)
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// partialRatio is the best sequenceRatio between the shorter string and any
// equal-length window of the longer one. A keyword buried in a long query
// scores near 1.0 here even when sequenceRatio is diluted.
func partialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	shorter, longer := ra, rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0.0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := longer[start : start+len(shorter)]
		lcs := lcsLength(shorter, window)
		ratio := float64(lcs) / float64(len(shorter))
		if ratio > best {
			best = ratio
		}
		if best == 1.0 {
			break
		}
	}
	return best
}

// tokenSetJaccard is |tokens(a) ∩ tokens(b)| / |tokens(a) ∪ tokens(b)|.
// Order-insensitive: "iade kargo" and "kargo iade" score 1.0.
func tokenSetJaccard(a, b string) float64 {
	setA := wordSet(tokenize(a))
	setB := wordSet(tokenize(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// lcsLength computes the longest-common-subsequence length with a rolling
// two-row table.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
