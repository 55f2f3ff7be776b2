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


package core

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxQueryLength is the rune bound applied to incoming query text.
// Longer input is truncated, never rejected.
const MaxQueryLength = 500

// NewQuery prepares raw user text for classification and matching.
//
// Normalization rules:
//   - surrounding whitespace is trimmed
//   - text is truncated to MaxQueryLength runes
//   - the language is detected before lowercasing, because Turkish casing
//     folds I to dotless ı and İ to i
//   - lowercasing uses the detected language's casing rules
//
// Empty input yields a Query with an empty Normalized field; callers decide
// how to answer it. NewQuery never fails.
func NewQuery(raw, context string) *Query {
	text := strings.TrimSpace(raw)
	if utf8.RuneCountInString(text) > MaxQueryLength {
		text = TruncateRunes(text, MaxQueryLength)
	}

	lang := DetectLanguage(text)
	normalized := cases.Lower(lang).String(text)

	return &Query{
		Raw:        raw,
		Normalized: normalized,
		Language:   lang,
		Context:    strings.TrimSpace(context),
	}
}

// NormalizeText lowercases text the same way NewQuery does. Corpus keywords
// and category names go through this so containment checks against
// Query.Normalized compare like with like.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	return cases.Lower(DetectLanguage(text)).String(text)
}

// TruncateRunes shortens s to at most n runes. Byte-index truncation would
// split multi-byte runes, which Turkish text is full of.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Runes unique to Turkish orthography among the supported languages.
const turkishRunes = "ıİğĞşŞçÇöÖüÜ"

// Function words that mark ASCII-only text as Turkish.
var turkishMarkers = map[string]struct{}{
	"ne": {}, "nedir": {}, "nasil": {}, "neden": {}, "niye": {},
	"mi": {}, "mu": {}, "ve": {}, "bir": {}, "bu": {},
	"icin": {}, "nerede": {}, "kadar": {}, "var": {}, "yok": {},
}

// DetectLanguage guesses whether text is Turkish or English. Any
// Turkish-specific rune decides immediately; otherwise whole words are
// checked against a small marker list. English is the default, which is
// harmless for ASCII input since both casings agree there.
func DetectLanguage(text string) language.Tag {
	if strings.ContainsAny(text, turkishRunes) {
		return language.Turkish
	}
	for _, word := range strings.Fields(text) {
		w := strings.ToLower(strings.Trim(word, ".,!?;:'\""))
		if _, ok := turkishMarkers[w]; ok {
			return language.Turkish
		}
	}
	return language.English
}
