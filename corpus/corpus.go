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


package corpus

import (
	"fmt"
	"strings"

	"github.com/poiesic/answerit/core"
)

// DefaultResponseName is the reserved response name whose message becomes
// the corpus default template instead of a matchable answer.
const DefaultResponseName = "default_response"

// UserInputPlaceholder is substituted with the caller's original query when
// the default template is served.
const UserInputPlaceholder = "{user_input}"

// Corpus is the resolved, normalized form of a Document. It is immutable
// after Resolve returns; accessors hand out internal state that callers
// must treat as read-only.
type Corpus struct {
	answers         []core.CannedAnswer
	byCategory      map[string]int
	domains         map[string]core.DomainCategory
	redirects       map[string]string
	defaultResponse string
	hash            core.ID
}

// Resolve normalizes and validates a Document.
//
// Response names and keywords are lowercased with Turkish-aware casing.
// Declaration order is recorded on each answer. Category specs without
// terms inherit the keywords of the same-named response, and every response
// with keywords contributes a weight-1.0 domain category unless the
// document declares one explicitly.
func Resolve(doc *Document) (*Corpus, error) {
	if doc == nil {
		return nil, ErrEmptyCorpus
	}

	c := &Corpus{
		byCategory: make(map[string]int),
		domains:    make(map[string]core.DomainCategory),
		redirects:  make(map[string]string),
	}

	order := 0
	for _, entry := range doc.Responses {
		name := core.NormalizeText(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: response with empty name", ErrInvalidDocument)
		}
		if name == DefaultResponseName {
			c.defaultResponse = strings.TrimSpace(entry.Spec.Message)
			continue
		}

		answer := core.CannedAnswer{
			Category: name,
			Answer:   strings.TrimSpace(entry.Spec.Message),
			Order:    order,
		}
		for _, kw := range entry.Spec.Keywords {
			if kw = core.NormalizeText(kw); kw != "" {
				answer.Keywords = append(answer.Keywords, kw)
			}
		}
		if err := core.ValidateAnswer(&answer); err != nil {
			return nil, err
		}
		if _, dup := c.byCategory[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
		}
		c.byCategory[name] = len(c.answers)
		c.answers = append(c.answers, answer)
		order++
	}

	for name, spec := range doc.Categories {
		name = core.NormalizeText(name)
		if name == "" {
			continue
		}
		dc := core.DomainCategory{Weight: spec.Weight}
		if dc.Weight <= 0 {
			dc.Weight = 1.0
		}
		for _, term := range spec.Terms {
			if term = core.NormalizeText(term); term != "" {
				dc.Terms = append(dc.Terms, term)
			}
		}
		if len(dc.Terms) == 0 {
			if idx, ok := c.byCategory[name]; ok {
				dc.Terms = c.answers[idx].Keywords
			}
		}
		if len(dc.Terms) == 0 {
			continue
		}
		c.domains[name] = dc
	}

	// Responses without an explicit category spec still count as domain
	// signal through their keywords.
	for _, answer := range c.answers {
		if _, declared := c.domains[answer.Category]; declared || len(answer.Keywords) == 0 {
			continue
		}
		c.domains[answer.Category] = core.DomainCategory{
			Terms:  answer.Keywords,
			Weight: 1.0,
		}
	}

	for tag, message := range doc.Redirects {
		tag = core.NormalizeText(tag)
		message = strings.TrimSpace(message)
		if tag == "" || message == "" {
			continue
		}
		c.redirects[tag] = message
	}

	if len(c.answers) == 0 && c.defaultResponse == "" {
		return nil, ErrEmptyCorpus
	}

	c.hash = contentHash(c)
	return c, nil
}

// contentHash fingerprints the resolved content. Map sections are folded in
// key order so equal corpora hash equal regardless of source formatting.
func contentHash(c *Corpus) core.ID {
	var b strings.Builder
	for _, answer := range c.answers {
		b.WriteString(answer.Category)
		b.WriteByte(0x1f)
		b.WriteString(strings.Join(answer.Keywords, "\x1e"))
		b.WriteByte(0x1f)
		b.WriteString(answer.Answer)
		b.WriteByte(0x1e)
	}
	for _, name := range sortedKeys(c.domains) {
		dc := c.domains[name]
		fmt.Fprintf(&b, "%s\x1f%.4f\x1f%s\x1e", name, dc.Weight, strings.Join(dc.Terms, "\x1e"))
	}
	for _, tag := range sortedKeys(c.redirects) {
		b.WriteString(tag)
		b.WriteByte(0x1f)
		b.WriteString(c.redirects[tag])
		b.WriteByte(0x1e)
	}
	b.WriteString(c.defaultResponse)
	return core.IDFromContent(b.String())
}

// Answers returns all matchable answers in declaration order.
func (c *Corpus) Answers() []core.CannedAnswer {
	return c.answers
}

// Answer returns the answer for a category id.
func (c *Corpus) Answer(category string) (*core.CannedAnswer, bool) {
	idx, ok := c.byCategory[category]
	if !ok {
		return nil, false
	}
	return &c.answers[idx], true
}

// Has reports whether the category id exists in the corpus.
func (c *Corpus) Has(category string) bool {
	_, ok := c.byCategory[category]
	return ok
}

// Domains returns the weighted domain categories keyed by category id.
func (c *Corpus) Domains() map[string]core.DomainCategory {
	return c.domains
}

// Redirects returns per-topic overrides for off-domain redirect answers.
func (c *Corpus) Redirects() map[string]string {
	return c.redirects
}

// DefaultResponse returns the fallback template, or "" when the document
// did not declare one.
func (c *Corpus) DefaultResponse() string {
	return c.defaultResponse
}

// KeywordTerms returns every distinct keyword phrase in declaration order.
// Useful for seeding relevance term lists from corpus content.
func (c *Corpus) KeywordTerms() []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, answer := range c.answers {
		for _, kw := range answer.Keywords {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			terms = append(terms, kw)
		}
	}
	return terms
}

// Hash returns a fingerprint of the resolved content, used to key persisted
// category vectors to the corpus revision they were computed from.
func (c *Corpus) Hash() core.ID {
	return c.hash
}

// Len returns the number of matchable answers.
func (c *Corpus) Len() int {
	return len(c.answers)
}
