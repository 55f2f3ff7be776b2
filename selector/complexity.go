package selector

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/answerit/core"
)

// Complexity score weights and caps. Length and word count saturate so a
// rambling query cannot dominate the lexical signals.
const (
	lengthWeight  = 0.2
	lengthCap     = 200
	wordWeight    = 0.2
	wordCap       = 30
	domainWeight  = 0.3
	patternWeight = 0.3
)

// complexPatterns recognize question shapes that need a better model:
// comparisons, explanations, conditionals, and multi-step requests.
var complexPatterns = []*regexp.Regexp{
	regexp.MustCompile(`hangisi daha|aras[ıi]ndaki fark|fark[ıi] ne|k[ıi]yasla|compare|difference between| vs |versus`),
	regexp.MustCompile(`neden|niçin|niye|açıklar m[ıi]|detayl[ıi] (bilgi|anlat)|explain|why (is|does|do|did)|what does .* mean`),
	regexp.MustCompile(`eğer .* (olursa|ise)|olmazsa ne|durumunda ne|what (if|happens when)|in case (of|i)`),
	regexp.MustCompile(`adım adım|önce .* sonra|hem .* hem|step by step|first .* then|and (also|then)`),
}

// Complexity scores a query in [0,1]: longer, wordier queries dense with
// domain terms and complex question shapes score higher.
func (s *Selector) Complexity(q *core.Query) float64 {
	if q == nil || q.Normalized == "" {
		return 0
	}
	text := q.Normalized

	length := utf8.RuneCountInString(text)
	if length > lengthCap {
		length = lengthCap
	}

	words := strings.Fields(text)
	wordCount := len(words)
	if wordCount > wordCap {
		wordCount = wordCap
	}

	score := lengthWeight*float64(length)/lengthCap +
		wordWeight*float64(wordCount)/wordCap +
		domainWeight*s.domainFraction(words) +
		patternWeight*patternFraction(text)

	if score > 1 {
		score = 1
	}
	return score
}

// domainFraction is the share of query words that appear inside a known
// domain term. Substring direction matters: the word "kargom" should count
// against the term "kargo", not the other way around.
func (s *Selector) domainFraction(words []string) float64 {
	if len(words) == 0 || len(s.domainTerms) == 0 {
		return 0
	}
	matched := 0
	for _, word := range words {
		for _, term := range s.domainTerms {
			if strings.Contains(word, term) || strings.Contains(term, word) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(words))
}

func patternFraction(text string) float64 {
	matched := 0
	for _, p := range complexPatterns {
		if p.MatchString(text) {
			matched++
		}
	}
	return float64(matched) / float64(len(complexPatterns))
}
