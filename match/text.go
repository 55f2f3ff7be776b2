package match

import "strings"

// Stop words filtered out before word-overlap scoring. Both languages share
// one set; normalized text has already been lowercased.
var stopWords = map[string]bool{
	// Turkish
	"ve": true, "bir": true, "bu": true, "şu": true, "o": true, "da": true,
	"de": true, "mi": true, "mı": true, "mu": true, "mü": true, "ile": true,
	"için": true, "gibi": true, "daha": true, "çok": true, "ama": true,
	"ya": true, "ki": true, "ben": true, "sen": true, "biz": true,
	// English
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "my": true, "i": true,
}

// tokenize splits normalized text into content words: punctuation trimmed,
// stop words removed.
func tokenize(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}
	return filtered
}

// wordSet builds a membership set from tokenized words.
func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
