package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
	"golang.org/x/text/language"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FingerprintQuery generates the cache fingerprint for a normalized query and
// its conversation context. The pair is what makes a lookup unique: the same
// words asked in a different context must not collide.
func FingerprintQuery(normalized, context string) ID {
	return IDFromContent(normalized + "\x1f" + context)
}

// Query is a single user utterance prepared for classification and matching.
// Fields are populated by NewQuery and must not be mutated afterwards; the
// matching pipeline shares Query values across goroutines without locking.
type Query struct {
	Raw        string       // original text as received
	Normalized string       // trimmed, language-aware lowercased, length-bounded
	Language   language.Tag // detected language (Turkish or English)
	Context    string       // optional conversation context
}

// Fingerprint returns the cache fingerprint for this query.
func (q *Query) Fingerprint() ID {
	return FingerprintQuery(q.Normalized, q.Context)
}

// CannedAnswer is one pre-authored response category from the corpus.
type CannedAnswer struct {
	Category string   // category id, normalized
	Keywords []string // keyword phrases, normalized, declaration order
	Answer   string   // response body
	Order    int      // declaration index within the corpus, for tie-breaks
}

// DomainCategory is a weighted term set describing one slice of the business
// domain. It drives the classifier's domain-analysis stage.
type DomainCategory struct {
	Terms  []string
	Weight float64
}

// RelevanceLevel grades how strongly a query belongs to the business domain.
type RelevanceLevel string

const (
	LevelHighlyRelevant    RelevanceLevel = "highly_relevant"
	LevelRelevant          RelevanceLevel = "relevant"
	LevelPartiallyRelevant RelevanceLevel = "partially_relevant"
	LevelLowRelevance      RelevanceLevel = "low_relevance"
	LevelIrrelevant        RelevanceLevel = "irrelevant"
)

// LevelFromConfidence maps a verdict and its confidence onto a RelevanceLevel.
func LevelFromConfidence(relevant bool, confidence float64) RelevanceLevel {
	if !relevant {
		return LevelIrrelevant
	}
	switch {
	case confidence >= 0.85:
		return LevelHighlyRelevant
	case confidence >= 0.70:
		return LevelRelevant
	case confidence >= 0.55:
		return LevelPartiallyRelevant
	default:
		return LevelLowRelevance
	}
}

// ClassificationMethod identifies which pipeline stage produced a verdict.
type ClassificationMethod string

const (
	MethodKeywordFilter   ClassificationMethod = "keyword_filter"
	MethodPatternMatching ClassificationMethod = "pattern_matching"
	MethodDomainAnalysis  ClassificationMethod = "domain_analysis"
	MethodContextAnalysis ClassificationMethod = "context_analysis"
	MethodDeepHeuristic   ClassificationMethod = "deep_heuristic"
	// MethodHybridVote marks a verdict assembled from sub-threshold stage
	// results, or the safe fallback when the pipeline itself failed.
	MethodHybridVote ClassificationMethod = "hybrid_vote"
)

// ClassificationResult is the outcome of relevance classification.
type ClassificationResult struct {
	IsRelevant bool
	Confidence float64 // 0..1
	Level      RelevanceLevel
	Method     ClassificationMethod
	Categories []string // matched domain categories, or the redirect tag when irrelevant
	Reasoning  string   // short human-readable trace of the deciding signal
	Redirect   string   // suggested redirect answer, set only when irrelevant
	Latency    time.Duration
}

// MatchSource identifies which matching stage produced an answer.
type MatchSource string

const (
	MatchSourceExactCache    MatchSource = "exact_cache"
	MatchSourceSemanticCache MatchSource = "semantic_cache"
	MatchSourceKeyword       MatchSource = "keyword"
	MatchSourceFuzzy         MatchSource = "fuzzy"
	MatchSourceSemantic      MatchSource = "semantic"
	MatchSourceDomain        MatchSource = "domain"
	MatchSourceDefault       MatchSource = "default"
	MatchSourceIrrelevant    MatchSource = "irrelevant"
)

// MatchResult is the outcome of content matching for one query.
type MatchResult struct {
	Answer   string
	Source   MatchSource
	Score    float64 // stage-specific: keyword score, cosine similarity, or confidence
	Category string  // matched category, or the redirect tag for irrelevant queries
}
