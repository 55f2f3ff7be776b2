// Package classify decides whether a query belongs to the support domain
// before any model work happens.
//
// Classification runs up to five stages, cheapest first, and stops at the
// first stage confident enough to answer:
//
//  1. keyword filter: substring hits against allow/deny term lists
//  2. pattern matching: compiled phrasing patterns, on- and off-domain
//  3. domain analysis: weighted term overlap with corpus domain categories
//  4. context analysis: continuation signal from conversation context
//  5. heuristic: always answers, bounded confidence
//
// Stages that lack signal abstain rather than guess. When no stage reaches
// its exit threshold, the highest-confidence abstaining verdict wins, with
// earlier stages preferred on ties. A stage that panics is skipped; if
// everything fails the classifier returns a weakly-relevant fallback so the
// matcher still produces an answer.
//
// Off-domain verdicts carry a redirect: a short answer steering the user
// back to support topics, chosen per detected topic and overridable from
// the corpus.
//
// All stages work on pre-normalized text (see core.NewQuery) and no stage
// performs I/O, so Classify is synchronous and fast enough for the hot path.
package classify
