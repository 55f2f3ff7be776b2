// Package match finds the best canned answer for a query, spending as
// little as possible to do it.
//
// Stages run cheapest first and the first confident one answers:
//
//  1. exact cache lookup by query fingerprint
//  2. relevance classification; off-domain queries get a redirect
//  3. keyword overlap against the corpus, with fuzzy phrase credit
//  4. domain-analysis shortcut when classification already named a category
//  5. tier selection, one embedding call, semantic cache, then cosine
//     similarity against per-category keyword vectors
//  6. optional generative fallback
//  7. the corpus default template
//
// The embedding call is the only stage that touches the network; everything
// before it is pure computation. Any embedding failure degrades to the
// default template instead of surfacing. FindAnswer always returns an
// answer; worst case is the redirect or the default template.
//
// Non-default results are written back to the cache, so a repeated question
// is served from stage 1 on the second ask.
package match
