// Package corpus loads, resolves, and serializes the canned-answer corpus
// that drives classification and matching.
//
// A corpus starts life as a Document: the raw parse of a JSON or YAML file
// containing named responses, optional weighted domain categories, and
// optional redirect overrides. Resolve turns a Document into a Corpus, the
// normalized, validated, immutable form the rest of the system consumes.
//
// # Document Format
//
// The responses section maps response names to either a full object with
// keywords and a message, or a bare string that is only a message. Response
// declaration order is preserved through parsing and becomes the tie-break
// order during keyword matching, so both parsers decode the section
// positionally rather than into a Go map.
//
// The reserved response name "default_response" supplies the fallback
// template. Its message may contain the {user_input} placeholder, which is
// substituted with the caller's original query when the template is served.
//
// # Architecture
//
// The package follows a layered design:
//
//   - Document: raw parse, order-preserving, format specific
//   - Corpus: resolved and normalized, format independent
//   - Store: loading abstraction (file today, database via corpus/badger)
//   - MarshalCorpus/UnmarshalCorpus: binary form for persistence
//
// # Thread Safety
//
// A Corpus is immutable after Resolve returns. All accessors are safe for
// concurrent use; callers must treat returned slices and maps as read-only.
//
// Stores are safe for concurrent use unless documented otherwise.
package corpus
