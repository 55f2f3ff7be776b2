// Package warmup precomputes category keyword embeddings so the first
// semantic match after startup or reload does not pay for corpus-wide
// embedding calls.
//
// A Pipeline fans category texts out over a bounded worker pool, retries
// transient embedding failures with exponential backoff, and delivers each
// vector to one or more sinks: typically the matcher's in-memory index,
// plus the BadgerDB vector repository when persistence is on.
package warmup
