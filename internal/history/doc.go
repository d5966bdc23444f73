// Package history persists a record of past runs in a local SQLite
// database. Each run row carries the summary counters and manifest path;
// per-output rows keep enough detail for `scrub history` to answer what
// happened without re-reading old manifests.
package history
