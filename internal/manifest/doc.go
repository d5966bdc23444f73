// Package manifest accumulates per-file conversion outcomes and writes the
// durable run report.
//
// Every (source file, requested format) pair produces exactly one
// OutputRecord with a status of ok, skipped, or failed. The builder keeps
// records in source-enumeration order regardless of completion order, so
// repeated runs over unchanged inputs serialize identically modulo
// timestamps and the run id.
package manifest
