// Package logging constructs the slog loggers used across scrub.
//
// Two output formats are supported: a human-oriented console format and
// line-delimited JSON. NewFromConfig additionally tees output into the
// configured log directory so batch runs leave a durable log alongside
// the manifest.
package logging
