// Package config loads, normalizes, and validates scrub configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and sanitizes every knob the CLI and the
// conversion pipeline need: source extension, output directory, target
// formats, worker count, and external binary overrides.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical format keys, and clear validation errors.
package config
