// Package format defines the target output formats scrub can produce and
// resolves requested format keys against discovered encoder capabilities.
//
// Each Spec carries an ordered encoder preference list; resolution picks
// the first encoder present in the capability set. A format none of whose
// preferred encoders are installed is reported as unavailable, annotated
// with the identifiers that were tried.
package format
