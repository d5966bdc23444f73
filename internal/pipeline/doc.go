// Package pipeline coordinates a full batch run: encoder capability
// discovery, source enumeration, format resolution, per-pair conversion,
// tag auditing, and manifest assembly.
//
// Only capability discovery and source enumeration abort a run. Every
// per-pair outcome, including encoder failures, is captured in the
// manifest and the batch continues; the manifest is the authoritative
// failure report.
package pipeline
