// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties including its tag map
//   - Format: container-level metadata and its tag map
//
// Primary entry point:
//   - Inspect: executes ffprobe through a Runner and returns a parsed Result
//
// Helper methods on Result give access to stream counts and the union of
// all container- and stream-level tag keys.
package ffprobe
