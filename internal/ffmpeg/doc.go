// Package ffmpeg wraps invocation of the external ffmpeg binary.
//
// The Runner interface is the single subprocess boundary for the whole
// pipeline: implementations run a named binary with arguments and report
// the exit code plus captured output, which keeps every caller testable
// with a canned runner.
//
// Key types:
//   - Runner: narrow subprocess execution interface
//   - CommandRunner: os/exec backed implementation
//   - CapabilitySet: encoder identifiers the installed ffmpeg supports
//   - Prober: one-shot, memoized encoder capability discovery
package ffmpeg
