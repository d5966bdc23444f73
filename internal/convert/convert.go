// Package convert runs single (source file, target format) conversions
// through the external encoder and classifies their outcomes.
package convert

import (
	"context"
	"strings"

	"scrub/internal/audit"
	"scrub/internal/ffmpeg"
	"scrub/internal/fileutil"
	"scrub/internal/format"
	"scrub/internal/manifest"
)

// Executor converts one source file into one resolved target format.
// Each invocation is independent; an Executor is safe to share across
// workers.
type Executor struct {
	runner          ffmpeg.Runner
	binary          string
	auditor         audit.Auditor
	diagnosticLimit int
}

// NewExecutor builds an Executor around the given ffmpeg binary.
func NewExecutor(runner ffmpeg.Runner, binary string, auditor audit.Auditor, diagnosticLimit int) *Executor {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	if diagnosticLimit <= 0 {
		diagnosticLimit = 512
	}
	return &Executor{runner: runner, binary: binary, auditor: auditor, diagnosticLimit: diagnosticLimit}
}

// Convert invokes the encoder for one task and returns its OutputRecord.
// A nonzero encoder exit is recorded as failed with a bounded diagnostic;
// it never aborts the batch. On success the produced file is audited for
// residual tags before the record is finalized as ok.
func (e *Executor) Convert(ctx context.Context, source, dest string, resolved format.Resolved) manifest.OutputRecord {
	record := manifest.OutputRecord{
		Format:  resolved.Spec.Key,
		Encoder: resolved.Encoder,
	}

	if err := fileutil.EnsureParentDir(dest); err != nil {
		record.Status = manifest.StatusFailed
		record.Diagnostic = Truncate(err.Error(), e.diagnosticLimit)
		return record
	}

	run, err := e.runner.Run(ctx, e.binary, BuildArgs(source, dest, resolved)...)
	if err != nil {
		record.Status = manifest.StatusFailed
		record.Diagnostic = Truncate(err.Error(), e.diagnosticLimit)
		return record
	}
	if run.ExitCode != 0 {
		record.Status = manifest.StatusFailed
		record.Diagnostic = Truncate(strings.TrimSpace(string(run.Stderr)), e.diagnosticLimit)
		return record
	}

	record.Status = manifest.StatusOK
	record.Dest = dest
	record.ResidualTags = e.auditor.HasResidualTags(ctx, dest)
	return record
}

// BuildArgs assembles the encoder argument list for one task: overwrite
// the destination, keep logging to errors only, select the first audio
// stream, drop any attached video or image stream, strip container- and
// stream-level metadata and chapters, then apply the format's codec and
// container arguments.
func BuildArgs(source, dest string, resolved format.Resolved) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-v", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-map_metadata", "-1",
		"-map_chapters", "-1",
	}
	args = append(args, resolved.Spec.CodecArgs(resolved.Encoder)...)
	args = append(args, resolved.Spec.ExtraArgs...)
	return append(args, dest)
}

// Truncate bounds diagnostic text to at most limit bytes so the manifest
// stays small even under pathological encoder output.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit]
}
