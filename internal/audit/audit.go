// Package audit inspects produced files for residual metadata.
//
// The check is advisory: a conversion that left user tags behind is still
// recorded as ok, with the manifest carrying a warning. Inspection
// failures are treated as a clean result; the audit must never turn a
// successful conversion into a failure.
package audit

import (
	"context"
	"strings"

	"scrub/internal/ffmpeg"
	"scrub/internal/ffprobe"
)

// technicalKeys are tag keys the encoding process itself adds. They do not
// constitute user metadata and are excluded from the residual-tag check.
var technicalKeys = map[string]struct{}{
	"encoder":           {},
	"creation_time":     {},
	"major_brand":       {},
	"minor_version":     {},
	"compatible_brands": {},
	"language":          {},
	"handler_name":      {},
	"vendor_id":         {},
	"duration":          {},
}

// IsTechnical reports whether key is an artifact of the encoding process.
// Comparison is case-insensitive.
func IsTechnical(key string) bool {
	_, ok := technicalKeys[strings.ToLower(key)]
	return ok
}

// Auditor checks produced files for tags outside the technical allow-list.
type Auditor struct {
	runner ffmpeg.Runner
	binary string
}

// New builds an Auditor that probes files with the given ffprobe binary.
func New(runner ffmpeg.Runner, binary string) Auditor {
	return Auditor{runner: runner, binary: binary}
}

// ResidualTagKeys returns every tag key on the file that is not on the
// technical allow-list. Inspection failure yields nil (fail-open).
func (a Auditor) ResidualTagKeys(ctx context.Context, path string) []string {
	result, err := ffprobe.Inspect(ctx, a.runner, a.binary, path)
	if err != nil {
		return nil
	}
	var residual []string
	for _, key := range result.TagKeys() {
		if !IsTechnical(key) {
			residual = append(residual, key)
		}
	}
	return residual
}

// HasResidualTags reports whether the file retains any non-technical tag.
func (a Auditor) HasResidualTags(ctx context.Context, path string) bool {
	return len(a.ResidualTagKeys(ctx, path)) > 0
}
