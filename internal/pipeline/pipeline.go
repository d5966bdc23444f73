package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"scrub/internal/audit"
	"scrub/internal/config"
	"scrub/internal/convert"
	"scrub/internal/ffmpeg"
	"scrub/internal/fileutil"
	"scrub/internal/format"
	"scrub/internal/manifest"
	"scrub/internal/scan"
)

// ManifestFilename is the manifest's name inside the output directory.
const ManifestFilename = "manifest.json"

// Pipeline runs a full conversion batch. The runner is threaded through
// explicitly so the whole pipeline is testable without spawning real
// subprocesses.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	runner ffmpeg.Runner
}

// New builds a Pipeline.
func New(cfg *config.Config, logger *slog.Logger, runner ffmpeg.Runner) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger, runner: runner}
}

// Result summarizes one completed run.
type Result struct {
	Manifest     *manifest.Manifest
	ManifestPath string
	// SkippedFormats lists formats unavailable for the whole run.
	SkippedFormats []format.Unavailable
	// NoSources is true when enumeration found nothing to convert.
	NoSources bool
}

// planEntry is one requested format in selection order, either resolved
// to an encoder or unavailable for the whole run.
type planEntry struct {
	resolved    *format.Resolved
	spec        format.Spec
	skipMessage string
}

// Run executes the batch against sourceDir.
//
// Capability discovery failures, unreadable roots, unknown format keys,
// and an empty resolution are terminal. Everything after that point is
// captured per (file, format) pair in the manifest: each pair yields
// exactly one record with status ok, skipped, or failed.
func (p *Pipeline) Run(ctx context.Context, sourceDir string) (*Result, error) {
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	outputDir := p.cfg.Paths.OutputDir

	lock := flock.New(filepath.Join(outputDir, ".scrub.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() {
		_ = lock.Unlock()
	}()

	prober := ffmpeg.NewProber(p.runner, p.cfg.FFmpegBinary())
	caps, err := prober.Capabilities(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("discovered encoder capabilities", "count", len(caps))

	plan, skipped, err := p.buildPlan(caps)
	if err != nil {
		return nil, err
	}
	for _, unavailable := range skipped {
		p.logger.Warn("format unavailable for this run",
			"format", unavailable.Spec.Key,
			"tried", strings.Join(unavailable.Tried, ", "))
	}

	sources, err := scan.ListSources(sourceDir, p.cfg.Source.Extension)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	builder := manifest.NewBuilder(runID, deriveLabel(sourceDir), sourceDir, outputDir)
	result := &Result{SkippedFormats: skipped, ManifestPath: filepath.Join(outputDir, ManifestFilename)}

	if len(sources) == 0 {
		result.NoSources = true
		result.Manifest = builder.Finalize()
		return result, result.Manifest.WriteFile(result.ManifestPath)
	}

	auditor := audit.New(p.runner, p.cfg.FFprobeBinary())
	executor := convert.NewExecutor(p.runner, p.cfg.FFmpegBinary(), auditor, p.cfg.Conversion.DiagnosticLimit)

	outputs := make([][]manifest.OutputRecord, len(sources))
	originals := make([]*manifest.OriginalRecord, len(sources))
	for i := range outputs {
		outputs[i] = make([]manifest.OutputRecord, len(plan))
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.cfg.Conversion.Jobs)

	for i, source := range sources {
		i, source := i, source
		rel, relErr := filepath.Rel(sourceDir, source)
		if relErr != nil {
			rel = filepath.Base(source)
		}

		if p.cfg.Conversion.MirrorOriginals {
			group.Go(func() error {
				originals[i] = p.mirrorOriginal(source, filepath.Join(outputDir, "originals", rel))
				return nil
			})
		}

		for j, entry := range plan {
			j, entry := j, entry
			if entry.resolved == nil {
				outputs[i][j] = manifest.OutputRecord{
					Format:     entry.spec.Key,
					Status:     manifest.StatusSkipped,
					Diagnostic: entry.skipMessage,
				}
				continue
			}
			dest := destPath(outputDir, entry.spec, rel)
			group.Go(func() error {
				record := executor.Convert(groupCtx, source, dest, *entry.resolved)
				if record.Status == manifest.StatusFailed {
					p.logger.Warn("conversion failed",
						"source", source, "format", entry.spec.Key, "diagnostic", record.Diagnostic)
				} else if record.ResidualTags {
					p.logger.Warn("output retains non-technical tags",
						"dest", record.Dest, "format", entry.spec.Key)
				}
				outputs[i][j] = record
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Reassemble in enumeration order so manifests are reproducible
	// regardless of worker completion order.
	for i, source := range sources {
		builder.Record(manifest.FileRecord{
			Source:   source,
			Original: originals[i],
			Outputs:  outputs[i],
		})
	}

	result.Manifest = builder.Finalize()
	if err := result.Manifest.WriteFile(result.ManifestPath); err != nil {
		return nil, err
	}
	p.logger.Info("batch complete",
		"ok", result.Manifest.Summary.OK,
		"skipped", result.Manifest.Summary.Skipped,
		"failed", result.Manifest.Summary.Failed,
		"manifest", result.ManifestPath)
	return result, nil
}

// buildPlan resolves the configured format keys once for the whole run
// and fixes the per-file record order to the selection order.
func (p *Pipeline) buildPlan(caps ffmpeg.CapabilitySet) ([]planEntry, []format.Unavailable, error) {
	available, unavailable, err := format.Resolve(p.cfg.Conversion.Formats, caps)
	if err != nil {
		return nil, nil, err
	}
	if len(available) == 0 {
		tried := make([]string, 0, len(unavailable))
		for _, u := range unavailable {
			tried = append(tried, u.Spec.Key)
		}
		return nil, nil, fmt.Errorf("%w (requested: %s)", ErrNoFormats, strings.Join(tried, ", "))
	}

	keys := p.cfg.Conversion.Formats
	if len(keys) == 0 {
		for _, spec := range format.Known() {
			keys = append(keys, spec.Key)
		}
	}

	plan := make([]planEntry, 0, len(keys))
	for _, key := range keys {
		matched := false
		for idx := range available {
			if available[idx].Spec.Key == key {
				plan = append(plan, planEntry{resolved: &available[idx], spec: available[idx].Spec})
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		for _, u := range unavailable {
			if u.Spec.Key == key {
				plan = append(plan, planEntry{
					spec:        u.Spec,
					skipMessage: fmt.Sprintf("no encoder available (tried %s)", strings.Join(u.Tried, ", ")),
				})
				break
			}
		}
	}
	return plan, unavailable, nil
}

func (p *Pipeline) mirrorOriginal(source, dest string) *manifest.OriginalRecord {
	record := &manifest.OriginalRecord{Dest: dest}
	if err := fileutil.EnsureParentDir(dest); err != nil {
		record.Status = manifest.StatusFailed
		record.Dest = ""
		record.Diagnostic = convert.Truncate(err.Error(), p.cfg.Conversion.DiagnosticLimit)
		return record
	}
	if err := fileutil.CopyFileVerified(source, dest); err != nil {
		record.Status = manifest.StatusFailed
		record.Dest = ""
		record.Diagnostic = convert.Truncate(err.Error(), p.cfg.Conversion.DiagnosticLimit)
		return record
	}
	record.Status = manifest.StatusOK
	return record
}

func destPath(outputDir string, spec format.Spec, rel string) string {
	relNoExt := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(outputDir, spec.Key, relNoExt+spec.Extension)
}
