package manifest

import (
	"sync"
	"time"
)

// Status classifies one conversion outcome.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// OutputRecord is the result of one (source file, target format) pair.
type OutputRecord struct {
	Format     string `json:"format"`
	Encoder    string `json:"encoder,omitempty"`
	Status     Status `json:"status"`
	Dest       string `json:"dest,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
	// ResidualTags is set on ok records whose produced file still carries
	// non-technical metadata. It is a warning, never a failure.
	ResidualTags bool `json:"residual_tags,omitempty"`
}

// OriginalRecord is the outcome of mirroring a source file into the
// output tree.
type OriginalRecord struct {
	Status     Status `json:"status"`
	Dest       string `json:"dest,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// FileRecord aggregates one source file's outcomes.
type FileRecord struct {
	Source   string          `json:"source"`
	Original *OriginalRecord `json:"original,omitempty"`
	Outputs  []OutputRecord  `json:"outputs"`
}

// Summary holds the fold of all OutputRecords partitioned by status.
type Summary struct {
	OK      int `json:"ok"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Manifest is the full ordered record of a run.
type Manifest struct {
	RunID      string       `json:"run_id"`
	Label      string       `json:"label,omitempty"`
	SourceDir  string       `json:"source_dir"`
	OutputDir  string       `json:"output_dir"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Files      []FileRecord `json:"files"`
	Summary    Summary      `json:"summary"`
	// ResidualTagWarning is true when any ok output still carries
	// non-technical tags.
	ResidualTagWarning bool `json:"residual_tag_warning"`
}

// Builder accumulates FileRecords as the batch progresses. Record is safe
// for concurrent use; arrival order is preserved, so callers that process
// files in parallel must submit records in enumeration order themselves.
type Builder struct {
	mu       sync.Mutex
	manifest Manifest
}

// NewBuilder starts an empty manifest for a run.
func NewBuilder(runID, label, sourceDir, outputDir string) *Builder {
	return &Builder{manifest: Manifest{
		RunID:     runID,
		Label:     label,
		SourceDir: sourceDir,
		OutputDir: outputDir,
		StartedAt: time.Now().UTC(),
		Files:     []FileRecord{},
	}}
}

// Record appends one finished FileRecord.
func (b *Builder) Record(record FileRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.manifest.Files = append(b.manifest.Files, record)
}

// Finalize computes summary counts and the run-level residual-tag warning
// and returns the completed manifest.
func (b *Builder) Finalize() *Manifest {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.manifest.FinishedAt = time.Now().UTC()
	summary := Summary{}
	warning := false
	for _, file := range b.manifest.Files {
		for _, output := range file.Outputs {
			switch output.Status {
			case StatusOK:
				summary.OK++
				if output.ResidualTags {
					warning = true
				}
			case StatusSkipped:
				summary.Skipped++
			case StatusFailed:
				summary.Failed++
			}
		}
	}
	b.manifest.Summary = summary
	b.manifest.ResidualTagWarning = warning

	result := b.manifest
	return &result
}
