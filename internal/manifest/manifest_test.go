package manifest_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"scrub/internal/manifest"
)

func TestFinalizeFoldsSummaryCounts(t *testing.T) {
	builder := manifest.NewBuilder("run-1", "fixtures", "/in", "/out")
	builder.Record(manifest.FileRecord{
		Source: "/in/a.wav",
		Outputs: []manifest.OutputRecord{
			{Format: "flac", Status: manifest.StatusOK, Dest: "/out/flac/a.flac"},
			{Format: "ogg", Status: manifest.StatusSkipped, Diagnostic: "no encoder available (tried libvorbis, vorbis)"},
		},
	})
	builder.Record(manifest.FileRecord{
		Source: "/in/b.wav",
		Outputs: []manifest.OutputRecord{
			{Format: "flac", Status: manifest.StatusFailed, Diagnostic: "boom"},
			{Format: "ogg", Status: manifest.StatusSkipped},
		},
	})

	m := builder.Finalize()
	if m.Summary.OK != 1 || m.Summary.Skipped != 2 || m.Summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", m.Summary)
	}
	if m.ResidualTagWarning {
		t.Fatal("expected no residual tag warning")
	}
	if len(m.Files) != 2 || m.Files[0].Source != "/in/a.wav" {
		t.Fatalf("record ordering lost: %+v", m.Files)
	}
}

func TestFinalizeRaisesResidualTagWarning(t *testing.T) {
	builder := manifest.NewBuilder("run-2", "", "/in", "/out")
	builder.Record(manifest.FileRecord{
		Source: "/in/a.wav",
		Outputs: []manifest.OutputRecord{
			{Format: "mp3", Status: manifest.StatusOK, ResidualTags: true},
		},
	})

	m := builder.Finalize()
	if !m.ResidualTagWarning {
		t.Fatal("expected residual tag warning")
	}
}

func TestFinalizeEmptyRun(t *testing.T) {
	m := manifest.NewBuilder("run-3", "", "/in", "/out").Finalize()
	if m.Summary != (manifest.Summary{}) {
		t.Fatalf("expected zero summary, got %+v", m.Summary)
	}
	if m.Files == nil || len(m.Files) != 0 {
		t.Fatalf("expected empty (non-nil) file list, got %#v", m.Files)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")

	first := manifest.NewBuilder("run-4", "", "/in", "/out").Finalize()
	if err := first.WriteFile(path); err != nil {
		t.Fatalf("first write: %v", err)
	}

	builder := manifest.NewBuilder("run-4", "", "/in", "/out")
	builder.Record(manifest.FileRecord{Source: "/in/a.wav", Outputs: []manifest.OutputRecord{{Format: "wav", Status: manifest.StatusOK}}})
	second := builder.Finalize()
	if err := second.WriteFile(path); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var decoded manifest.Manifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(decoded.Files) != 1 || decoded.Summary.OK != 1 {
		t.Fatalf("expected overwritten manifest with one record, got %+v", decoded)
	}
}
