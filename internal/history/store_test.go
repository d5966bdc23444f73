package history_test

import (
	"context"
	"testing"
	"time"

	"scrub/internal/history"
	"scrub/internal/manifest"
	"scrub/internal/testsupport"
)

func finalizedManifest(runID string) *manifest.Manifest {
	builder := manifest.NewBuilder(runID, "Fixtures", "/in", "/out")
	builder.Record(manifest.FileRecord{
		Source: "/in/a.wav",
		Outputs: []manifest.OutputRecord{
			{Format: "flac", Status: manifest.StatusOK, Dest: "/out/flac/a.flac"},
			{Format: "ogg", Status: manifest.StatusSkipped, Diagnostic: "no encoder available (tried libvorbis, vorbis)"},
		},
	})
	return builder.Finalize()
}

func TestRecordRunAndListRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	m := finalizedManifest("run-a")
	if err := store.RecordRun(ctx, m, "/out/manifest.json"); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != "run-a" || run.Label != "Fixtures" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.OK != 1 || run.Skipped != 1 || run.Failed != 0 {
		t.Fatalf("unexpected counters: %+v", run)
	}
	if run.ManifestPath != "/out/manifest.json" {
		t.Fatalf("unexpected manifest path: %q", run.ManifestPath)
	}
	if run.StartedAt.IsZero() || run.FinishedAt.Before(run.StartedAt) {
		t.Fatalf("unexpected timestamps: %+v", run)
	}
}

func TestListRunsMostRecentFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := finalizedManifest("run-1")
	if err := store.RecordRun(ctx, first, "/out/manifest.json"); err != nil {
		t.Fatalf("record first: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second := finalizedManifest("run-2")
	if err := store.RecordRun(ctx, second, "/out/manifest.json"); err != nil {
		t.Fatalf("record second: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-2" {
		t.Fatalf("expected run-2 first, got %+v", runs)
	}
}

func TestRecordRunDuplicateID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	m := finalizedManifest("run-dup")
	if err := store.RecordRun(ctx, m, "/out/manifest.json"); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := store.RecordRun(ctx, m, "/out/manifest.json"); err == nil {
		t.Fatal("expected primary key violation for duplicate run id")
	}
}
