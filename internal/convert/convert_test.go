package convert_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrub/internal/audit"
	"scrub/internal/convert"
	"scrub/internal/ffmpeg"
	"scrub/internal/format"
	"scrub/internal/manifest"
	"scrub/internal/testsupport"
)

func resolvedFormat(t *testing.T, key, encoder string) format.Resolved {
	t.Helper()
	spec, ok := format.Lookup(key)
	if !ok {
		t.Fatalf("unknown format %q", key)
	}
	return format.Resolved{Spec: spec, Encoder: encoder}
}

func cleanAuditor() audit.Auditor {
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{Stdout: []byte(`{"streams": [], "format": {"tags": {"encoder": "Lavf"}}}`)}, nil
		},
	}
	return audit.New(runner, "ffprobe")
}

func TestBuildArgsGrammar(t *testing.T) {
	args := convert.BuildArgs("in.wav", "out/mp3/in.mp3", resolvedFormat(t, "mp3", "libmp3lame"))
	want := []string{
		"-y", "-hide_banner", "-v", "error",
		"-i", "in.wav",
		"-map", "0:a:0", "-vn",
		"-map_metadata", "-1", "-map_chapters", "-1",
		"-c:a", "libmp3lame", "-q:a", "2",
		"out/mp3/in.mp3",
	}
	if len(args) != len(want) {
		t.Fatalf("unexpected args: %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d: got %q want %q (full: %v)", i, args[i], want[i], args)
		}
	}
}

func TestBuildArgsAppendsContainerExtrasBeforeDest(t *testing.T) {
	args := convert.BuildArgs("in.wav", "out.m4a", resolvedFormat(t, "m4a", "aac"))
	if args[len(args)-1] != "out.m4a" {
		t.Fatalf("destination must be last: %v", args)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-movflags +faststart out.m4a") {
		t.Fatalf("container extras must precede destination: %v", args)
	}
}

func TestConvertZeroExitIsOK(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "flac", "a.flac")
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			if err := os.WriteFile(args[len(args)-1], []byte("fLaC"), 0o644); err != nil {
				return ffmpeg.RunResult{}, err
			}
			return ffmpeg.RunResult{}, nil
		},
	}

	executor := convert.NewExecutor(runner, "ffmpeg", cleanAuditor(), 512)
	record := executor.Convert(context.Background(), filepath.Join(dir, "a.wav"), dest, resolvedFormat(t, "flac", "flac"))

	if record.Status != manifest.StatusOK {
		t.Fatalf("expected ok, got %+v", record)
	}
	if record.Dest != dest {
		t.Fatalf("unexpected dest: %q", record.Dest)
	}
	if record.ResidualTags {
		t.Fatal("clean audit must not flag residual tags")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("destination file missing: %v", err)
	}
}

func TestConvertNonzeroExitIsFailed(t *testing.T) {
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{ExitCode: 1, Stderr: []byte("Error while opening encoder")}, nil
		},
	}

	executor := convert.NewExecutor(runner, "ffmpeg", cleanAuditor(), 512)
	record := executor.Convert(context.Background(), "a.wav", filepath.Join(t.TempDir(), "a.ogg"), resolvedFormat(t, "ogg", "libvorbis"))

	if record.Status != manifest.StatusFailed {
		t.Fatalf("expected failed, got %+v", record)
	}
	if record.Dest != "" {
		t.Fatalf("failed record must not carry a dest, got %q", record.Dest)
	}
	if !strings.Contains(record.Diagnostic, "opening encoder") {
		t.Fatalf("diagnostic missing stderr text: %q", record.Diagnostic)
	}
}

func TestConvertDiagnosticTruncatedToBound(t *testing.T) {
	const limit = 64
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{ExitCode: 1, Stderr: []byte(strings.Repeat("x", 10*limit))}, nil
		},
	}

	executor := convert.NewExecutor(runner, "ffmpeg", cleanAuditor(), limit)
	record := executor.Convert(context.Background(), "a.wav", filepath.Join(t.TempDir(), "a.wav"), resolvedFormat(t, "wav", "pcm_s16le"))

	if record.Status != manifest.StatusFailed {
		t.Fatalf("expected failed, got %+v", record)
	}
	if len(record.Diagnostic) != limit {
		t.Fatalf("diagnostic length %d, want exactly %d", len(record.Diagnostic), limit)
	}
}

func TestConvertAuditWarningDoesNotFail(t *testing.T) {
	dir := t.TempDir()
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{}, nil
		},
	}
	dirtyProbe := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{Stdout: []byte(`{"streams": [], "format": {"tags": {"artist": "Someone"}}}`)}, nil
		},
	}

	executor := convert.NewExecutor(runner, "ffmpeg", audit.New(dirtyProbe, "ffprobe"), 512)
	record := executor.Convert(context.Background(), "a.wav", filepath.Join(dir, "a.mp3"), resolvedFormat(t, "mp3", "libmp3lame"))

	if record.Status != manifest.StatusOK {
		t.Fatalf("audit result must not change status: %+v", record)
	}
	if !record.ResidualTags {
		t.Fatal("expected residual tag warning on record")
	}
}
