package ffprobe_test

import (
	"context"
	"sort"
	"testing"

	"scrub/internal/ffmpeg"
	"scrub/internal/ffprobe"
	"scrub/internal/testsupport"
)

const cannedProbeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "flac", "codec_type": "audio", "channels": 2, "tags": {"encoder": "Lavc61.3.100 flac"}}
  ],
  "format": {
    "filename": "out.flac",
    "nb_streams": 1,
    "format_name": "flac",
    "tags": {"ENCODER": "Lavf61.1.100", "artist": "Someone"}
  }
}`

func TestInspectParsesTags(t *testing.T) {
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{Stdout: []byte(cannedProbeJSON)}, nil
		},
	}

	result, err := ffprobe.Inspect(context.Background(), runner, "ffprobe", "out.flac")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected one audio stream, got %d", result.AudioStreamCount())
	}

	keys := result.TagKeys()
	sort.Strings(keys)
	want := []string{"ENCODER", "artist", "encoder"}
	if len(keys) != len(want) {
		t.Fatalf("unexpected tag keys: %v", keys)
	}
	for i, key := range want {
		if keys[i] != key {
			t.Fatalf("unexpected tag keys: %v", keys)
		}
	}
}

func TestInspectRejectsNonzeroExit(t *testing.T) {
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{ExitCode: 1, Stderr: []byte("No such file or directory")}, nil
		},
	}

	if _, err := ffprobe.Inspect(context.Background(), runner, "ffprobe", "missing.flac"); err == nil {
		t.Fatal("expected error for nonzero exit")
	}
}

func TestInspectRejectsMalformedJSON(t *testing.T) {
	runner := &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			return ffmpeg.RunResult{Stdout: []byte("not json")}, nil
		},
	}

	if _, err := ffprobe.Inspect(context.Background(), runner, "ffprobe", "out.flac"); err == nil {
		t.Fatal("expected error for malformed output")
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := ffprobe.Inspect(context.Background(), &testsupport.FakeRunner{}, "ffprobe", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
