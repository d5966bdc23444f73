package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrub/internal/ffmpeg"
	"scrub/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	outputDir  string
	sourceDir  string
}

func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		outputDir:  filepath.Join(base, "output"),
		sourceDir:  filepath.Join(base, "sources"),
	}
	if err := os.MkdirAll(env.sourceDir, 0o755); err != nil {
		t.Fatalf("mkdir sources: %v", err)
	}

	content := fmt.Sprintf(`
[paths]
output_dir = %q
log_dir = %q
history_dir = %q

[history]
enabled = false
`, env.outputDir, filepath.Join(base, "logs"), filepath.Join(base, "history"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, runner ffmpeg.Runner, args []string) (string, error) {
	t.Helper()

	cmd := newRootCommandWith(runner)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

// cliRunner fakes probe, conversion, and audit subprocesses for CLI tests.
func cliRunner(encoders ...string) *testsupport.FakeRunner {
	return &testsupport.FakeRunner{
		Handler: func(binary string, args []string) (ffmpeg.RunResult, error) {
			for _, arg := range args {
				if arg == "-encoders" {
					return ffmpeg.RunResult{Stdout: testsupport.EncoderListing(encoders...)}, nil
				}
				if arg == "-show_streams" {
					return ffmpeg.RunResult{Stdout: []byte(`{"streams": [], "format": {"tags": {"encoder": "Lavf"}}}`)}, nil
				}
			}
			dest := args[len(args)-1]
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return ffmpeg.RunResult{}, err
			}
			if err := os.WriteFile(dest, []byte("audio"), 0o644); err != nil {
				return ffmpeg.RunResult{}, err
			}
			return ffmpeg.RunResult{}, nil
		},
	}
}
