package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunResult captures the outcome of one subprocess invocation.
type RunResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner executes a named binary with arguments and captures its output.
// A nonzero exit code is reported through RunResult, not as an error; the
// error return is reserved for failures to start the process at all.
type Runner interface {
	Run(ctx context.Context, binary string, args ...string) (RunResult, error)
}

// CommandRunner is the os/exec backed Runner used outside of tests.
type CommandRunner struct{}

// Run executes the binary and waits for it to exit.
func (CommandRunner) Run(ctx context.Context, binary string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}
