package testsupport

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"scrub/internal/ffmpeg"
)

// FakeRunner implements ffmpeg.Runner with a scripted handler, recording
// every invocation for later assertions.
type FakeRunner struct {
	// Handler produces the result for each invocation. A nil handler
	// reports exit code 0 with empty output.
	Handler func(binary string, args []string) (ffmpeg.RunResult, error)

	mu    sync.Mutex
	calls [][]string
}

// Run records the call and delegates to the handler.
func (f *FakeRunner) Run(_ context.Context, binary string, args ...string) (ffmpeg.RunResult, error) {
	call := append([]string{binary}, args...)
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Handler == nil {
		return ffmpeg.RunResult{}, nil
	}
	return f.Handler(binary, args)
}

// Calls returns a copy of every recorded invocation, argv style.
func (f *FakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	for i, call := range f.calls {
		out[i] = append([]string(nil), call...)
	}
	return out
}

// CallCount returns how many invocations were recorded.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// CountCallsWith returns how many recorded invocations contain arg.
func (f *FakeRunner) CountCallsWith(arg string) int {
	count := 0
	for _, call := range f.Calls() {
		for _, a := range call[1:] {
			if a == arg {
				count++
				break
			}
		}
	}
	return count
}

// EncoderListing renders canned `ffmpeg -encoders` output advertising the
// given audio encoder identifiers.
func EncoderListing(ids ...string) []byte {
	var b strings.Builder
	b.WriteString("Encoders:\n")
	b.WriteString(" V..... = Video\n")
	b.WriteString(" A..... = Audio\n")
	b.WriteString(" S..... = Subtitle\n")
	b.WriteString(" ------\n")
	for _, id := range ids {
		fmt.Fprintf(&b, " A....D %-22s %s\n", id, "canned audio encoder")
	}
	return []byte(b.String())
}
