package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CapabilitySet holds the encoder identifiers the installed ffmpeg supports.
type CapabilitySet map[string]struct{}

// Has reports whether the encoder identifier is supported.
func (s CapabilitySet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the identifiers in lexicographic order.
func (s CapabilitySet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Prober discovers encoder capabilities of an ffmpeg binary.
//
// Discovery runs the binary at most once per Prober; the parsed set is
// memoized and read-only afterwards, so a populated Prober is safe to
// share across workers.
type Prober struct {
	runner Runner
	binary string

	once sync.Once
	caps CapabilitySet
	err  error
}

// NewProber builds a Prober for the given binary.
func NewProber(runner Runner, binary string) *Prober {
	if binary = strings.TrimSpace(binary); binary == "" {
		binary = "ffmpeg"
	}
	return &Prober{runner: runner, binary: binary}
}

// Capabilities returns the supported encoder set, invoking the binary on
// first use. A failed invocation is terminal: the error is memoized too.
func (p *Prober) Capabilities(ctx context.Context) (CapabilitySet, error) {
	p.once.Do(func() {
		result, err := p.runner.Run(ctx, p.binary, "-hide_banner", "-encoders")
		if err != nil {
			p.err = fmt.Errorf("discover encoders: %w", err)
			return
		}
		if result.ExitCode != 0 {
			p.err = fmt.Errorf("discover encoders: %s exited with code %d: %s",
				p.binary, result.ExitCode, strings.TrimSpace(string(result.Stderr)))
			return
		}
		p.caps = parseEncoderList(result.Stdout)
	})
	return p.caps, p.err
}

// parseEncoderList extracts encoder identifiers from `ffmpeg -encoders`
// output. Matching lines carry a capability-flags token, the identifier,
// and a trailing description; legend lines ("V..... = Video") are excluded
// by their "=" second field.
func parseEncoderList(output []byte) CapabilitySet {
	caps := make(CapabilitySet)
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[1] == "=" {
			continue
		}
		if !isCapabilityFlags(fields[0]) {
			continue
		}
		caps[fields[1]] = struct{}{}
	}
	return caps
}

func isCapabilityFlags(token string) bool {
	if len(token) != 6 {
		return false
	}
	for _, r := range token {
		switch r {
		case 'V', 'A', 'S', 'F', 'X', 'B', 'D', '.':
		default:
			return false
		}
	}
	return true
}
