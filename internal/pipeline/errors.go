package pipeline

import "errors"

var (
	// ErrLocked reports a concurrent run already writing to the output
	// directory.
	ErrLocked = errors.New("output directory is locked by another run")
	// ErrNoFormats reports that none of the requested formats has an
	// installed encoder.
	ErrNoFormats = errors.New("no target formats available")
)
