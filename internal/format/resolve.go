package format

import (
	"fmt"

	"scrub/internal/ffmpeg"
)

// Unavailable describes a format none of whose preferred encoders are
// present in the capability set.
type Unavailable struct {
	Spec  Spec
	Tried []string
}

// Resolve maps requested format keys to concrete encoder choices against
// the discovered capability set. An empty key list selects every known
// format. Resolution happens once per run: capability is a property of
// the installed ffmpeg, not of any individual source file.
//
// Unknown keys are an error; known formats without an installed encoder
// are returned as unavailable, not as an error.
func Resolve(keys []string, caps ffmpeg.CapabilitySet) ([]Resolved, []Unavailable, error) {
	var selected []Spec
	if len(keys) == 0 {
		selected = Known()
	} else {
		selected = make([]Spec, 0, len(keys))
		for _, key := range keys {
			spec, ok := Lookup(key)
			if !ok {
				return nil, nil, fmt.Errorf("unknown format %q", key)
			}
			selected = append(selected, spec)
		}
	}

	var available []Resolved
	var unavailable []Unavailable
	for _, spec := range selected {
		encoder := ""
		for _, candidate := range spec.Encoders {
			if caps.Has(candidate) {
				encoder = candidate
				break
			}
		}
		if encoder == "" {
			unavailable = append(unavailable, Unavailable{
				Spec:  spec,
				Tried: append([]string(nil), spec.Encoders...),
			})
			continue
		}
		available = append(available, Resolved{Spec: spec, Encoder: encoder})
	}
	return available, unavailable, nil
}
