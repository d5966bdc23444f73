package pipeline

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// deriveLabel produces a human-readable run label from the source
// directory name, for the manifest and run history.
func deriveLabel(sourceDir string) string {
	if sourceDir == "" {
		return "Untitled Batch"
	}
	base := filepath.Base(filepath.Clean(sourceDir))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	label := strings.TrimSpace(cleaned.String())
	if label == "" {
		return "Untitled Batch"
	}
	return cases.Title(language.Und).String(label)
}
