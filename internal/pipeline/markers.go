package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Inline markers and protected blocks use Unicode Private Use Area
// characters. These are guaranteed to not conflict with any standard
// characters and pass through every rewrite stage unchanged; a final pass
// converts them to HTML after all stages have run.
const (
	errStartPlaceholder  = "\uE000" // inline error marker start
	errEndPlaceholder    = "\uE001" // inline error marker end
	protStartPlaceholder = "\uE002" // protected block slot start
	protEndPlaceholder   = "\uE003" // protected block slot end
)

var errMarkerPattern = regexp.MustCompile(errStartPlaceholder + `([^` + errEndPlaceholder + `]*)` + errEndPlaceholder)

// ErrorMarker wraps message text in inline error placeholders. The message
// survives every stage verbatim and is rendered as a visually distinct span
// by FinalizeMarkers.
func ErrorMarker(message string) string {
	return errStartPlaceholder + message + errEndPlaceholder
}

// FinalizeMarkers converts inline error placeholders to styled spans.
// Called once by the orchestrator after the last stage.
func FinalizeMarkers(body string) string {
	return errMarkerPattern.ReplaceAllStringFunc(body, func(m string) string {
		msg := strings.TrimSuffix(strings.TrimPrefix(m, errStartPlaceholder), errEndPlaceholder)
		return `<span class="tex-error">` + html.EscapeString(msg) + `</span>`
	})
}

// ProtectedStore holds HTML fragments that must not be touched by later
// rewrite stages (e.g. highlighted code listings). Add returns a placeholder
// token; Restore substitutes the fragments back after all stages have run.
type ProtectedStore struct {
	blocks []string
}

// Add stores an HTML fragment and returns its placeholder token.
func (s *ProtectedStore) Add(htmlFragment string) string {
	s.blocks = append(s.blocks, htmlFragment)
	return fmt.Sprintf("%s%d%s", protStartPlaceholder, len(s.blocks)-1, protEndPlaceholder)
}

var protPattern = regexp.MustCompile(protStartPlaceholder + `(\d+)` + protEndPlaceholder)

// Restore replaces placeholder tokens with their stored fragments.
// Unknown indices are left in place; they indicate a stage corrupted a token.
func (s *ProtectedStore) Restore(body string) string {
	return protPattern.ReplaceAllStringFunc(body, func(m string) string {
		idx, err := strconv.Atoi(protPattern.FindStringSubmatch(m)[1])
		if err != nil || idx < 0 || idx >= len(s.blocks) {
			return m
		}
		return s.blocks[idx]
	})
}
