package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// headingPattern matches the three structural heading levels, starred or
// not, with their title argument.
var headingPattern = regexp.MustCompile(`\\(chapter|section|subsection)(\*?)\{([^}]*)\}`)

// SectionCounters holds the numbering state for the three heading levels.
// A value is threaded through one transform pass; nothing is process-wide,
// so concurrent compiles never interfere.
type SectionCounters struct {
	Chapter    uint
	Section    uint
	Subsection uint
}

// HeadingTransformer converts structural headings into numbered block
// elements. Counters mutate strictly in textual order; starred variants
// mutate nothing and carry no label.
type HeadingTransformer struct {
	counters   SectionCounters
	hasChapter bool
}

// Transform rewrites every heading directive in document order.
func (t *HeadingTransformer) Transform(ctx context.Context, body string) string {
	if ctx.Err() != nil {
		return body
	}
	return headingPattern.ReplaceAllStringFunc(body, func(directive string) string {
		m := headingPattern.FindStringSubmatch(directive)
		level, starred, title := m[1], m[2] == "*", strings.TrimSpace(m[3])
		label := t.advance(level, starred)
		return renderHeading(level, label, title)
	})
}

// advance applies the counter transition for one heading and returns its
// label (empty for starred variants).
func (t *HeadingTransformer) advance(level string, starred bool) string {
	if starred {
		return ""
	}
	c := &t.counters
	switch level {
	case "chapter":
		c.Chapter++
		c.Section = 0
		c.Subsection = 0
		t.hasChapter = true
		return fmt.Sprintf("%d", c.Chapter)
	case "section":
		c.Section++
		c.Subsection = 0
		if t.hasChapter {
			return fmt.Sprintf("%d.%d", c.Chapter, c.Section)
		}
		return fmt.Sprintf("%d", c.Section)
	case "subsection":
		c.Subsection++
		if t.hasChapter {
			return fmt.Sprintf("%d.%d.%d", c.Chapter, c.Section, c.Subsection)
		}
		return fmt.Sprintf("%d.%d", c.Section, c.Subsection)
	}
	return ""
}

// Counters returns the counter state after the last Transform call.
func (t *HeadingTransformer) Counters() SectionCounters {
	return t.counters
}

func renderHeading(level, label, title string) string {
	text := title
	if label != "" {
		text = label + " " + title
	}
	switch level {
	case "chapter":
		return `<h1 class="tex-chapter">` + text + `</h1>`
	case "section":
		return `<h2 class="tex-section">` + text + `</h2>`
	default:
		return `<h3 class="tex-subsection">` + text + `</h3>`
	}
}
