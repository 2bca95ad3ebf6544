package pipeline

import (
	"context"
	"strings"
	"testing"
)

func transformHeadings(t *testing.T, body string) string {
	t.Helper()
	tr := &HeadingTransformer{}
	return tr.Transform(context.Background(), body)
}

func TestHeadingNumberingConsecutiveChapters(t *testing.T) {
	t.Parallel()

	got := transformHeadings(t, `\chapter{A}\chapter{B}\chapter{C}`)
	for _, want := range []string{
		`<h1 class="tex-chapter">1 A</h1>`,
		`<h1 class="tex-chapter">2 B</h1>`,
		`<h1 class="tex-chapter">3 C</h1>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestHeadingNumberingSectionUnderChapter(t *testing.T) {
	t.Parallel()

	got := transformHeadings(t, `\chapter{A}\chapter{B}\section{X}\chapter{C}`)
	if !strings.Contains(got, `<h2 class="tex-section">2.1 X</h2>`) {
		t.Errorf("section after second chapter should be 2.1:\n%s", got)
	}
	if !strings.Contains(got, `<h1 class="tex-chapter">3 C</h1>`) {
		t.Errorf("third chapter should still be 3:\n%s", got)
	}
}

func TestHeadingStarredVariantsDoNotAdvance(t *testing.T) {
	t.Parallel()

	got := transformHeadings(t, `\chapter{A}\chapter*{Aside}\chapter{B}`)
	if !strings.Contains(got, `<h1 class="tex-chapter">Aside</h1>`) {
		t.Errorf("starred chapter should carry no label:\n%s", got)
	}
	if !strings.Contains(got, `<h1 class="tex-chapter">2 B</h1>`) {
		t.Errorf("starred chapter must not advance the counter:\n%s", got)
	}
}

func TestHeadingLabelsWithoutChapter(t *testing.T) {
	t.Parallel()

	got := transformHeadings(t, `\section{X}\subsection{Y}\section{Z}`)
	tests := []string{
		`<h2 class="tex-section">1 X</h2>`,
		`<h3 class="tex-subsection">1.1 Y</h3>`,
		`<h2 class="tex-section">2 Z</h2>`,
	}
	for _, want := range tests {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestHeadingChapterResetsLowerCounters(t *testing.T) {
	t.Parallel()

	got := transformHeadings(t, `\chapter{A}\section{S}\subsection{T}\chapter{B}\section{U}`)
	if !strings.Contains(got, `<h3 class="tex-subsection">1.1.1 T</h3>`) {
		t.Errorf("subsection under first chapter should be 1.1.1:\n%s", got)
	}
	if !strings.Contains(got, `<h2 class="tex-section">2.1 U</h2>`) {
		t.Errorf("section counter should reset on new chapter:\n%s", got)
	}
}

func TestHeadingCountersState(t *testing.T) {
	t.Parallel()

	tr := &HeadingTransformer{}
	tr.Transform(context.Background(), `\chapter{A}\section{S}\section{T}\subsection{U}`)

	want := SectionCounters{Chapter: 1, Section: 2, Subsection: 1}
	if got := tr.Counters(); got != want {
		t.Errorf("Counters() = %+v, want %+v", got, want)
	}
}
