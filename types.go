package tex2html

import "time"

// Severity levels for compile diagnostics.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Diagnostic is one structured log entry about the overall compile. It is a
// separate channel from the inline fallback markers embedded in the rendered
// body.
type Diagnostic struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	File      string    `json:"file,omitempty"`
	Line      int       `json:"line,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CompileResult is the output of one compile pass. A fresh result is
// produced per pass; nothing is carried over from earlier passes.
type CompileResult struct {
	// HTML is the rendered document. Empty only on the fatal no-entry path.
	HTML string `json:"html"`

	// Diagnostics is the append-only, ordered log for this pass.
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// HasFatal reports whether the pass ended on the fatal no-entry path.
func (r *CompileResult) HasFatal() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// diagnosticLog accumulates diagnostics for one pass, assigning sequential
// IDs and timestamps.
type diagnosticLog struct {
	entries []Diagnostic
	now     func() time.Time
}

func newDiagnosticLog(now func() time.Time) *diagnosticLog {
	if now == nil {
		now = time.Now
	}
	return &diagnosticLog{now: now}
}

func (l *diagnosticLog) add(severity, message, file string) {
	l.entries = append(l.entries, Diagnostic{
		ID:        len(l.entries) + 1,
		Severity:  severity,
		Message:   message,
		File:      file,
		Timestamp: l.now(),
	})
}
