package tex2html

import (
	"testing"
	"time"
)

func TestDiagnosticLogSequentialIDs(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	log := newDiagnosticLog(func() time.Time { return fixed })

	log.add(SeverityInfo, "first", "main.tex")
	log.add(SeverityWarning, "second", "")

	if len(log.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(log.entries))
	}
	for i, entry := range log.entries {
		if entry.ID != i+1 {
			t.Errorf("entry %d ID = %d, want %d", i, entry.ID, i+1)
		}
		if !entry.Timestamp.Equal(fixed) {
			t.Errorf("entry %d timestamp = %v, want %v", i, entry.Timestamp, fixed)
		}
	}
	if log.entries[1].Message != "second" {
		t.Errorf("entries out of order: %+v", log.entries)
	}
}

func TestDiagnosticLogNilClock(t *testing.T) {
	t.Parallel()

	log := newDiagnosticLog(nil)
	log.add(SeverityInfo, "msg", "")
	if log.entries[0].Timestamp.IsZero() {
		t.Errorf("nil clock should fall back to the wall clock")
	}
}

func TestCompileResultHasFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		diag []Diagnostic
		want bool
	}{
		{"empty", nil, false},
		{"info only", []Diagnostic{{Severity: SeverityInfo}}, false},
		{"warning only", []Diagnostic{{Severity: SeverityWarning}}, false},
		{"error present", []Diagnostic{{Severity: SeverityInfo}, {Severity: SeverityError}}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &CompileResult{Diagnostics: tt.diag}
			if got := r.HasFatal(); got != tt.want {
				t.Errorf("HasFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}
