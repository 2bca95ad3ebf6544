package pipeline

import (
	"math"
	"testing"
)

func TestParseAbsoluteLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		arg      string
		wantVal  float64
		wantUnit string
		wantOK   bool
	}{
		{"centimeters", "2cm", 2, "cm", true},
		{"decimal inches", "1.5in", 1.5, "in", true},
		{"points with spaces", " 10 pt ", 10, "pt", true},
		{"leading dot", ".5cm", 0.5, "cm", true},
		{"rubber length", `\fill`, 0, "", false},
		{"missing unit", "42", 0, "", false},
		{"negative rejected", "-3cm", 0, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			val, unit, ok := parseAbsoluteLength(tt.arg)
			if ok != tt.wantOK {
				t.Fatalf("parseAbsoluteLength(%q) ok = %v, want %v", tt.arg, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if val != tt.wantVal || unit != tt.wantUnit {
				t.Errorf("parseAbsoluteLength(%q) = %v %q, want %v %q",
					tt.arg, val, unit, tt.wantVal, tt.wantUnit)
			}
		})
	}
}

func TestLengthToCm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		unit  string
		want  float64
	}{
		{"cm identity", 3, "cm", 3},
		{"mm", 105, "mm", 10.5},
		{"inches", 2, "in", 5.08},
		{"points", 72.27, "pt", 2.54},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := lengthToCm(tt.value, tt.unit); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("lengthToCm(%v, %q) = %v, want %v", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestWidthArgToPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  string
		want float64
	}{
		{"half textwidth", `0.5\textwidth`, 50},
		{"quarter linewidth", `0.25\linewidth`, 25},
		{"absolute half page", "10.5cm", 50},
		{"oversized clamps", "42cm", 100},
		{"unrecognized defaults to full", `\weird`, 100},
		{"empty defaults to full", "", 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := widthArgToPercent(tt.arg); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("widthArgToPercent(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}
