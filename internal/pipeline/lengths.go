package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Reference page width for converting absolute lengths to percentages:
// A4 portrait is 21 cm wide.
const referencePageWidthCm = 21.0

// lengthPattern matches a decimal value followed by an absolute unit.
var lengthPattern = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+)\s*(cm|mm|in|pt|px)\s*$`)

// fractionOfTextWidthPattern matches fractional widths such as
// "0.5\textwidth" or "0.5\linewidth".
var fractionOfTextWidthPattern = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+)\s*\\(?:textwidth|linewidth)\s*$`)

// parseAbsoluteLength parses a length with an absolute unit. The returned
// value keeps the unit as written; CSS understands all recognized units.
func parseAbsoluteLength(arg string) (value float64, unit string, ok bool) {
	m := lengthPattern.FindStringSubmatch(arg)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return v, m[2], true
}

// lengthToCm converts an absolute length to centimeters.
func lengthToCm(value float64, unit string) float64 {
	switch unit {
	case "cm":
		return value
	case "mm":
		return value / 10
	case "in":
		return value * 2.54
	case "pt":
		return value * 2.54 / 72.27
	case "px":
		return value * 2.54 / 96
	}
	return value
}

// widthArgToPercent converts a minipage width argument to a CSS percentage.
// Fractional \textwidth arguments become that fraction of the page; absolute
// lengths are converted against the reference page width; anything
// unrecognized defaults to the full width.
func widthArgToPercent(arg string) float64 {
	arg = strings.TrimSpace(arg)
	if m := fractionOfTextWidthPattern.FindStringSubmatch(arg); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return clampPercent(f * 100)
		}
	}
	if v, unit, ok := parseAbsoluteLength(arg); ok {
		return clampPercent(lengthToCm(v, unit) / referencePageWidthCm * 100)
	}
	return 100
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
