package catalog

import (
	"math"
	"strconv"
)

// maxPrecision bounds the number of decimals in rendered values.
const maxPrecision = 3

// FormatKind selects a rendering rule for metric values.
type FormatKind int

const (
	// FormatDefault renders the bare number.
	FormatDefault FormatKind = iota
	// FormatSuffix appends a unit after the number.
	FormatSuffix
)

// Format is a serializable rendering rule. Modeling the rule as data rather
// than a closure keeps metric definitions comparable and testable.
type Format struct {
	Kind FormatKind
	Unit string
}

// DefaultFormat renders the bare number.
func DefaultFormat() Format {
	return Format{Kind: FormatDefault}
}

// SuffixFormat renders the number followed by unit.
func SuffixFormat(unit string) Format {
	return Format{Kind: FormatSuffix, Unit: unit}
}

// Render returns the display label for v: at most three decimals, trailing
// zeros trimmed, integers without a decimal point.
func (f Format) Render(v float64) string {
	s := formatNumber(v)
	if f.Kind == FormatSuffix && f.Unit != "" {
		return s + f.Unit
	}
	return s
}

// RenderDelta renders a signed difference, keeping an explicit plus sign for
// improvements.
func (f Format) RenderDelta(v float64) string {
	s := f.Render(v)
	if v >= 0 {
		return "+" + s
	}
	return s
}

func formatNumber(v float64) string {
	pow := math.Pow10(maxPrecision)
	r := math.Round(v*pow) / pow
	if r == 0 {
		r = 0 // normalize negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
