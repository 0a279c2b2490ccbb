package layout

import "github.com/brailleforge/braillestl/internal/types"

// MarkerParams holds the fixed marker geometry spec.md §4.2 derives
// from cellSpacing/dotSpacing: "Marker geometry parameters are fixed
// functions of cellSpacing and dotSpacing."
type MarkerParams struct {
	TriangleSize float64
	RectWidth    float64
	RectDepth    float64
	CharSize     float64
	MarkerHeight float64
}

// Markers computes the fixed marker dimensions for a given grid
// spacing. The triangle size and rect width scale with cellSpacing so
// they stay legible relative to the dot grid; the rect depth and
// CharSize scale with dotSpacing.
func Markers(s types.CardSettings) MarkerParams {
	return MarkerParams{
		TriangleSize: s.CellSpacing * 0.6,
		RectWidth:    s.CellSpacing * 0.5,
		RectDepth:    s.DotSpacing * 2.2,
		CharSize:     s.DotSpacing * 2.5,
		MarkerHeight: 0.5,
	}
}

// FirstPrintableUpper returns the first printable ASCII rune of s,
// uppercased, or 'X' as a fallback. Matches spec.md §4.2's row-
// character rule, including the "no originalLines" boundary case.
func FirstPrintableUpper(s string) string {
	for _, r := range s {
		if r > ' ' && r < 0x7F {
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			return string(r)
		}
	}
	return "X"
}
