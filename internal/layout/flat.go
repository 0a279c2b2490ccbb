package layout

import "github.com/brailleforge/braillestl/internal/types"

// FlatDotPosition is a single dot feature position on a card's top
// surface, already placed at z = cardThickness per spec.md §4.2.
type FlatDotPosition struct {
	Row, Col, DotIndex int // DotIndex is 0-5 (dot 1-6)
	Center             types.Point3D
}

// FlatDots computes the world position of every raised dot implied by
// a cell's anchor and dot-in-cell offsets. The outward axis for every
// flat feature is always +Z (spec.md §4.2).
func FlatDots(anchor CellAnchor, flags [6]bool, s types.CardSettings) []FlatDotPosition {
	offsets := CellDotOffsets(s.DotSpacing)
	var out []FlatDotPosition
	for i, set := range flags {
		if !set {
			continue
		}
		out = append(out, FlatDotPosition{
			Row: anchor.Row, Col: anchor.Col, DotIndex: i,
			Center: types.Point3D{
				X: anchor.LocalX + offsets[i].DX,
				Y: anchor.LocalY + offsets[i].DY,
				Z: s.CardThickness,
			},
		})
	}
	return out
}

// FlatAxis is the constant outward normal for every card feature.
var FlatAxis = types.Point3D{X: 0, Y: 0, Z: 1}

// UsableArea returns the card's usable footprint (full plate minus a
// fixed margin) used to center the grid.
func UsableArea(s types.CardSettings) (width, height float64) {
	const margin = 4.0 // mm, fixed border kept clear of features
	return s.CardWidth - 2*margin, s.CardHeight - 2*margin
}

// RowEndMarkerX returns the X position of the triangle marker at the
// end of a row of content: one cell-spacing short of usableWidth, the
// same for every row regardless of how many columns it uses.
func RowEndMarkerX(s types.CardSettings, usableWidth float64) float64 {
	return usableWidth - s.CellSpacing
}

// RowStartMarkerX returns the X position of the rect/character marker
// at the start of a row, two cells to the left of the first dot
// column, matching spec.md §4.2's "positioned two-cells outside the
// first dot column".
func RowStartMarkerX(anchor CellAnchor, s types.CardSettings) float64 {
	return anchor.LocalX - 2*s.CellSpacing
}
