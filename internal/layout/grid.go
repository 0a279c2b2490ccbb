// Package layout implements the Layout Engine (spec.md §4.2): pure
// math shared by the flat and cylindrical Spec Extractor paths. It
// computes dot-within-cell offsets and cell anchors; it never builds
// a mesh.
package layout

import "github.com/brailleforge/braillestl/internal/types"

// DotOffset is the in-cell (dx, dy) offset of one of the six braille
// dot positions, dot 1 at index 0 through dot 6 at index 5, matching
// the column-major numbering in the GLOSSARY (1,2,3 left column
// top-to-bottom; 4,5,6 right column).
type DotOffset struct {
	DX, DY float64
}

// CellDotOffsets returns the six intra-cell offsets for a braille
// cell given the dot spacing. dx is positive to the right, dy is
// positive downward (row-major reading order); callers that need a
// different vertical convention (e.g. cylinder z increasing upward)
// negate DY themselves.
func CellDotOffsets(dotSpacing float64) [6]DotOffset {
	return [6]DotOffset{
		{DX: 0, DY: 0},                      // dot 1: top-left
		{DX: 0, DY: dotSpacing},              // dot 2: middle-left
		{DX: 0, DY: 2 * dotSpacing},           // dot 3: bottom-left
		{DX: dotSpacing, DY: 0},              // dot 4: top-right
		{DX: dotSpacing, DY: dotSpacing},      // dot 5: middle-right
		{DX: dotSpacing, DY: 2 * dotSpacing},  // dot 6: bottom-right
	}
}

// DotFlags decodes a braille Unicode code point into the six dot
// bits, bit i true iff dot i+1 is raised. Space and any code point
// outside U+2800-U+28FF decode to all-false (a blank cell).
func DotFlags(r rune) [6]bool {
	var flags [6]bool
	if r < 0x2800 || r > 0x28FF {
		return flags
	}
	bits := r - 0x2800
	for i := 0; i < 6; i++ {
		flags[i] = bits&(1<<uint(i)) != 0
	}
	return flags
}

// CellAnchor is the world-space anchor for one grid cell prior to the
// flat/cylindrical projection: column/row index plus the planar
// (localX, localY) position of the cell's center relative to the
// usable area's top-left corner, already centered and adjusted.
type CellAnchor struct {
	Row, Col int
	LocalX, LocalY float64
}

// Grid computes the planar (pre-projection) anchors for every cell of
// gridRows x gridColumns, centered within usableWidth x usableHeight
// and shifted by (xAdjust, yAdjust). LocalY increases downward (row
// 0 is nearest the top edge), matching reading order.
func Grid(s types.CardSettings, usableWidth, usableHeight float64) []CellAnchor {
	anchors := make([]CellAnchor, 0, s.GridRows*s.GridColumns)

	gridWidth := float64(s.GridColumns-1) * s.CellSpacing
	gridHeight := float64(s.GridRows-1) * s.LineSpacing
	originX := (usableWidth-gridWidth)/2 + s.BrailleXAdjust
	originY := (usableHeight-gridHeight)/2 + s.BrailleYAdjust

	for row := 0; row < s.GridRows; row++ {
		for col := 0; col < s.GridColumns; col++ {
			anchors = append(anchors, CellAnchor{
				Row:    row,
				Col:    col,
				LocalX: originX + float64(col)*s.CellSpacing,
				LocalY: originY + float64(row)*s.LineSpacing,
			})
		}
	}
	return anchors
}
