package layout

import (
	"math"

	"github.com/brailleforge/braillestl/internal/types"
)

// CylinderDotPosition is a single dot feature position on a cylinder
// wall, with its outward radial axis.
type CylinderDotPosition struct {
	Row, Col, DotIndex int
	Center             types.Point3D
	Axis               types.Point3D
}

// CylinderAnchor is the (theta, z) polar position of a cell's center
// on the cylinder wall, prior to per-dot offsets.
type CylinderAnchor struct {
	Row, Col int
	Theta    float64 // radians
	Z        float64 // mm, 0 at cylinder bottom
}

// CylinderGrid computes the (theta, z) anchor of every cell. Theta
// wraps at 2*pi; column 0 sits at theta0+seamOffset and increases
// with column index. Z is centered vertically within the usable
// cylinder height and decreases with row index so row 0 is nearest
// the top, matching flat layout's reading order.
func CylinderGrid(s types.CardSettings, usableHeight float64) []CylinderAnchor {
	radius := s.CylinderDiameter / 2
	seam := s.SeamOffsetDeg * math.Pi / 180

	gridHeight := float64(s.GridRows-1) * s.LineSpacing
	zTop := (usableHeight+gridHeight)/2 + s.BrailleYAdjust

	anchors := make([]CylinderAnchor, 0, s.GridRows*s.GridColumns)
	for row := 0; row < s.GridRows; row++ {
		z := zTop - float64(row)*s.LineSpacing
		for col := 0; col < s.GridColumns; col++ {
			theta := seam + float64(col)*(s.CellSpacing/radius) + s.BrailleXAdjust/radius
			anchors = append(anchors, CylinderAnchor{Row: row, Col: col, Theta: wrap2Pi(theta), Z: z})
		}
	}
	return anchors
}

func wrap2Pi(theta float64) float64 {
	const twoPi = 2 * math.Pi
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}

// Project maps a (theta, z) polar anchor to a world position and
// outward radial axis on a cylinder of the given radius (spec.md
// §4.2: "(R*cos theta, R*sin theta, z)").
func Project(radius float64, theta, z float64) (center, axis types.Point3D) {
	c, si := math.Cos(theta), math.Sin(theta)
	return types.Point3D{X: radius * c, Y: radius * si, Z: z}, types.Point3D{X: c, Y: si, Z: 0}
}

// CylinderDots computes the world position and outward axis of every
// raised dot implied by a cell anchor. Per-dot angular/vertical
// offsets are derived from the flat intra-cell offsets: DX maps to an
// additional angle (dx/radius), DY maps to an additional -z (dot 2
// and 3 sit below dot 1 on the wall, same as "downward" on a card).
func CylinderDots(anchor CylinderAnchor, flags [6]bool, s types.CardSettings) []CylinderDotPosition {
	radius := s.CylinderDiameter / 2
	offsets := CellDotOffsets(s.DotSpacing)
	var out []CylinderDotPosition
	for i, set := range flags {
		if !set {
			continue
		}
		theta := wrap2Pi(anchor.Theta + offsets[i].DX/radius)
		z := anchor.Z - offsets[i].DY
		center, axis := Project(radius, theta, z)
		out = append(out, CylinderDotPosition{Row: anchor.Row, Col: anchor.Col, DotIndex: i, Center: center, Axis: axis})
	}
	return out
}

// MirrorForCounter mirrors a z coordinate across the cylinder's
// vertical center (the "XY plane" of the cylinder, taken at mid
// height) so that a counter plate's recesses register with the
// embossing plate's raised dots when the two plates are fitted
// together back to back. See DESIGN.md's Open Question decision.
func MirrorForCounter(z, zCenter float64) float64 {
	return 2*zCenter - z
}
