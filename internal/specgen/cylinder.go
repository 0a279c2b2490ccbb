package specgen

import (
	"math"

	"github.com/brailleforge/braillestl/internal/layout"
	"github.com/brailleforge/braillestl/internal/types"
)

func extractCylinder(req *types.GenerateRequest) *types.GeometrySpec {
	s := req.Settings
	radius := s.CylinderDiameter / 2
	usableHeight := s.CylinderHeight - 2*s.LineSpacing
	zCenter := s.CylinderHeight / 2

	anchors := layout.CylinderGrid(s, usableHeight)
	dotShape, dotParams := dotShapeFor(req)
	markerSub := true

	spec := &types.GeometrySpec{
		Base: types.Base{
			Kind: types.BaseCylinder, Diameter: s.CylinderDiameter, CylHeight: s.CylinderHeight,
			WallThickness: radius - s.CylinderPolygonalCutoutRadius, PolygonSides: s.CylinderPolygonalCutoutSides,
			SeamOffsetDeg: s.SeamOffsetDeg,
		},
		PlateType: req.PlateType,
	}

	anchorByCell := make(map[[2]int]layout.CylinderAnchor, len(anchors))
	for _, a := range anchors {
		anchorByCell[[2]int{a.Row, a.Col}] = a
	}

	mirrorIfNegative := func(z float64) float64 {
		if req.PlateType == types.PlateNegative {
			return layout.MirrorForCounter(z, zCenter)
		}
		return z
	}

	for row, line := range req.Lines {
		runes := []rune(line)
		hasContent := rowHasContent(line)

		for col, r := range runes {
			anchor := anchorByCell[[2]int{row, col}]
			flags := layout.DotFlags(r)
			for _, d := range layout.CylinderDots(anchor, flags, s) {
				center, axis := layout.Project(radius, theta(d.Center, radius), mirrorIfNegative(d.Center.Z))
				spec.Features = append(spec.Features, types.Feature{
					Kind: types.FeatureDot, Center: center, Axis: axis,
					ForSubtraction: req.PlateType == types.PlateNegative,
					DotShapeKind:   dotShape, Dot: dotParams,
				})
			}
		}

		if s.IndicatorShapes == types.IndicatorsOn && hasContent {
			mp := layout.Markers(s)
			firstAnchor := anchorByCell[[2]int{row, 0}]
			lastCol := len(runes) - 1
			if lastCol < 0 {
				lastCol = 0
			}
			lastAnchor := anchorByCell[[2]int{row, lastCol}]

			endTheta := lastAnchor.Theta + s.CellSpacing/radius
			endCenter, endAxis := layout.Project(radius, endTheta, mirrorIfNegative(lastAnchor.Z))
			spec.Features = append(spec.Features, types.Feature{
				Kind: types.FeatureTriangle, Center: endCenter, Axis: endAxis,
				Size: mp.TriangleSize, Height: mp.MarkerHeight, ForSubtraction: markerSub,
			})

			startTheta := firstAnchor.Theta - 2*s.CellSpacing/radius
			startCenter, startAxis := layout.Project(radius, startTheta, mirrorIfNegative(firstAnchor.Z))
			spec.Features = append(spec.Features, types.Feature{
				Kind: types.FeatureRect, Center: startCenter, Axis: startAxis,
				Width: mp.RectWidth, Depth: mp.RectDepth, Height: mp.MarkerHeight, ForSubtraction: markerSub,
			})

			glyph := layout.FirstPrintableUpper(originalLineAt(req, row))
			charTheta := startTheta - mp.CharSize/radius
			charCenter, charAxis := layout.Project(radius, charTheta, mirrorIfNegative(firstAnchor.Z))
			spec.Features = append(spec.Features, types.Feature{
				Kind: types.FeatureCharacter, Center: charCenter, Axis: charAxis,
				Glyph: glyph, Size: mp.CharSize, Height: mp.MarkerHeight, ForSubtraction: markerSub,
			})
		}
	}

	return spec
}

// theta recovers the polar angle of a projected dot center so the
// counter-plate mirror can re-project it at the mirrored z without
// threading (theta, z) pairs through CylinderDots' public signature.
func theta(center types.Point3D, radius float64) float64 {
	if radius == 0 {
		return 0
	}
	return math.Atan2(center.Y, center.X)
}
