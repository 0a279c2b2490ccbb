package specgen

import (
	"github.com/brailleforge/braillestl/internal/layout"
	"github.com/brailleforge/braillestl/internal/types"
)

func extractCard(req *types.GenerateRequest) *types.GeometrySpec {
	s := req.Settings
	usableWidth, usableHeight := layout.UsableArea(s)
	anchors := layout.Grid(s, usableWidth, usableHeight)
	dotShape, dotParams := dotShapeFor(req)
	markerSub := true // both positive and negative plates recess their markers (spec.md §4.3)

	spec := &types.GeometrySpec{
		Base: types.Base{
			Kind: types.BaseCard, Width: s.CardWidth, Height: s.CardHeight, Thickness: s.CardThickness,
		},
		PlateType: req.PlateType,
	}

	anchorByCell := make(map[[2]int]layout.CellAnchor, len(anchors))
	for _, a := range anchors {
		anchorByCell[[2]int{a.Row, a.Col}] = a
	}

	for row, line := range req.Lines {
		runes := []rune(line)
		hasContent := rowHasContent(line)

		for col, r := range runes {
			anchor := anchorByCell[[2]int{row, col}]
			flags := layout.DotFlags(r)
			for _, d := range layout.FlatDots(anchor, flags, s) {
				spec.Features = append(spec.Features, types.Feature{
					Kind: types.FeatureDot, Center: d.Center, Axis: layout.FlatAxis,
					ForSubtraction: req.PlateType == types.PlateNegative,
					DotShapeKind:   dotShape, Dot: dotParams,
				})
			}
		}

		if s.IndicatorShapes == types.IndicatorsOn && hasContent {
			mp := layout.Markers(s)
			firstAnchor := anchorByCell[[2]int{row, 0}]

			endX := layout.RowEndMarkerX(s, usableWidth)
			spec.Features = append(spec.Features, types.Feature{
				Kind: types.FeatureTriangle,
				Center: types.Point3D{X: endX, Y: firstAnchor.LocalY, Z: s.CardThickness},
				Axis:   layout.FlatAxis,
				Size:   mp.TriangleSize, Height: mp.MarkerHeight,
				ForSubtraction: markerSub,
			})

			startX := layout.RowStartMarkerX(firstAnchor, s)
			spec.Features = append(spec.Features, types.Feature{
				Kind: types.FeatureRect,
				Center: types.Point3D{X: startX, Y: firstAnchor.LocalY, Z: s.CardThickness},
				Axis:   layout.FlatAxis,
				Width:  mp.RectWidth, Depth: mp.RectDepth, Height: mp.MarkerHeight,
				ForSubtraction: markerSub,
			})

			glyph := layout.FirstPrintableUpper(originalLineAt(req, row))
			spec.Features = append(spec.Features, types.Feature{
				Kind: types.FeatureCharacter,
				Center: types.Point3D{X: startX - mp.CharSize, Y: firstAnchor.LocalY, Z: s.CardThickness},
				Axis:   layout.FlatAxis,
				Glyph:  glyph, Size: mp.CharSize, Height: mp.MarkerHeight,
				ForSubtraction: markerSub,
			})
		}
	}

	return spec
}
