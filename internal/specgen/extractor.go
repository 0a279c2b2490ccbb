// Package specgen implements the Spec Extractor (spec.md §4.3): a
// pure function turning a validated types.GenerateRequest into a
// types.GeometrySpec. No booleans are performed here; this package
// only ever produces positions, orientations, and shape parameters.
package specgen

import (
	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/types"
)

// Extract dispatches to the card or cylinder path by req.ShapeType and
// returns layout_overflow (spec.md §4.3, §8 V4) without emitting a
// partial spec if any line overruns the configured grid.
func Extract(req *types.GenerateRequest) (*types.GeometrySpec, *errors.Error) {
	if err := checkOverflow(req); err != nil {
		return nil, err
	}
	switch req.ShapeType {
	case types.ShapeCard:
		return extractCard(req), nil
	case types.ShapeCylinder:
		return extractCylinder(req), nil
	default:
		return nil, errors.New(errors.BadSpec, "unknown shapeType reached spec extractor", nil)
	}
}

func checkOverflow(req *types.GenerateRequest) *errors.Error {
	s := req.Settings
	if len(req.Lines) > s.GridRows {
		return errors.LayoutOverflowAt(s.GridRows, 0)
	}
	for row, line := range req.Lines {
		cols := len([]rune(line))
		if cols > s.GridColumns {
			return errors.LayoutOverflowAt(row, s.GridColumns)
		}
	}
	return nil
}

func dotShapeFor(req *types.GenerateRequest) (types.DotShapeKind, types.DotParams) {
	s := req.Settings
	if req.PlateType == types.PlatePositive {
		switch s.DotShape {
		case types.DotCone:
			return types.DotShapeCone, types.DotParams{
				BaseDiameter: s.EmbossDotBaseDiameter,
				Height:       s.EmbossDotHeight,
				FlatHat:      s.EmbossDotFlatHat,
			}
		default:
			return types.DotShapeRounded, types.DotParams{
				BaseDiameter: s.RoundedDotBaseDiameter,
				Height:       s.RoundedDotBaseHeight,
				DomeDiameter: s.RoundedDotDomeDiameter,
				DomeHeight:   s.RoundedDotDomeHeight,
			}
		}
	}
	switch s.RecessShape {
	case types.RecessCone:
		return types.DotShapeCone, types.DotParams{
			BaseDiameter: s.ConeCounterDotBaseDiameter,
			Height:       s.ConeCounterDotHeight,
			FlatHat:      s.ConeCounterDotFlatHat,
		}
	case types.RecessHemisphere:
		return types.DotShapeHemisphere, types.DotParams{
			OpeningDiameter: s.BowlCounterDotBaseDiameter,
		}
	default:
		return types.DotShapeBowl, types.DotParams{
			OpeningDiameter: s.BowlCounterDotBaseDiameter,
			Depth:           s.CounterDotDepth,
		}
	}
}

func rowHasContent(line string) bool {
	for _, r := range line {
		if r != ' ' {
			return true
		}
	}
	return false
}

func originalLineAt(req *types.GenerateRequest, row int) string {
	if row < len(req.OriginalLines) {
		return req.OriginalLines[row]
	}
	return ""
}
