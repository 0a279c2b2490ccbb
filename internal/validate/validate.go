// Package validate implements the Request Validator (spec.md §4.1): a
// pure function turning an untyped JSON-shaped payload into a
// types.GenerateRequest or a typed *errors.Error.
package validate

import (
	"fmt"
	"math"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/types"
)

const maxTotalBrailleChars = 10000
const maxOriginalLineLen = 200

// Raw is the untyped request payload accepted from any transport
// (the HTTP binding described in spec.md §6.1, a YAML job file, or a
// test literal). Fields are deliberately loosely typed so the
// validator can apply its own coercion/clamping rules rather than
// trusting the caller's types.
type Raw struct {
	ShapeType       string
	PlateType       string
	Lines           []string
	OriginalLines   []string
	HasOriginalLines bool
	Settings        map[string]float64
	StringSettings  map[string]string
	IntSettings     map[string]int
}

// Validate checks shape/plate enums, braille Unicode, line-length
// limits, and every numeric setting's legal range, returning a fully
// populated types.GenerateRequest or the first *errors.Error found.
func Validate(raw Raw) (*types.GenerateRequest, *errors.Error) {
	shape, err := validateShapeType(raw.ShapeType)
	if err != nil {
		return nil, err
	}
	plate, err := validatePlateType(raw.PlateType)
	if err != nil {
		return nil, err
	}
	if err := validateLines(raw.Lines); err != nil {
		return nil, err
	}
	if raw.HasOriginalLines {
		if err := validateOriginalLines(raw.OriginalLines, raw.Lines); err != nil {
			return nil, err
		}
	}

	settings, err := validateSettings(raw.Settings, raw.IntSettings, raw.StringSettings)
	if err != nil {
		return nil, err
	}

	req := &types.GenerateRequest{
		ShapeType: shape,
		PlateType: plate,
		Lines:     raw.Lines,
		Settings:  settings,
	}
	if raw.HasOriginalLines {
		req.OriginalLines = raw.OriginalLines
	}
	return req, nil
}

func validateShapeType(s string) (types.ShapeType, *errors.Error) {
	switch types.ShapeType(s) {
	case types.ShapeCard, types.ShapeCylinder:
		return types.ShapeType(s), nil
	default:
		return "", errors.Validation("shapeType", "wrong_type", fmt.Sprintf("unknown shapeType %q", s))
	}
}

func validatePlateType(s string) (types.PlateType, *errors.Error) {
	switch types.PlateType(s) {
	case types.PlatePositive, types.PlateNegative:
		return types.PlateType(s), nil
	default:
		return "", errors.Validation("plateType", "wrong_type", fmt.Sprintf("unknown plateType %q", s))
	}
}

// IsBrailleOrSpace reports whether r is a valid braille-cell code
// point (U+2800-U+28FF) or the ASCII space used for a blank cell.
func IsBrailleOrSpace(r rune) bool {
	return r == ' ' || (r >= 0x2800 && r <= 0x28FF)
}

func validateLines(lines []string) *errors.Error {
	if len(lines) == 0 {
		return errors.Validation("lines", "missing", "lines must be non-empty")
	}
	total := 0
	nonEmpty := false
	for i, line := range lines {
		for _, r := range line {
			total++
			if !IsBrailleOrSpace(r) {
				return errors.Validation("lines", "not_braille", fmt.Sprintf("line %d contains non-braille rune %U", i, r))
			}
			if r != ' ' {
				nonEmpty = true
			}
		}
	}
	if total > maxTotalBrailleChars {
		return errors.Validation("lines", "too_long", "total character count exceeds 10000")
	}
	if !nonEmpty {
		return errors.Validation("lines", "missing", "at least one non-empty line is required")
	}
	return nil
}

func validateOriginalLines(original, lines []string) *errors.Error {
	if len(original) != len(lines) {
		return errors.Validation("originalLines", "inconsistent", "originalLines must have the same length as lines")
	}
	for i, s := range original {
		if len([]rune(s)) > maxOriginalLineLen {
			return errors.Validation("originalLines", "too_long", fmt.Sprintf("originalLines[%d] exceeds 200 code points", i))
		}
	}
	return nil
}

type numericRange struct {
	min, max float64
}

var settingRanges = map[string]numericRange{
	"cellSpacing":                   {0.1, 50},
	"lineSpacing":                   {0.1, 50},
	"dotSpacing":                    {0.1, 20},
	"brailleXAdjust":                {-50, 50},
	"brailleYAdjust":                {-50, 50},
	"roundedDotBaseDiameter":        {0.1, 10},
	"roundedDotBaseHeight":          {0.05, 5},
	"roundedDotDomeDiameter":        {0.1, 10},
	"roundedDotDomeHeight":          {0.05, 5},
	"embossDotBaseDiameter":         {0.1, 10},
	"embossDotHeight":               {0.05, 5},
	"embossDotFlatHat":              {0, 10},
	"bowlCounterDotBaseDiameter":    {0.1, 10},
	"counterDotDepth":               {0, 5},
	"coneCounterDotBaseDiameter":    {0.1, 10},
	"coneCounterDotHeight":          {0.05, 5},
	"coneCounterDotFlatHat":         {0, 10},
	"cylinderDiameter":              {5, 500},
	"cylinderHeight":                {1, 1000},
	"cylinderPolygonalCutoutRadius": {0.1, 250},
	"seamOffsetDeg":                 {-360, 360},
	"cardWidth":                     {10, 500},
	"cardHeight":                    {10, 500},
	"cardThickness":                 {0.5, 10},
}

var intRanges = map[string][2]int{
	"gridColumns":                   {1, 200},
	"gridRows":                      {1, 200},
	"cylinderPolygonalCutoutSides":  {3, 128},
}

// knownStringSettings is the enum-valued string settings
// validateSettings recognizes; anything else is an unknown key.
var knownStringSettings = map[string]bool{
	"dotShape":        true,
	"recessShape":     true,
	"indicatorShapes": true,
}

// validateSettings recognizes every option named in settingRanges,
// intRanges, and knownStringSettings and rejects anything else, per
// spec.md §9's "recognize every option; reject unknown keys" design
// note — a typo'd or obsolete setting key fails the request instead
// of being silently ignored.
func validateSettings(numeric map[string]float64, ints map[string]int, strs map[string]string) (types.CardSettings, *errors.Error) {
	out := types.DefaultCardSettings()

	for field, v := range numeric {
		rng, ok := settingRanges[field]
		if !ok {
			return out, errors.Validation(field, "wrong_type", fmt.Sprintf("unrecognized setting %q", field))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return out, errors.Validation(field, "wrong_type", fmt.Sprintf("%s must be a finite number", field))
		}
		if v < rng.min || v > rng.max {
			return out, errors.Validation(field, "out_of_range", fmt.Sprintf("%s=%v out of range [%v,%v]", field, v, rng.min, rng.max))
		}
		setNumericField(&out, field, v)
	}

	for field, v := range ints {
		rng, ok := intRanges[field]
		if !ok {
			return out, errors.Validation(field, "wrong_type", fmt.Sprintf("unrecognized setting %q", field))
		}
		if v < rng[0] || v > rng[1] {
			return out, errors.Validation(field, "out_of_range", fmt.Sprintf("%s=%d out of range [%d,%d]", field, v, rng[0], rng[1]))
		}
		setIntField(&out, field, v)
	}

	for field := range strs {
		if !knownStringSettings[field] {
			return out, errors.Validation(field, "wrong_type", fmt.Sprintf("unrecognized setting %q", field))
		}
	}

	if v, ok := strs["dotShape"]; ok {
		switch types.DotShape(v) {
		case types.DotRounded, types.DotCone:
			out.DotShape = types.DotShape(v)
		default:
			return out, errors.Validation("dotShape", "wrong_type", fmt.Sprintf("unknown dotShape %q", v))
		}
	}
	if v, ok := strs["recessShape"]; ok {
		switch types.RecessShape(v) {
		case types.RecessHemisphere, types.RecessBowl, types.RecessCone:
			out.RecessShape = types.RecessShape(v)
		default:
			return out, errors.Validation("recessShape", "wrong_type", fmt.Sprintf("unknown recessShape %q", v))
		}
	}
	if v, ok := strs["indicatorShapes"]; ok {
		switch types.IndicatorShapes(v) {
		case types.IndicatorsOn, types.IndicatorsOff:
			out.IndicatorShapes = types.IndicatorShapes(v)
		default:
			return out, errors.Validation("indicatorShapes", "wrong_type", fmt.Sprintf("unknown indicatorShapes %q", v))
		}
	}

	if out.CylinderPolygonalCutoutRadius >= out.CylinderDiameter/2 {
		return out, errors.Validation("cylinderPolygonalCutoutRadius", "out_of_range", "cutout radius must be less than cylinderDiameter/2")
	}

	return out, nil
}

func setNumericField(s *types.CardSettings, field string, v float64) {
	switch field {
	case "cellSpacing":
		s.CellSpacing = v
	case "lineSpacing":
		s.LineSpacing = v
	case "dotSpacing":
		s.DotSpacing = v
	case "brailleXAdjust":
		s.BrailleXAdjust = v
	case "brailleYAdjust":
		s.BrailleYAdjust = v
	case "roundedDotBaseDiameter":
		s.RoundedDotBaseDiameter = v
	case "roundedDotBaseHeight":
		s.RoundedDotBaseHeight = v
	case "roundedDotDomeDiameter":
		s.RoundedDotDomeDiameter = v
	case "roundedDotDomeHeight":
		s.RoundedDotDomeHeight = v
	case "embossDotBaseDiameter":
		s.EmbossDotBaseDiameter = v
	case "embossDotHeight":
		s.EmbossDotHeight = v
	case "embossDotFlatHat":
		s.EmbossDotFlatHat = v
	case "bowlCounterDotBaseDiameter":
		s.BowlCounterDotBaseDiameter = v
	case "counterDotDepth":
		s.CounterDotDepth = v
	case "coneCounterDotBaseDiameter":
		s.ConeCounterDotBaseDiameter = v
	case "coneCounterDotHeight":
		s.ConeCounterDotHeight = v
	case "coneCounterDotFlatHat":
		s.ConeCounterDotFlatHat = v
	case "cylinderDiameter":
		s.CylinderDiameter = v
	case "cylinderHeight":
		s.CylinderHeight = v
	case "cylinderPolygonalCutoutRadius":
		s.CylinderPolygonalCutoutRadius = v
	case "seamOffsetDeg":
		s.SeamOffsetDeg = v
	case "cardWidth":
		s.CardWidth = v
	case "cardHeight":
		s.CardHeight = v
	case "cardThickness":
		s.CardThickness = v
	}
}

func setIntField(s *types.CardSettings, field string, v int) {
	switch field {
	case "gridColumns":
		s.GridColumns = v
	case "gridRows":
		s.GridRows = v
	case "cylinderPolygonalCutoutSides":
		s.CylinderPolygonalCutoutSides = v
	}
}
