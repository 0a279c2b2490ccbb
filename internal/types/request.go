package types

// ShapeType is the target print surface.
type ShapeType string

const (
	ShapeCard     ShapeType = "card"
	ShapeCylinder ShapeType = "cylinder"
)

// PlateType distinguishes the raised embossing plate from the
// recessed counter plate.
type PlateType string

const (
	PlatePositive PlateType = "positive"
	PlateNegative PlateType = "negative"
)

// DotShape selects the embossed dot profile.
type DotShape string

const (
	DotRounded DotShape = "rounded"
	DotCone    DotShape = "cone"
)

// RecessShape selects the counter-plate recess profile.
type RecessShape string

const (
	RecessHemisphere RecessShape = "hemisphere"
	RecessBowl       RecessShape = "bowl"
	RecessCone       RecessShape = "cone"
)

// IndicatorShapes toggles row-end/row-start marker and character
// generation.
type IndicatorShapes string

const (
	IndicatorsOn  IndicatorShapes = "on"
	IndicatorsOff IndicatorShapes = "off"
)

// CardSettings is the enumerated, range-validated configuration record
// for a generation job. All lengths are millimeters unless noted.
type CardSettings struct {
	// Grid
	GridColumns      int
	GridRows         int
	CellSpacing      float64
	LineSpacing      float64
	DotSpacing       float64
	BrailleXAdjust   float64
	BrailleYAdjust   float64

	// Emboss: rounded dot
	RoundedDotBaseDiameter float64
	RoundedDotBaseHeight   float64
	RoundedDotDomeDiameter float64
	RoundedDotDomeHeight   float64

	// Emboss: cone dot
	EmbossDotBaseDiameter float64
	EmbossDotHeight       float64
	EmbossDotFlatHat      float64

	// Counter: bowl
	BowlCounterDotBaseDiameter float64
	CounterDotDepth            float64

	// Counter: cone
	ConeCounterDotBaseDiameter float64
	ConeCounterDotHeight       float64
	ConeCounterDotFlatHat      float64

	// Cylinder
	CylinderDiameter             float64
	CylinderHeight               float64
	CylinderPolygonalCutoutRadius float64
	CylinderPolygonalCutoutSides int
	SeamOffsetDeg                float64

	// Plate
	CardWidth     float64
	CardHeight    float64
	CardThickness float64

	// Selectors
	DotShape        DotShape
	RecessShape     RecessShape
	IndicatorShapes IndicatorShapes
}

// DefaultCardSettings returns the defaults used in S1/S2/S4/S5 of
// spec.md §8 and to fill in any field missing from a raw job payload.
func DefaultCardSettings() CardSettings {
	return CardSettings{
		GridColumns:    20,
		GridRows:       10,
		CellSpacing:    6.0,
		LineSpacing:    10.0,
		DotSpacing:     2.5,
		BrailleXAdjust: 0,
		BrailleYAdjust: 0,

		RoundedDotBaseDiameter: 1.5,
		RoundedDotBaseHeight:   0.5,
		RoundedDotDomeDiameter: 1.0,
		RoundedDotDomeHeight:   0.5,

		EmbossDotBaseDiameter: 1.6,
		EmbossDotHeight:       0.6,
		EmbossDotFlatHat:      0.3,

		BowlCounterDotBaseDiameter: 1.8,
		CounterDotDepth:            0.8,

		ConeCounterDotBaseDiameter: 1.8,
		ConeCounterDotHeight:       0.7,
		ConeCounterDotFlatHat:      0.3,

		CylinderDiameter:              30.8,
		CylinderHeight:                52,
		CylinderPolygonalCutoutRadius: 13,
		CylinderPolygonalCutoutSides:  12,
		SeamOffsetDeg:                 0,

		CardWidth:     90,
		CardHeight:    52,
		CardThickness: 2.0,

		DotShape:        DotRounded,
		RecessShape:     RecessBowl,
		IndicatorShapes: IndicatorsOff,
	}
}

// GenerateRequest is a validated generation job, produced only by
// internal/validate.
type GenerateRequest struct {
	ShapeType     ShapeType
	PlateType     PlateType
	Lines         []string
	OriginalLines []string
	Settings      CardSettings
}
