package types

// BaseKind distinguishes the two base-surface variants of GeometrySpec.
type BaseKind string

const (
	BaseCard     BaseKind = "card"
	BaseCylinder BaseKind = "cylinder"
)

// Base is the tagged-union base surface a GeometrySpec's features sit
// on. Only the card fields or only the cylinder fields are populated,
// selected by Kind.
type Base struct {
	Kind BaseKind

	// card
	Width     float64
	Height    float64
	Thickness float64

	// cylinder
	Diameter      float64
	CylHeight     float64
	WallThickness float64
	PolygonSides  int
	SeamOffsetDeg float64
}

// FeatureKind is the tag of the Feature sum type.
type FeatureKind string

const (
	FeatureDot       FeatureKind = "dot"
	FeatureTriangle  FeatureKind = "triangle"
	FeatureRect      FeatureKind = "rect"
	FeatureCharacter FeatureKind = "character"
)

// DotShapeKind is the shape a dot feature renders as; it is distinct
// from types.DotShape/RecessShape because a spec feature always
// carries a single resolved shape regardless of which settings field
// picked it.
type DotShapeKind string

const (
	DotShapeCone        DotShapeKind = "cone"
	DotShapeRounded     DotShapeKind = "rounded"
	DotShapeHemisphere  DotShapeKind = "hemisphere"
	DotShapeBowl        DotShapeKind = "bowl"
)

// DotParams carries the resolved size parameters for a dot feature.
// Only the fields relevant to the feature's DotShapeKind are meaningful.
type DotParams struct {
	BaseDiameter float64 // cone, rounded (truncated-cone base)
	Height       float64 // cone, rounded base height
	FlatHat      float64 // cone flat top diameter
	DomeDiameter float64 // rounded dome diameter
	DomeHeight   float64 // rounded dome height
	OpeningDiameter float64 // hemisphere/bowl opening
	Depth        float64 // bowl depth (0 => hemisphere fallback)
}

// Feature is one discrete geometric element: a sum type keyed on
// Kind. Fields outside a kind's relevant set are zero.
type Feature struct {
	Kind FeatureKind

	Center Point3D
	Axis   Point3D // unit vector, outward from the base surface

	ForSubtraction bool

	// dot
	DotShapeKind DotShapeKind
	Dot          DotParams

	// triangle / rect / character
	Glyph  string
	Size   float64
	Width  float64
	Depth  float64
	Height float64
}

// GeometrySpec is the language-neutral output of the Spec Extractor
// and the sole input to the CSG Engine.
type GeometrySpec struct {
	Base      Base
	PlateType PlateType
	Features  []Feature
}
