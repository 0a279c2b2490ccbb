package csg

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brailleforge/braillestl/internal/types"
)

func TestBowl_OpeningRadiusMatchesRequestedDiameter(t *testing.T) {
	b := bowl(1.6, 0.6)
	// At the surface plane (z=0) the recess's evaluated distance at the
	// opening radius should be ~0 (on the sphere surface).
	d := b.Evaluate(v3.Vec{X: 0.8, Y: 0, Z: 0})
	assert.InDelta(t, 0, d, 1e-6)
}

func TestBowl_ZeroDepthFallsBackToHemisphere(t *testing.T) {
	b := bowl(1.6, 0)
	h := hemisphere(1.6)
	for _, p := range []v3.Vec{{X: 0, Y: 0, Z: -0.5}, {X: 0.5, Y: 0.2, Z: 0}} {
		assert.InDelta(t, h.Evaluate(p), b.Evaluate(p), 1e-9)
	}
}

func TestRoundedDot_ZeroDomeHeightIsJustTheFrustum(t *testing.T) {
	p := types.DotParams{BaseDiameter: 1.4, Height: 0.5, DomeDiameter: 1.0, DomeHeight: 0}
	s, err := roundedDot(p)
	require.Nil(t, err)
	frustum, ferr := coneFrustum(p.BaseDiameter, p.DomeDiameter, p.Height)
	require.Nil(t, ferr)
	assert.InDelta(t, frustum.Evaluate(v3.Vec{X: 0, Y: 0, Z: 0.25}), s.Evaluate(v3.Vec{X: 0, Y: 0, Z: 0.25}), 1e-9)
}

func TestDotPrimitive_UnknownShapeKindErrors(t *testing.T) {
	_, err := dotPrimitive(types.Feature{Kind: types.FeatureDot, DotShapeKind: "bogus"})
	require.NotNil(t, err)
}

func TestMarkerPrimitive_RectUsesExactFootprint(t *testing.T) {
	f := types.Feature{Kind: types.FeatureRect, Width: 2, Depth: 1, Height: 0.4}
	s, err := markerPrimitive(f)
	require.Nil(t, err)
	// inside the box
	assert.True(t, s.Evaluate(v3.Vec{X: 0, Y: 0, Z: 0.2}) < 0)
	// well outside
	assert.True(t, s.Evaluate(v3.Vec{X: 10, Y: 10, Z: 10}) > 0)
}

func TestMarkerPrimitive_CharacterClosesRegardlessOfFontAvailability(t *testing.T) {
	size := 6.25
	height := 0.5
	f := types.Feature{Kind: types.FeatureCharacter, Glyph: "H", Size: size, Height: height}
	s, err := markerPrimitive(f)
	require.Nil(t, err)
	require.NotNil(t, s)

	// Somewhere within the requested footprint/height there must be
	// solid material, whether that's the rasterized glyph outline or
	// the documented bounding-box fallback: sample a grid rather than
	// assume any single point lands on ink.
	foundSolid := false
	const samples = 9
	for i := 0; i < samples; i++ {
		for j := 0; j < samples; j++ {
			x := -size/2 + size*float64(i)/float64(samples-1)
			y := -size/2 + size*float64(j)/float64(samples-1)
			if s.Evaluate(v3.Vec{X: x, Y: y, Z: height / 2}) < 0 {
				foundSolid = true
			}
		}
	}
	assert.True(t, foundSolid, "expected some solid material within the glyph's footprint")

	// Well outside the footprint must be empty.
	assert.True(t, s.Evaluate(v3.Vec{X: 100, Y: 100, Z: 100}) > 0)
}

func TestMarkerPrimitive_UnknownKindErrors(t *testing.T) {
	_, err := markerPrimitive(types.Feature{Kind: types.FeatureDot})
	require.NotNil(t, err)
}

func TestAlignZToAxis_IdentityForStraightUp(t *testing.T) {
	m := alignZToAxis(types.Point3D{X: 0, Y: 0, Z: 1})
	assert.Equal(t, sdf.Identity3d(), m)
}

func TestAlignZToAxis_FlipsForStraightDown(t *testing.T) {
	m := alignZToAxis(types.Point3D{X: 0, Y: 0, Z: -1})
	got := m.MulPosition(v3.Vec{X: 0, Y: 0, Z: 1})
	assert.InDelta(t, -1, got.Z, 1e-9)
}

func TestAlignZToAxis_RadialMapsZToAxis(t *testing.T) {
	axis := types.Point3D{X: 1, Y: 0, Z: 0}
	m := alignZToAxis(axis)
	got := m.MulPosition(v3.Vec{X: 0, Y: 0, Z: 1})
	assert.InDelta(t, 1, got.X, 1e-6)
	assert.InDelta(t, 0, got.Y, 1e-6)
	assert.InDelta(t, 0, got.Z, 1e-6)
}

func TestConeFrustum_BaseSitsAtZZero(t *testing.T) {
	s, err := coneFrustum(2, 1, 1)
	require.Nil(t, err)
	// just inside the base radius at z~0
	assert.True(t, s.Evaluate(v3.Vec{X: 0.9, Y: 0, Z: 0.01}) < 0)
	// outside entirely
	assert.True(t, s.Evaluate(v3.Vec{X: 5, Y: 5, Z: 5}) > 0)
}
