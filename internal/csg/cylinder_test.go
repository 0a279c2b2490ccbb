package csg

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/types"
)

func TestCylinderShell_NoCutoutBelowThreeSides(t *testing.T) {
	base := types.Base{Kind: types.BaseCylinder, Diameter: 20, CylHeight: 40, WallThickness: 2, PolygonSides: 2}
	shell, err := cylinderShell(base)
	require.Nil(t, err)
	require.NotNil(t, shell)
}

func TestCylinderShell_WithCutout(t *testing.T) {
	base := types.Base{Kind: types.BaseCylinder, Diameter: 20, CylHeight: 40, WallThickness: 2, PolygonSides: 8}
	shell, err := cylinderShell(base)
	require.Nil(t, err)
	require.NotNil(t, shell)
}

// TestRegularPrism_TriangleCutoutIsNotRound asserts spec.md §8's
// boundary case directly: a polygonSides=3 cutout must be a triangle,
// not a circle of the same circumradius. A point that sits inside the
// circumscribed circle but outside the triangle (near the midpoint of an
// edge, where a regular triangle's apothem is half its circumradius)
// must evaluate as outside the triangle prism.
func TestRegularPrism_TriangleCutoutIsNotRound(t *testing.T) {
	radius := 10.0
	height := 20.0
	prism, err := regularPrism(radius, 3, height)
	require.Nil(t, err)

	// Directly along the midpoint of the edge between vertex 0 (angle 0)
	// and vertex 1 (angle 120deg): at 95% of the triangle's apothem
	// (radius/2) the point is inside the triangle; at 120% it is outside
	// the triangle but still inside the circumscribed circle.
	midAngle := math.Pi / 3
	apothem := radius / 2
	edgePoint := v3.Vec{X: apothem * 0.95 * math.Cos(midAngle), Y: apothem * 0.95 * math.Sin(midAngle), Z: height / 2}
	assert.True(t, prism.Evaluate(edgePoint) < 0, "point inside the triangle's apothem should be inside the prism")

	justOutsideTriangle := v3.Vec{X: apothem * 1.2 * math.Cos(midAngle), Y: apothem * 1.2 * math.Sin(midAngle), Z: height / 2}
	assert.True(t, justOutsideTriangle.X*justOutsideTriangle.X+justOutsideTriangle.Y*justOutsideTriangle.Y < radius*radius,
		"sanity check: test point must still be inside the circumscribed circle")
	assert.True(t, prism.Evaluate(justOutsideTriangle) > 0, "point outside the triangle edge but inside the circumscribed circle must be outside a true triangular prism")
}

// TestRegularPrism_HighSideCountIsNearCircular checks the other end
// of spec.md §8's boundary test: polygonSides=128 should be
// indistinguishable from a circle to well within print tolerance.
func TestRegularPrism_HighSideCountIsNearCircular(t *testing.T) {
	radius := 10.0
	height := 20.0
	prism, err := regularPrism(radius, 128, height)
	require.Nil(t, err)

	midAngle := math.Pi / 64
	apothem := radius * math.Cos(math.Pi/128)
	nearEdge := v3.Vec{X: apothem * 0.99 * math.Cos(midAngle), Y: apothem * 0.99 * math.Sin(midAngle), Z: height / 2}
	assert.True(t, prism.Evaluate(nearEdge) < 0)
}

func TestDegradedResolution_HalvesWithFloor(t *testing.T) {
	assert.Equal(t, 100, degradedResolution(200))
	assert.Equal(t, 32, degradedResolution(40))
	assert.Equal(t, 32, degradedResolution(10))
}

func TestBuildCylinder_TimesOutBeforeRendering(t *testing.T) {
	spec := &types.GeometrySpec{
		Base:      types.Base{Kind: types.BaseCylinder, Diameter: 20, CylHeight: 40, WallThickness: 2},
		PlateType: types.PlatePositive,
		Features: []types.Feature{{
			Kind: types.FeatureRect, Width: 1, Depth: 1, Height: 0.4,
			Center: types.Point3D{X: 10, Y: 0, Z: 20}, Axis: types.Point3D{X: 1},
		}},
	}
	budget := &jobBudget{deadline: time.Now().Add(-time.Second), tempDir: t.TempDir(), meshResolution: 8}
	_, err := buildCylinder(spec, budget)
	require.NotNil(t, err)
	assert.Equal(t, errors.CSGTimeout, err.Kind)
}
