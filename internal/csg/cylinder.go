package csg

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/types"
)

// outerSides is the segment count of the cylinder shell's outer wall,
// a regular 60-gon inscribed in diameter/2 per spec.md §4.4.
const outerSides = 60

// buildCylinder runs the cylinder CSG backend (spec.md §4.4, "Cylinder
// CSG backend (Manifold)"): an open-ended polygonal tube (outer
// 60-gon, inner polygonalCutoutSides-gon) with radial features
// transformed into cylinder-local space before the same sdfx booleans
// the card backend uses. All radial features are already expressed in
// world space by internal/specgen/cylinder.go's projection, so no
// further re-projection is needed here; "cylinder-local space" is
// simply the shell's own coordinate frame, which is the world frame.
func buildCylinder(spec *types.GeometrySpec, budget *jobBudget) ([]types.Triangle, *errors.Error) {
	shell, err := cylinderShell(spec.Base)
	if err != nil {
		return nil, err
	}

	var additive, subtractive []types.Feature
	for _, f := range spec.Features {
		if f.ForSubtraction {
			subtractive = append(subtractive, f)
		} else {
			additive = append(additive, f)
		}
	}

	rng := seededRNG(spec)

	result := shell
	if len(additive) > 0 {
		tree, ferr := balancedBoolean(additive, sdf.Union3D, rng)
		if ferr != nil {
			return nil, ferr
		}
		result = sdf.Union3D(result, tree)
	}
	if budget.expired() {
		return nil, errors.New(errors.CSGTimeout, "cylinder CSG exceeded its wall-clock budget", nil)
	}

	if len(subtractive) > 0 {
		tree, ferr := balancedBoolean(subtractive, sdf.Union3D, rng)
		if ferr != nil {
			return nil, ferr
		}
		result = sdf.Difference3D(result, tree)
	}
	if budget.expired() {
		return nil, errors.New(errors.CSGTimeout, "cylinder CSG exceeded its wall-clock budget", nil)
	}

	tempPath := filepath.Join(budget.tempDir, fmt.Sprintf("cylinder-%d.stl", rand.Int63()))
	return renderMesh(result, budget.meshResolution, tempPath)
}

// cylinderShell builds the open-ended polygonal tube: an outer 60-gon
// solid of revolution minus an inner regular N-gon cutout
// (polygonSides sides inscribed in polygonalCutoutRadius), per
// spec.md §4.3's "polygonal inner cutout" and §4.4's open-ended-genus-1
// choice.
func cylinderShell(base types.Base) (sdf.SDF3, *errors.Error) {
	outerRadius := base.Diameter / 2
	outer, err := regularPrism(outerRadius, outerSides, base.CylHeight)
	if err != nil {
		return nil, err
	}
	if base.PolygonSides < 3 {
		return outer, nil
	}
	inner, err := regularPrism(base.Diameter/2-base.WallThickness, base.PolygonSides, base.CylHeight*1.1)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(outer, inner), nil
}

// regularPrism builds a true regular N-gon prism of the given
// circumradius and height, centered on the Z axis with its base at
// z=0: an N-vertex polygon inscribed in radius, extruded along Z via
// sdf.Polygon2D + sdf.Extrude3D. This is what makes
// "polygonSides = 3" a triangular cutout and "polygonSides = 128" a
// near-circular one per spec.md §8's boundary test — a round
// sdf.Cylinder3D would flatten every N to a circle and is used only
// as the degenerate sides < 3 fallback (no polygonal cutout at all).
func regularPrism(radius float64, sides int, height float64) (sdf.SDF3, *errors.Error) {
	if sides < 3 {
		s, err := sdf.Cylinder3D(height, radius, 0)
		if err != nil {
			return nil, errors.New(errors.CSGFailed, "failed to build cylinder shell primitive", err)
		}
		return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: height / 2})), nil
	}

	verts := make([]v2.Vec, sides)
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		verts[i] = v2.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	poly, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, errors.New(errors.CSGFailed, "failed to build N-gon cutout polygon", err)
	}
	prism := sdf.Extrude3D(poly, height)
	return sdf.Transform3D(prism, sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: height / 2})), nil
}

// degradedResolution is the mesh resolution a job on either backend
// retries at after a non-manifold result (spec.md §4.4's "retry once
// with a smaller subdivision level").
func degradedResolution(resolution int) int {
	half := resolution / 2
	if half < 32 {
		return 32
	}
	return half
}
