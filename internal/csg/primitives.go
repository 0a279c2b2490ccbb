// Package csg implements the CSG Engine (spec.md §4.4): the two
// backends (card/BVH, cylinder/Manifold) that consume a
// types.GeometrySpec and produce a watertight triangle mesh. Grounded
// on github.com/deadsy/sdfx, the one pure-Go signed-distance-field CSG
// library surfaced by the retrieval pack (other_examples' sdfx
// architecture example): its Union3D/Difference3D booleans and
// marching-cubes renderer inherently produce a manifold result, which
// is what spec.md's Manifold-WASM backend guarantees natively and
// what the BVH backend must earn through its own healing pass.
package csg

import (
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/glyph"
	"github.com/brailleforge/braillestl/internal/types"
)

// defaultMeshResolution controls the marching-cubes sampling density used to
// render every sdf.SDF3 to a triangle mesh. Spec §4.4's "retry once
// with a smaller subdivision level" fallback scales this down.
const defaultMeshResolution = 200

// coneFrustum builds a frustum of the given height between baseDiameter
// (at z=0) and topDiameter (at z=height), centered on the Z axis.
func coneFrustum(baseDiameter, topDiameter, height float64) (sdf.SDF3, *errors.Error) {
	s, err := sdf.Cone3D(height, baseDiameter/2, topDiameter/2, 0)
	if err != nil {
		return nil, errors.New(errors.CSGFailed, "failed to build cone-frustum primitive", err)
	}
	// sdf.Cone3D is centered on its own midplane; shift so z=0 is the base.
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: height / 2})), nil
}

// sphereAt builds a sphere of the given radius centered at (0,0,centerZ).
func sphereAt(radius, centerZ float64) sdf.SDF3 {
	return sdf.Transform3D(sdf.Sphere3D(radius), sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: centerZ}))
}

// roundedDot builds the emboss dot shape (spec.md §4.4): a truncated
// cone of height baseHeight topped by a spherical cap of diameter
// domeDiameter and height domeHeight. The cap sphere's radius follows
// R² = (domeDiameter/2)² + (R - domeHeight)², solved as given in
// spec.md §4.4.
func roundedDot(p types.DotParams) (sdf.SDF3, *errors.Error) {
	frustum, err := coneFrustum(p.BaseDiameter, p.DomeDiameter, p.Height)
	if err != nil {
		return nil, err
	}
	if p.DomeHeight <= 0 {
		return frustum, nil
	}
	halfDome := p.DomeDiameter / 2
	r := (halfDome*halfDome + p.DomeHeight*p.DomeHeight) / (2 * p.DomeHeight)
	capCenterZ := p.Height + p.DomeHeight - r
	cap := sphereAt(r, capCenterZ)
	return sdf.Union3D(frustum, cap), nil
}

// emboseCone builds the cone-profile emboss dot: a frustum with an
// optional flat hat (top diameter flatHat) instead of a point.
func emboseCone(p types.DotParams) (sdf.SDF3, *errors.Error) {
	return coneFrustum(p.BaseDiameter, p.FlatHat, p.Height)
}

// bowl builds the counter-plate recess shape (spec.md §4.4): a
// spherical cap of height depth rising above z=0 in the local frame
// (placeFeature flips it into the material), where a is the opening
// radius (openingDiameter/2). Per the spec formula, a full
// sphere of radius R = (a² + h²)/(2h) has its opening flush with z=0
// and its center (R-h) below the surface. If depth is non-positive,
// falls back to a hemisphere of radius a.
func bowl(openingDiameter, depth float64) sdf.SDF3 {
	a := openingDiameter / 2 // cap-formula radius
	if depth <= 0 {
		return sphereAt(a, 0)
	}
	r := (a*a + depth*depth) / (2 * depth)
	return sphereAt(r, -(r - depth))
}

// hemisphere builds a hemispherical recess: the depth-0 limit of bowl,
// a half-sphere with its flat face flush with z=0.
func hemisphere(openingDiameter float64) sdf.SDF3 {
	return sphereAt(openingDiameter/2, 0)
}

// dotPrimitive resolves a Feature's dot shape into an sdf.SDF3 in the
// feature's local frame: z=0 at the surface, with the dot or cap
// profile on the +z side for every shape. placeFeature flips recess
// features so that profile points into the material.
func dotPrimitive(f types.Feature) (sdf.SDF3, *errors.Error) {
	switch f.DotShapeKind {
	case types.DotShapeRounded:
		return roundedDot(f.Dot)
	case types.DotShapeCone:
		return emboseCone(f.Dot)
	case types.DotShapeHemisphere:
		return hemisphere(f.Dot.OpeningDiameter), nil
	case types.DotShapeBowl:
		return bowl(f.Dot.OpeningDiameter, f.Dot.Depth), nil
	default:
		return nil, errors.New(errors.BadSpec, "unknown dot shape kind in geometry spec", nil)
	}
}

// markerPrimitive resolves a triangle/rect/character marker feature
// into a local-frame sdf.SDF3. Rect markers are an exact
// axis-aligned box-extrusion; triangle markers use the same box,
// sized to the marker's footprint, as a conservative stand-in rather
// than a real triangular polygon extrusion (unlike cylinder.go's
// N-gon cutout, a triangle marker's true vertices aren't modeled
// anywhere upstream, so there is no vertex list to hand sdf.Polygon2D
// here). Character markers use glyph.BuildSDF's rasterized glyph
// outline, per spec.md §4.4's "extruded outline of a single glyph"
// requirement, falling back to a bounding-box prism only through
// BuildSDF's own documented, logged failure path.
func markerPrimitive(f types.Feature) (sdf.SDF3, *errors.Error) {
	if f.Kind == types.FeatureCharacter {
		return glyph.BuildSDF(f.Glyph, f.Size, f.Height)
	}

	var width, depth float64
	switch f.Kind {
	case types.FeatureTriangle:
		width, depth = f.Size, f.Size
	case types.FeatureRect:
		width, depth = f.Width, f.Depth
	default:
		return nil, errors.New(errors.BadSpec, "markerPrimitive called on a non-marker feature", nil)
	}
	box, err := sdf.Box3D(v3.Vec{X: width, Y: depth, Z: f.Height}, 0)
	if err != nil {
		return nil, errors.New(errors.CSGFailed, "failed to build marker prism", err)
	}
	return sdf.Transform3D(box, sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: f.Height / 2})), nil
}

// featurePrimitive resolves any Feature into a local-frame sdf.SDF3
// (surface at z=0), dispatching by Kind.
func featurePrimitive(f types.Feature) (sdf.SDF3, *errors.Error) {
	if f.Kind == types.FeatureDot {
		return dotPrimitive(f)
	}
	return markerPrimitive(f)
}

// placeFeature transforms a local-frame primitive so its surface
// point (local origin) sits at f.Center oriented along f.Axis, and
// orients the primitive to carve into the material (recesses grow
// opposite Axis; emboss features grow along Axis).
func placeFeature(local sdf.SDF3, f types.Feature) sdf.SDF3 {
	if f.ForSubtraction && f.Kind == types.FeatureDot {
		local = sdf.Transform3D(local, sdf.RotateX3d(math.Pi)) // flip so the recess grows into the material
	}
	rot := alignZToAxis(f.Axis)
	placed := sdf.Transform3D(local, rot)
	return sdf.Transform3D(placed, sdf.Translate3d(v3.Vec{X: f.Center.X, Y: f.Center.Y, Z: f.Center.Z}))
}

// alignZToAxis returns the rotation matrix mapping the local +Z axis
// onto the unit vector axis, used to orient a feature primitive (built
// pointing along +Z) to its outward surface normal. The card path's
// axis is always (0,0,1), so this degenerates to identity there; the
// cylinder path uses it to swing the primitive to the radial
// direction.
func alignZToAxis(axis types.Point3D) sdf.M44 {
	const epsilon = 1e-9
	z := v3.Vec{X: 0, Y: 0, Z: 1}
	target := v3.Vec{X: axis.X, Y: axis.Y, Z: axis.Z}

	dot := z.X*target.X + z.Y*target.Y + z.Z*target.Z
	if dot > 1-epsilon {
		return sdf.Identity3d()
	}
	if dot < -1+epsilon {
		return sdf.RotateX3d(math.Pi)
	}

	axisOfRotation := v3.Vec{X: z.Y*target.Z - z.Z*target.Y, Y: z.Z*target.X - z.X*target.Z, Z: z.X*target.Y - z.Y*target.X}
	angle := math.Acos(dot)
	return sdf.Rotate3d(axisOfRotation, angle)
}

// renderMesh rasterizes an sdf.SDF3 to a triangle mesh via sdfx's
// marching-cubes renderer, writing to a temp STL file and reading it
// back with our own binary parser rather than trust sdfx's own writer
// downstream (mirrors the teacher's own read-back-after-write pattern
// for character.stl in internal/stl/generator.go).
func renderMesh(s sdf.SDF3, resolution int, tempPath string) ([]types.Triangle, *errors.Error) {
	if err := render.ToSTL(s, tempPath, render.NewMarchingCubesOctree(resolution)); err != nil {
		return nil, errors.New(errors.CSGFailed, "marching-cubes render failed", err)
	}
	return readBackSTL(tempPath)
}
