package csg

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/types"
)

// buildCard runs the card CSG backend (spec.md §4.4, "Card CSG
// backend (BVH)"): base box, pairwise-tree union of raised features
// for positive plates (or pairwise-tree subtraction of recesses for
// negative plates), then subtraction of any forSubtraction markers.
func buildCard(spec *types.GeometrySpec, budget *jobBudget) ([]types.Triangle, *errors.Error) {
	base, err := sdf.Box3D(v3.Vec{X: spec.Base.Width, Y: spec.Base.Height, Z: spec.Base.Thickness}, 0)
	if err != nil {
		return nil, errors.New(errors.CSGFailed, "failed to build card base", err)
	}
	base = sdf.Transform3D(base, sdf.Translate3d(v3.Vec{
		X: spec.Base.Width / 2, Y: spec.Base.Height / 2, Z: spec.Base.Thickness / 2,
	}))

	var additive, subtractive []types.Feature
	for _, f := range spec.Features {
		if f.ForSubtraction {
			subtractive = append(subtractive, f)
		} else {
			additive = append(additive, f)
		}
	}

	rng := seededRNG(spec)

	result := base
	if len(additive) > 0 {
		tree, ferr := balancedBoolean(additive, sdf.Union3D, rng)
		if ferr != nil {
			return nil, ferr
		}
		result = sdf.Union3D(result, tree)
	}
	if budget.expired() {
		return nil, errors.New(errors.CSGTimeout, "card CSG exceeded its wall-clock budget", nil)
	}

	if len(subtractive) > 0 {
		tree, ferr := balancedBoolean(subtractive, sdf.Union3D, rng)
		if ferr != nil {
			return nil, ferr
		}
		result = sdf.Difference3D(result, tree)
	}
	if budget.expired() {
		return nil, errors.New(errors.CSGTimeout, "card CSG exceeded its wall-clock budget", nil)
	}

	tempPath := filepath.Join(budget.tempDir, fmt.Sprintf("card-%d.stl", rand.Int63()))
	return renderMesh(result, budget.meshResolution, tempPath)
}

// balancedBoolean combines feature primitives pairwise over a
// balanced binary tree to bound working memory (spec.md §4.4). Order
// is shuffled by a seed derived from the spec's own content so the
// tree shape (and therefore the boolean's floating point accumulation
// order) is reproducible, not wall-clock dependent (spec.md §8 V7).
// combine is sdf.Union3D for both the additive and forSubtraction
// groups; each group is combined only within itself, and the caller
// then unions the additive tree into the base and subtracts the
// forSubtraction tree from the result. sdfx's booleans never partially
// fail per call, and this backend has no "disjoint concatenation"
// fallback.
func balancedBoolean(features []types.Feature, combine func(...sdf.SDF3) sdf.SDF3, rng *rand.Rand) (sdf.SDF3, *errors.Error) {
	prims := make([]sdf.SDF3, 0, len(features))
	for _, f := range features {
		local, err := featurePrimitive(f)
		if err != nil {
			return nil, err
		}
		prims = append(prims, placeFeature(local, f))
	}

	rng.Shuffle(len(prims), func(i, j int) { prims[i], prims[j] = prims[j], prims[i] })

	// A balanced binary tree pairing: repeatedly combine adjacent
	// pairs until one SDF3 remains. sdfx's Union3D/Difference3D accept
	// a variadic batch natively; we still impose the pairwise-tree
	// shape here so working memory never holds more than two levels
	// of partially-combined results at once, honoring the spec's
	// "bound working memory" intent even though sdfx's in-memory SDF3
	// representation is itself cheap compared to a mesh-boolean engine.
	level := prims
	for len(level) > 1 {
		next := make([]sdf.SDF3, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, combine(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return level[0], nil
}
