package csg

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/brailleforge/braillestl/internal/types"
)

// seededRNG derives a deterministic seed from a GeometrySpec's content
// rather than wall-clock time, so the BVH backend's pairwise-tree
// construction is reproducible run to run (spec.md §8 V7: "the BVH
// path must fix its RNG seed if any"). Grounded on
// dshills/dungo/pkg/rng's master-seed/stage-name/config-hash SHA-256
// derivation; here the whole spec stands in for the config, since
// there is no separate master seed in this pipeline.
func seededRNG(spec *types.GeometrySpec) *rand.Rand {
	h := sha256.New()
	h.Write([]byte("braillestl/csg/bvh-pairing"))
	h.Write([]byte(fmt.Sprintf("%s|%s|%d", spec.Base.Kind, spec.PlateType, len(spec.Features))))
	for _, f := range spec.Features {
		h.Write([]byte(fmt.Sprintf("%s|%.6f|%.6f|%.6f|%v;", f.Kind, f.Center.X, f.Center.Y, f.Center.Z, f.ForSubtraction)))
	}
	sum := h.Sum(nil)
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seed))
}
