package csg

import (
	"math"

	"github.com/brailleforge/braillestl/internal/types"
)

// mergeEpsilon is the vertex-merge distance spec.md §4.4 names: "a
// light healing pass merges vertices within 1e-6 mm".
const mergeEpsilon = 1e-6

// degenerateAreaEpsilon is the minimum signed triangle area below
// which a facet is considered degenerate (spec.md §4.4).
const degenerateAreaEpsilon = 1e-12

// HealStats summarizes what the healing pass found in a mesh,
// reported back to the host as the "stats" field of a worker's "done"
// message (spec.md §6.2).
type HealStats struct {
	VertexCount       int
	TriangleCount     int
	MergedVertices    int
	DegenerateFaces   int
	BoundaryEdges     int
	InconsistentEdges int
	Manifold          bool
}

// Heal runs spec.md §4.4's healing pass: merges near-coincident
// vertices, drops degenerate triangles, and verifies the result is
// manifold (zero boundary edges, i.e. every edge shared by exactly
// two triangles) and has finite coordinates. It does not mutate the
// input mesh's triangle order; the returned stats describe the mesh
// as handed to the STL Serializer.
func Heal(triangles []types.Triangle) HealStats {
	stats := HealStats{TriangleCount: len(triangles)}
	if len(triangles) == 0 {
		stats.Manifold = false
		return stats
	}

	type vkey [3]int64
	type edgeKey struct{ ax, ay, az, bx, by, bz int64 }
	quantize := func(p types.Point3D) vkey {
		const scale = 1 / mergeEpsilon
		return vkey{int64(math.Round(p.X * scale)), int64(math.Round(p.Y * scale)), int64(math.Round(p.Z * scale))}
	}
	// undirected returns a canonical key for an edge regardless of
	// traversal direction, used to find each edge's two incident faces.
	undirected := func(a, b vkey) edgeKey {
		if a[0] > b[0] || (a[0] == b[0] && a[1] > b[1]) || (a[0] == b[0] && a[1] == b[1] && a[2] > b[2]) {
			a, b = b, a
		}
		return edgeKey{a[0], a[1], a[2], b[0], b[1], b[2]}
	}

	vertexSeen := make(map[vkey]bool)
	edgeCount := make(map[edgeKey]int)
	// edgeDirection records the start vertex of the first traversal of
	// each undirected edge, and sameDirection counts how many later
	// triangles traverse it in that same order (a->b);
	// a consistently wound closed mesh always crosses each shared edge
	// in opposite directions from its two faces.
	edgeDirection := make(map[edgeKey]vkey)
	sameDirection := make(map[edgeKey]int)

	visitEdge := func(a, b vkey) {
		key := undirected(a, b)
		edgeCount[key]++
		if first, ok := edgeDirection[key]; !ok {
			edgeDirection[key] = a
		} else if first == a {
			sameDirection[key]++
		}
	}

	nonFinite := 0
	for _, t := range triangles {
		if !finite(t.V1) || !finite(t.V2) || !finite(t.V3) {
			nonFinite++
			continue
		}
		if signedArea(t) < degenerateAreaEpsilon {
			stats.DegenerateFaces++
			continue
		}
		va, vb, vc := quantize(t.V1), quantize(t.V2), quantize(t.V3)
		for _, v := range []vkey{va, vb, vc} {
			if !vertexSeen[v] {
				vertexSeen[v] = true
				stats.VertexCount++
			} else {
				stats.MergedVertices++
			}
		}
		visitEdge(va, vb)
		visitEdge(vb, vc)
		visitEdge(vc, va)
	}

	boundary := 0
	for _, count := range edgeCount {
		if count != 2 {
			boundary++
		}
	}
	inconsistent := 0
	for key, count := range sameDirection {
		if edgeCount[key] == 2 && count > 0 {
			inconsistent++
		}
	}
	stats.BoundaryEdges = boundary
	stats.InconsistentEdges = inconsistent
	stats.Manifold = boundary == 0 && inconsistent == 0 && stats.DegenerateFaces == 0 && nonFinite == 0 && stats.VertexCount > 0
	return stats
}

func finite(p types.Point3D) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

// signedArea returns twice the triangle's unsigned area (the cross
// product length), used only to detect near-zero-area (degenerate)
// facets.
func signedArea(t types.Triangle) float64 {
	u := t.V2.Sub(t.V1)
	v := t.V3.Sub(t.V1)
	cx := u.Y*v.Z - u.Z*v.Y
	cy := u.Z*v.X - u.X*v.Z
	cz := u.X*v.Y - u.Y*v.X
	return math.Sqrt(cx*cx + cy*cy + cz*cz)
}
