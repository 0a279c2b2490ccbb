package csg

import (
	"os"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/stl"
	"github.com/brailleforge/braillestl/internal/types"
)

// readBackSTL parses a file sdfx's renderer just wrote using this
// package's own binary STL reader, then removes the temp file. This
// keeps the STL Serializer (internal/stl) the single source of truth
// for the wire format even though the CSG backend's own renderer
// writes an intermediate file of its own (spec.md §3.3 exact-byte
// layout must hold for the file the client eventually receives, not
// merely for whatever sdfx happened to emit).
func readBackSTL(path string) ([]types.Triangle, *errors.Error) {
	defer os.Remove(path)
	triangles, err := stl.ReadBinaryFile(path)
	if err != nil {
		return nil, errors.New(errors.CSGFailed, "failed to read back rendered mesh", err)
	}
	return triangles, nil
}
