// Package stl implements the STL Serializer (spec.md §4.5): a pure
// function from a triangle mesh to the binary STL byte format defined
// in spec.md §3.3, and its inverse for round-tripping meshes rendered
// by the CSG backend. Grounded on the teacher's own ReadASCIISTL/
// WriteSTLBinary split in internal/stl/generator.go, adapted to the
// binary-only, exact-byte-layout contract this spec requires.
package stl

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/brailleforge/braillestl/internal/errors"
	"github.com/brailleforge/braillestl/internal/types"
)

const (
	headerSize    = 80
	triangleBytes = 50
	header        = "braillestl binary export"
)

// WriteBinary serializes triangles to w in the exact binary STL layout
// spec.md §3.3 requires: an 80-byte zero-padded header carrying no
// "solid" prefix, a 4-byte little-endian triangle count, and one
// 50-byte record per triangle with a recomputed, unit-length,
// right-hand-rule normal (spec.md §4.5).
func WriteBinary(w io.Writer, triangles []types.Triangle) error {
	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	copy(hdr[:], header)
	if _, err := bw.Write(hdr[:]); err != nil {
		return errors.New(errors.SerializerError, "failed to write STL header", err)
	}

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(triangles)))
	if _, err := bw.Write(countBuf[:]); err != nil {
		return errors.New(errors.SerializerError, "failed to write triangle count", err)
	}

	var rec [triangleBytes]byte
	for _, t := range triangles {
		n := computeNormal(t)
		putVec(rec[0:12], n)
		putVec(rec[12:24], t.V1)
		putVec(rec[24:36], t.V2)
		putVec(rec[36:48], t.V3)
		rec[48], rec[49] = 0, 0
		if _, err := bw.Write(rec[:]); err != nil {
			return errors.New(errors.SerializerError, "failed to write triangle record", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.New(errors.SerializerError, "failed to flush STL output", err)
	}
	return nil
}

// WriteBinaryFile writes a binary STL to path, truncating any existing
// file (spec.md §6's two-file emboss/counter output).
func WriteBinaryFile(path string, triangles []types.Triangle) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(errors.IOError, "failed to create STL file", err)
	}
	defer f.Close()
	return WriteBinary(f, triangles)
}

// ReadBinary parses the binary STL format written by WriteBinary. It
// is used to read back CSG-backend intermediate files (the sdfx
// renderer writes its own STL; we re-parse it with this reader rather
// than trust a second STL dialect downstream), mirroring the
// teacher's own pattern of reading character.stl back after writing
// it in internal/stl/generator.go.
func ReadBinary(r io.Reader) ([]types.Triangle, error) {
	br := bufio.NewReader(r)

	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(br, hdr); err != nil {
		return nil, errors.New(errors.SerializerError, "failed to read STL header", err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(hdr)), "solid") {
		return nil, errors.New(errors.SerializerError, "ASCII STL is not supported; expected binary header", nil)
	}

	var countBuf [4]byte
	if _, err := io.ReadFull(br, countBuf[:]); err != nil {
		return nil, errors.New(errors.SerializerError, "failed to read triangle count", err)
	}
	count := binary.LittleEndian.Uint32(countBuf[:])

	triangles := make([]types.Triangle, 0, count)
	var rec [triangleBytes]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return nil, errors.New(errors.SerializerError, "failed to read triangle record", err)
		}
		triangles = append(triangles, types.Triangle{
			Normal: readVec(rec[0:12]),
			V1:     readVec(rec[12:24]),
			V2:     readVec(rec[24:36]),
			V3:     readVec(rec[36:48]),
		})
	}
	return triangles, nil
}

// ReadBinaryFile opens path and parses it as a binary STL file.
func ReadBinaryFile(path string) ([]types.Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.IOError, "failed to open STL file", err)
	}
	defer f.Close()
	return ReadBinary(f)
}

func putVec(b []byte, p types.Point3D) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(p.X)))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(p.Y)))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(p.Z)))
}

func readVec(b []byte) types.Point3D {
	return types.Point3D{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))),
	}
}

// computeNormal recomputes a triangle's outward normal from its
// vertices by the right-hand rule, normalized to unit length
// (spec.md §4.5). A degenerate triangle (zero-area) yields the zero
// vector rather than dividing by zero.
func computeNormal(t types.Triangle) types.Point3D {
	u := t.V2.Sub(t.V1)
	v := t.V3.Sub(t.V1)
	n := types.Point3D{
		X: u.Y*v.Z - u.Z*v.Y,
		Y: u.Z*v.X - u.X*v.Z,
		Z: u.X*v.Y - u.Y*v.X,
	}
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if length == 0 {
		return types.Point3D{}
	}
	return n.Scale(1 / length)
}
