package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brailleforge/braillestl/internal/types"
)

func sampleTriangles() []types.Triangle {
	return []types.Triangle{
		{V1: types.Point3D{X: 0, Y: 0, Z: 0}, V2: types.Point3D{X: 1, Y: 0, Z: 0}, V3: types.Point3D{X: 0, Y: 1, Z: 0}},
		{V1: types.Point3D{X: 0, Y: 0, Z: 1}, V2: types.Point3D{X: 1, Y: 0, Z: 1}, V3: types.Point3D{X: 0, Y: 1, Z: 1}},
	}
}

// V8: the header must never start with "solid", which would cause
// naive parsers to misdetect the file as ASCII STL (spec.md §4.5).
func TestWriteBinary_NoASCIIPrefix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, sampleTriangles()))
	assert.False(t, strings.HasPrefix(buf.String(), "solid"))
}

func TestWriteBinary_HeaderSizeAndCount(t *testing.T) {
	tris := sampleTriangles()
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, tris))

	b := buf.Bytes()
	require.Equal(t, headerSize+4+len(tris)*triangleBytes, len(b))

	count := binary.LittleEndian.Uint32(b[headerSize : headerSize+4])
	assert.Equal(t, uint32(len(tris)), count)
}

// V6: a mesh round-tripped through WriteBinary/ReadBinary must
// reproduce the same vertex data (to float32 precision).
func TestRoundTrip(t *testing.T) {
	tris := sampleTriangles()
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, tris))

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(tris))

	for i, want := range tris {
		assert.InDelta(t, want.V1.X, got[i].V1.X, 1e-5)
		assert.InDelta(t, want.V1.Y, got[i].V1.Y, 1e-5)
		assert.InDelta(t, want.V1.Z, got[i].V1.Z, 1e-5)
		assert.InDelta(t, want.V3.Y, got[i].V3.Y, 1e-5)
	}
}

func TestWriteBinary_NormalIsUnitLengthAndRightHanded(t *testing.T) {
	tri := types.Triangle{
		V1: types.Point3D{X: 0, Y: 0, Z: 0},
		V2: types.Point3D{X: 1, Y: 0, Z: 0},
		V3: types.Point3D{X: 0, Y: 1, Z: 0},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, []types.Triangle{tri}))

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	n := got[0].Normal
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	assert.InDelta(t, 1.0, length, 1e-5)
	assert.InDelta(t, 1.0, n.Z, 1e-5, "CCW-from-outside winding on the XY plane points +Z")
}

func TestReadBinary_RejectsASCIIHeader(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("solid braillestl\n")
	buf.Write(make([]byte, headerSize-buf.Len()))
	buf.Write(make([]byte, 4))

	_, err := ReadBinary(&buf)
	require.Error(t, err)
}

func TestWriteBinary_EmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, nil))
	assert.Equal(t, headerSize+4, buf.Len())

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}
