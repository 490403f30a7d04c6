package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orbit/pkg/math3d"
)

func writeTriangleGLB(t *testing.T, withIndices bool) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}})
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
	}
	if withIndices {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2}))
	}
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: []*gltf.Primitive{prim}}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	assert.Error(t, err)
}

func TestLoadGLB(t *testing.T) {
	for _, indexed := range []bool{true, false} {
		mesh, err := LoadGLB(writeTriangleGLB(t, indexed))
		require.NoError(t, err)

		assert.Equal(t, "tri.glb", mesh.Name)
		assert.Equal(t, 3, mesh.VertexCount())
		assert.Equal(t, [][3]int{{0, 1, 2}}, mesh.Faces)
		assert.Equal(t, math3d.V3(1, 2, 0), mesh.BoundsMax)
	}
}

func TestLoadGLBFlipWinding(t *testing.T) {
	l := NewGLTFLoader()
	l.FlipWinding = true
	mesh, err := l.Load(writeTriangleGLB(t, true))
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{0, 2, 1}}, mesh.Faces)
}

func TestLoadGLBNoGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	require.NoError(t, gltf.SaveBinary(gltf.NewDocument(), path))

	_, err := LoadGLB(path)
	assert.ErrorIs(t, err, ErrNoGeometry)
}
