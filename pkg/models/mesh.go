// Package models provides the meshes the orbit viewer puts in front of the
// camera.
package models

import (
	"cmp"
	"slices"

	"github.com/taigrr/orbit/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Faces     [][3]int // Indices into Positions

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	edges [][2]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// NewCube creates a cube of the given edge length centered on the origin.
func NewCube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	m.Positions = []math3d.Vec3{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
	m.Faces = [][3]int{
		{0, 2, 1}, {0, 3, 2}, // back
		{4, 5, 6}, {4, 6, 7}, // front
		{0, 1, 5}, {0, 5, 4}, // bottom
		{3, 7, 6}, {3, 6, 2}, // top
		{0, 4, 7}, {0, 7, 3}, // left
		{1, 2, 6}, {1, 6, 5}, // right
	}
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns half the bounding box diagonal.
func (m *Mesh) Radius() float64 {
	return m.Size().Len() / 2
}

func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = mat.MulPoint(p)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it so its largest dimension
// equals size.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	s := m.Size()
	maxDim := max(s.X, s.Y, s.Z)
	if maxDim <= 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(size / maxDim).Mul(math3d.Translate(m.Center().Negate())))
}

// Position returns vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) Position(i int) math3d.Vec3 {
	return m.Positions[i]
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Edges returns every distinct triangle edge once, lower index first. The
// list is built on first use; Faces must not change afterwards.
func (m *Mesh) Edges() [][2]int {
	if m.edges == nil {
		m.edges = m.buildEdges()
	}
	return m.edges
}

func (m *Mesh) buildEdges() [][2]int {
	edges := make([][2]int, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		for i := range 3 {
			a, b := f[i], f[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			edges = append(edges, [2]int{a, b})
		}
	}
	slices.SortFunc(edges, func(x, y [2]int) int {
		if c := cmp.Compare(x[0], y[0]); c != 0 {
			return c
		}
		return cmp.Compare(x[1], y[1])
	})
	return slices.Compact(edges)
}
