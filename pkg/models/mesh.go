// Package models provides 3D mesh representation and loading for meshpaint.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// ErrInvalidMesh is returned by Validate for malformed meshes.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh represents a triangle mesh with per-vertex positions, normals and UVs.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// NewPlane creates a flat grid of cols x rows quads spanning [0,1]x[0,1] on
// the XY plane, facing +Z, with UVs equal to the XY position. Each quad is
// split into two triangles: (bl, br, tl) and (br, tr, tl).
func NewPlane(name string, cols, rows int) *Mesh {
	m := NewMesh(name)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	for y := 0; y <= rows; y++ {
		for x := 0; x <= cols; x++ {
			u := float64(x) / float64(cols)
			v := float64(y) / float64(rows)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: math3d.V3(u, v, 0),
				Normal:   math3d.V3(0, 0, 1),
				UV:       math3d.V2(u, v),
			})
		}
	}

	stride := cols + 1
	for y := range rows {
		for x := range cols {
			bl := y*stride + x
			br := bl + 1
			tl := bl + stride
			tr := tl + 1
			m.Faces = append(m.Faces,
				Face{V: [3]int{bl, br, tl}},
				Face{V: [3]int{br, tr, tl}},
			)
		}
	}

	m.CalculateBounds()
	return m
}

// Validate checks that every face references an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i, idx, n)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
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

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateSmoothNormals computes averaged normals for smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Accumulate unnormalized face normals so larger faces weigh more
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// NormalizeTransform returns the transform that centers the mesh on the
// origin and scales its largest dimension to size. The mesh itself is left
// untouched so painting keeps working in the original model space.
func (m *Mesh) NormalizeTransform(size float64) math3d.Mat4 {
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)
	if maxDim <= 0 {
		return math3d.Identity()
	}
	s := size / maxDim
	return math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate()))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Indices returns the faces as a flat index list, three entries per triangle.
func (m *Mesh) Indices() []int {
	out := make([]int, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		out = append(out, f.V[0], f.V[1], f.V[2])
	}
	return out
}

// Positions returns a copy of the model-space vertex positions.
func (m *Mesh) Positions() []math3d.Vec3 {
	out := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// UVs returns a copy of the vertex texture coordinates.
func (m *Mesh) UVs() []math3d.Vec2 {
	out := make([]math3d.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.UV
	}
	return out
}

// GetVertex returns the position, normal, and UV for vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
