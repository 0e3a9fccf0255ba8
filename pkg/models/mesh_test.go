package models

import (
	"errors"
	"testing"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

func TestNewPlane(t *testing.T) {
	tests := []struct {
		name      string
		cols      int
		rows      int
		vertices  int
		triangles int
	}{
		{"single quad", 1, 1, 4, 2},
		{"grid", 4, 3, 20, 24},
		{"clamped", 0, -2, 4, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewPlane("plane", tc.cols, tc.rows)
			if m.VertexCount() != tc.vertices {
				t.Errorf("vertices = %d, want %d", m.VertexCount(), tc.vertices)
			}
			if m.TriangleCount() != tc.triangles {
				t.Errorf("triangles = %d, want %d", m.TriangleCount(), tc.triangles)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
			if m.BoundsMin != math3d.V3(0, 0, 0) || m.BoundsMax != math3d.V3(1, 1, 0) {
				t.Errorf("bounds = %v..%v", m.BoundsMin, m.BoundsMax)
			}
		})
	}
}

func TestNewPlaneFirstTriangle(t *testing.T) {
	m := NewPlane("plane", 1, 1)
	f := m.GetFace(0)

	want := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	for i, idx := range f {
		_, n, uv := m.GetVertex(idx)
		if uv != want[i] {
			t.Errorf("corner %d uv = %v, want %v", i, uv, want[i])
		}
		if n != math3d.V3(0, 0, 1) {
			t.Errorf("corner %d normal = %v", i, n)
		}
	}
}

func TestValidate(t *testing.T) {
	m := NewPlane("plane", 1, 1)
	m.Faces = append(m.Faces, Face{V: [3]int{0, 1, 9}})

	err := m.Validate()
	if !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("expected ErrInvalidMesh, got %v", err)
	}
}

func TestFlatExports(t *testing.T) {
	m := NewPlane("plane", 2, 1)

	idx := m.Indices()
	if len(idx) != m.TriangleCount()*3 {
		t.Fatalf("indices = %d, want %d", len(idx), m.TriangleCount()*3)
	}
	for i, f := range m.Faces {
		if idx[i*3] != f.V[0] || idx[i*3+1] != f.V[1] || idx[i*3+2] != f.V[2] {
			t.Errorf("face %d flattened incorrectly", i)
		}
	}

	pos := m.Positions()
	uvs := m.UVs()
	if len(pos) != m.VertexCount() || len(uvs) != m.VertexCount() {
		t.Fatal("attribute exports should match the vertex count")
	}

	// Exports are copies
	pos[0] = math3d.V3(9, 9, 9)
	if m.Vertices[0].Position == pos[0] {
		t.Error("Positions should return a copy")
	}
}

func TestNormalizeTransform(t *testing.T) {
	m := NewPlane("plane", 1, 1)
	tr := m.NormalizeTransform(2)

	if got := tr.MulVec3(m.Center()); got.Len() > 1e-9 {
		t.Errorf("center should map to origin, got %v", got)
	}
	if got := tr.MulVec3(math3d.V3(1, 1, 0)); got != math3d.V3(1, 1, 0) {
		t.Errorf("corner should map to (1, 1, 0), got %v", got)
	}
}

func TestMeshClone(t *testing.T) {
	m := NewPlane("original", 1, 1)
	clone := m.Clone()

	clone.Vertices[0].Position = math3d.V3(5, 5, 5)
	if m.Vertices[0].Position == clone.Vertices[0].Position {
		t.Error("Clone should have independent vertex copy")
	}
	if clone.TriangleCount() != m.TriangleCount() {
		t.Error("Clone should preserve faces")
	}
}
