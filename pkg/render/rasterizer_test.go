package render

import (
	"math"
	"testing"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

type mockVertex struct {
	pos    math3d.Vec3
	normal math3d.Vec3
	uv     math3d.Vec2
}

// mockMesh implements MeshRenderer for testing.
type mockMesh struct {
	vertices []mockVertex
	faces    [][3]int
}

func (m *mockMesh) VertexCount() int     { return len(m.vertices) }
func (m *mockMesh) TriangleCount() int   { return len(m.faces) }
func (m *mockMesh) GetFace(i int) [3]int { return m.faces[i] }
func (m *mockMesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.vertices[i]
	return v.pos, v.normal, v.uv
}

// quadMesh is a 10x10 quad on the XY plane facing +Z, wound counter-clockwise.
func quadMesh() *mockMesh {
	n := math3d.V3(0, 0, 1)
	return &mockMesh{
		vertices: []mockVertex{
			{math3d.V3(-5, -5, 0), n, math3d.V2(0, 0)},
			{math3d.V3(5, -5, 0), n, math3d.V2(1, 0)},
			{math3d.V3(5, 5, 0), n, math3d.V2(1, 1)},
			{math3d.V3(-5, 5, 0), n, math3d.V2(0, 1)},
		},
		faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}

// createTestRasterizer creates a rasterizer for testing.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	camera := NewCamera()
	camera.SetPosition(math3d.V3(0, 0, 10))
	camera.LookAt(math3d.Zero3())
	camera.SetAspectRatio(float64(width) / float64(height))
	rasterizer := NewRasterizer(camera, fb)
	return rasterizer, fb
}

func countLit(fb *Framebuffer) int {
	n := 0
	for _, c := range fb.Pixels {
		if c.R > 0 || c.G > 0 || c.B > 0 {
			n++
		}
	}
	return n
}

func TestBarycentric(t *testing.T) {
	tests := []struct {
		name     string
		px, py   float64
		expected math3d.Vec3
	}{
		{"vertex 0", 0, 0, math3d.V3(1, 0, 0)},
		{"vertex 1", 1, 0, math3d.V3(0, 1, 0)},
		{"vertex 2", 0, 1, math3d.V3(0, 0, 1)},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Triangle: (0,0), (1,0), (0,1)
			bc := barycentric(0, 0, 1, 0, 0, 1, tc.px, tc.py)

			if math.Abs(bc.X-tc.expected.X) > 0.001 ||
				math.Abs(bc.Y-tc.expected.Y) > 0.001 ||
				math.Abs(bc.Z-tc.expected.Z) > 0.001 {
				t.Errorf("barycentric(%v, %v) = %v, want %v", tc.px, tc.py, bc, tc.expected)
			}
		})
	}

	t.Run("outside triangle", func(t *testing.T) {
		bc := barycentric(0, 0, 1, 0, 0, 1, -1, -1)
		if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 {
			t.Error("point outside triangle should have negative barycentric coordinate")
		}
	})
}

func TestDrawMeshTextured(t *testing.T) {
	r, fb := createTestRasterizer(64, 64)
	fb.Clear(ColorBlack)

	tex := NewSolidTexture(4, 4, RGB(200, 100, 50))
	r.DrawMeshTextured(quadMesh(), math3d.Identity(), tex, math3d.V3(0, 0, 1))

	if countLit(fb) == 0 {
		t.Fatal("DrawMeshTextured should draw visible pixels")
	}
	center := fb.GetPixel(32, 32)
	// Light faces the quad head on, so intensity is 1.
	if center != RGB(200, 100, 50) {
		t.Errorf("center pixel = %v, want texture color", center)
	}
	if r.Stats.Triangles != 2 || r.Stats.Culled != 0 {
		t.Errorf("stats = %+v, want 2 triangles none culled", r.Stats)
	}
}

func TestDrawMeshTextured_SamplesUV(t *testing.T) {
	r, fb := createTestRasterizer(64, 64)
	fb.Clear(ColorBlack)

	// Left half red, right half blue.
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, RGB(255, 0, 0))
	tex.SetPixel(1, 0, RGB(0, 0, 255))

	r.DrawMeshTextured(quadMesh(), math3d.Identity(), tex, math3d.V3(0, 0, 1))

	left := fb.GetPixel(28, 32)
	right := fb.GetPixel(36, 32)
	if left.R == 0 || left.B != 0 {
		t.Errorf("left pixel = %v, want red", left)
	}
	if right.B == 0 || right.R != 0 {
		t.Errorf("right pixel = %v, want blue", right)
	}
}

func TestBackfaceCulling(t *testing.T) {
	back := quadMesh()
	for i, f := range back.faces {
		back.faces[i] = [3]int{f[0], f[2], f[1]}
	}
	tex := NewSolidTexture(1, 1, ColorWhite)

	t.Run("culled", func(t *testing.T) {
		r, fb := createTestRasterizer(32, 32)
		r.DrawMeshTextured(back, math3d.Identity(), tex, math3d.V3(0, 0, 1))
		if n := countLit(fb); n != 0 {
			t.Errorf("back faces drew %d pixels", n)
		}
		if r.Stats.Culled != 2 {
			t.Errorf("Culled = %d, want 2", r.Stats.Culled)
		}
	})

	t.Run("two sided", func(t *testing.T) {
		r, fb := createTestRasterizer(32, 32)
		r.DisableBackfaceCulling = true
		r.DrawMeshTextured(back, math3d.Identity(), tex, math3d.V3(0, 0, 1))
		if countLit(fb) == 0 {
			t.Error("two-sided rendering should draw back faces")
		}
	})
}

func TestDepthTest(t *testing.T) {
	r, fb := createTestRasterizer(32, 32)
	near := NewSolidTexture(1, 1, RGB(0, 255, 0))
	far := NewSolidTexture(1, 1, RGB(255, 0, 0))
	light := math3d.V3(0, 0, 1)

	r.DrawMeshTextured(quadMesh(), math3d.Translate(math3d.V3(0, 0, 1)), near, light)
	r.DrawMeshTextured(quadMesh(), math3d.Identity(), far, light)

	if c := fb.GetPixel(16, 16); c.G != 255 || c.R != 0 {
		t.Errorf("center = %v, nearer quad should win", c)
	}

	r.ClearDepth()
	r.DrawMeshTextured(quadMesh(), math3d.Identity(), far, light)
	if c := fb.GetPixel(16, 16); c.R != 255 {
		t.Errorf("after ClearDepth center = %v, want far quad drawn", c)
	}
}

func TestBehindCameraDropped(t *testing.T) {
	r, fb := createTestRasterizer(32, 32)
	tex := NewSolidTexture(1, 1, ColorWhite)
	r.DrawMeshTextured(quadMesh(), math3d.Translate(math3d.V3(0, 0, 20)), tex, math3d.V3(0, 0, 1))
	if n := countLit(fb); n != 0 {
		t.Errorf("geometry behind camera drew %d pixels", n)
	}
}

func BenchmarkDrawMeshTextured(b *testing.B) {
	r, fb := createTestRasterizer(160, 90)
	tex := NewSolidTexture(64, 64, ColorWhite)
	mesh := quadMesh()
	light := math3d.V3(0, 0, 1)

	for b.Loop() {
		fb.Clear(ColorBlack)
		r.ClearDepth()
		r.DrawMeshTextured(mesh, math3d.Identity(), tex, light)
	}
}
