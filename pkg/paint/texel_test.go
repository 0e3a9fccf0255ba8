package paint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

func TestBarycentric(t *testing.T) {
	a, b, c := math3d.V2(0.1, 0.2), math3d.V2(0.9, 0.3), math3d.V2(0.4, 0.8)
	centroid := a.Add(b).Add(c).Scale(1.0 / 3)

	tests := []struct {
		name string
		p    math3d.Vec2
		want math3d.Vec3
	}{
		{"vertex a", a, math3d.V3(1, 0, 0)},
		{"vertex b", b, math3d.V3(0, 1, 0)},
		{"vertex c", c, math3d.V3(0, 0, 1)},
		{"centroid", centroid, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Barycentric(tc.p, a, b, c)
			require.True(t, ok)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tc.want.Z, got.Z, 1e-9)
		})
	}
}

func TestBarycentricDegenerate(t *testing.T) {
	p := math3d.V2(0.5, 0.5)
	tests := []struct {
		name    string
		a, b, c math3d.Vec2
	}{
		{"point", math3d.V2(0.3, 0.3), math3d.V2(0.3, 0.3), math3d.V2(0.3, 0.3)},
		{"collinear", math3d.V2(0, 0), math3d.V2(0.5, 0.5), math3d.V2(1, 1)},
		{"repeated vertex", math3d.V2(0, 0), math3d.V2(0, 0), math3d.V2(1, 0)},
		{"needle", math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0.5, 1e-9)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Barycentric(p, tc.a, tc.b, tc.c)
			assert.False(t, ok)
			assert.True(t, degenerateUV(tc.a, tc.b, tc.c))
		})
	}

	assert.False(t, degenerateUV(math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1)))
}

func TestAcceptBarycentric(t *testing.T) {
	tests := []struct {
		b    math3d.Vec3
		want bool
	}{
		{math3d.V3(1.0/3, 1.0/3, 1.0/3), true},
		{math3d.V3(1, 0, 0), true},
		{math3d.V3(-0.05, 0.55, 0.5), true},
		{math3d.V3(-0.11, 0.6, 0.51), false},
		{math3d.V3(1.05, -0.05, 0), true},
		{math3d.V3(1.12, -0.06, -0.06), false},
		{math3d.V3(-0.1, 0.8, 0.3), true},
		{math3d.V3(1.05, 0.1, -0.1), true},
		// Every component in band but the norm exceeds 1.1.
		{math3d.V3(1.1, 0.5, -0.1), false},
		{math3d.V3(0.8, 0.8, -0.1), false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, acceptBarycentric(tc.b), "%v", tc.b)
	}
}

func TestPaintTriangle(t *testing.T) {
	// Unit square, identity transform, UVs equal to XY.
	g := Geometry{
		Indices: []int{0, 1, 2, 1, 3, 2},
		Positions: []math3d.Vec3{
			math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 1, 0),
		},
		UVs: []math3d.Vec2{
			math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1), math3d.V2(1, 1),
		},
	}
	// A projector covering the whole square from above.
	cover := NewProjectedRectangleBrush(red, math3d.V2(4, 4), math3d.Translate(math3d.V3(0.5, 0.5, 1)))

	const size = 16
	agg := AggregateUVRect(g, []int{0})
	window := TexelWindow(agg, size, size)
	job := &texelJob{
		brush:     cover,
		transform: math3d.Identity(),
		pixels:    make([]color.RGBA, window.Dx()*window.Dy()),
		window:    window,
		agg:       agg,
		texW:      size,
		texH:      size,
	}

	n := job.paintTriangle(g, 0)
	assert.Positive(t, n)

	for y := range size {
		for x := range size {
			painted := job.pixels[y*size+x] == red
			if x+y <= size {
				assert.True(t, painted, "texel (%d,%d) inside triangle", x, y)
			}
			if x+y > size+3 {
				assert.False(t, painted, "texel (%d,%d) beyond the tolerance band", x, y)
			}
		}
	}
}

func TestPaintTriangleDegenerateSkipped(t *testing.T) {
	g := Geometry{
		Indices:   []int{0, 1, 2},
		Positions: []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
		UVs:       []math3d.Vec2{math3d.V2(0, 0), math3d.V2(0.5, 0.5), math3d.V2(1, 1)},
	}
	cover := NewProjectedRectangleBrush(red, math3d.V2(4, 4), math3d.Translate(math3d.V3(0.5, 0.5, 1)))
	window := image.Rect(0, 0, 8, 8)
	job := &texelJob{
		brush:     cover,
		transform: math3d.Identity(),
		pixels:    make([]color.RGBA, 64),
		window:    window,
		agg:       UVRect{W: 1, H: 1},
		texW:      8,
		texH:      8,
	}
	assert.Zero(t, job.paintTriangle(g, 0))
}
