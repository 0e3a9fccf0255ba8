package paint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

func TestBrushValidate(t *testing.T) {
	view := newOrthoView(1)
	tests := []struct {
		name  string
		brush Brush
		ok    bool
	}{
		{"circle", NewCircleBrush(red, 5, view, math3d.V2(0, 0)), true},
		{"rectangle", NewRectangleBrush(red, math3d.V2(4, 2), view, math3d.V2(0, 0)), true},
		{"projected", NewProjectedRectangleBrush(red, math3d.V2(3, 1.5), math3d.Identity()), true},
		{"zero value", Brush{}, false},
		{"circle without view", NewCircleBrush(red, 5, nil, math3d.V2(0, 0)), false},
		{"zero radius", NewCircleBrush(red, 0, view, math3d.V2(0, 0)), false},
		{"NaN radius", NewCircleBrush(red, math.NaN(), view, math3d.V2(0, 0)), false},
		{"rectangle without view", NewRectangleBrush(red, math3d.V2(4, 2), nil, math3d.V2(0, 0)), false},
		{"flat rectangle", NewRectangleBrush(red, math3d.V2(4, 0), view, math3d.V2(0, 0)), false},
		{"negative projected", NewProjectedRectangleBrush(red, math3d.V2(-1, 1), math3d.Identity()), false},
		{"singular projector", NewProjectedRectangleBrush(red, math3d.V2(1, 1), math3d.Scale(math3d.V3(1, 1, 0))), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.brush.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidBrush)
			}
		})
	}
}

func TestBrushFootprintAndAnchor(t *testing.T) {
	view := newOrthoView(1)

	c := NewCircleBrush(red, 10, view, math3d.V2(3, 4))
	assert.Equal(t, 20.0, c.FootprintSize())
	assert.Equal(t, math3d.V2(3, 4), c.Anchor())
	assert.Equal(t, red, c.Colour())
	assert.Equal(t, KindCircle, c.Kind())

	r := NewRectangleBrush(red, math3d.V2(30, 12), view, math3d.V2(1, 1))
	assert.Equal(t, 30.0, r.FootprintSize())

	p := NewProjectedRectangleBrush(red, math3d.V2(3, 1.5), math3d.Translate(math3d.V3(9, 9, 9)))
	assert.Equal(t, 3.0, p.FootprintSize())
	assert.Equal(t, math3d.Vec2{}, p.Anchor())
	assert.Equal(t, "projected-rectangle", p.Kind().String())
}

func TestCircleContains(t *testing.T) {
	b := NewCircleBrush(red, 10, newOrthoView(1), math3d.V2(0, 0))

	assert.True(t, b.ContainsWorldPoint(math3d.V3(0, 0, 0)))
	assert.True(t, b.ContainsWorldPoint(math3d.V3(6, 7.9, 0)))
	assert.False(t, b.ContainsWorldPoint(math3d.V3(6, 8, 0)), "boundary is exclusive")
	assert.False(t, b.ContainsWorldPoint(math3d.V3(11, 0, 0)))
	assert.False(t, b.ContainsWorldPoint(math3d.V3(0, 0, 20)), "unprojectable point")
}

func TestRectangleContains(t *testing.T) {
	b := NewRectangleBrush(red, math3d.V2(4, 2), newOrthoView(2), math3d.V2(10, 10))

	// Screen = world * 2, so the box spans world x in (4, 6), y in (4.5, 5.5).
	assert.True(t, b.ContainsWorldPoint(math3d.V3(5, 5, 0)))
	assert.True(t, b.ContainsWorldPoint(math3d.V3(5.9, 5.4, 0)))
	assert.False(t, b.ContainsWorldPoint(math3d.V3(6, 5, 0)))
	assert.False(t, b.ContainsWorldPoint(math3d.V3(5, 5.6, 0)))
}

func TestProjectedRectangleContains(t *testing.T) {
	projector := math3d.Compose(math3d.V3(2, 1, 5), 0.3, -0.4, 0.1, math3d.V3(1, 1, 1))
	b := NewProjectedRectangleBrush(red, math3d.V2(3, 1.5), projector)
	require.NoError(t, b.Validate())

	tests := []struct {
		local math3d.Vec3
		in    bool
	}{
		{math3d.V3(1.4, 0.7, 0), true},
		{math3d.V3(1.6, 0.7, 0), false},
		{math3d.V3(-1.4, -0.7, 0), true},
		{math3d.V3(1.4, 0.8, 0), false},
		{math3d.V3(0, 0, -42), true}, // depth is ignored
	}
	for _, tc := range tests {
		world := projector.MulVec3(tc.local)
		assert.Equal(t, tc.in, b.ContainsWorldPoint(world), "local %v", tc.local)
	}
}

func TestProbeRay(t *testing.T) {
	t.Run("screen", func(t *testing.T) {
		view := newOrthoView(2)
		b := NewCircleBrush(red, 1, view, math3d.V2(0, 0))
		assert.Equal(t, view.ScreenToRay(math3d.V2(4, 6)), b.ProbeRay(math3d.V2(4, 6)))
	})

	t.Run("projector", func(t *testing.T) {
		projector := math3d.Translate(math3d.V3(0, 0, 3)).Mul(math3d.RotateY(math.Pi / 2))
		b := NewProjectedRectangleBrush(red, math3d.V2(1, 1), projector)
		ray := b.ProbeRay(math3d.V2(1, 2))

		want := projector.MulVec3(math3d.V3(1, 2, 0))
		assert.InDelta(t, 0, ray.Origin.Distance(want), 1e-12)
		// Local -Z turned a quarter around Y points along world -X.
		assert.InDelta(t, -1, ray.Direction.X, 1e-12)
		assert.InDelta(t, 0, ray.Direction.Z, 1e-12)
		assert.InDelta(t, 1, ray.Direction.Len(), 1e-12)
	})
}

func TestContainmentMonotonic(t *testing.T) {
	view := newOrthoView(1)
	anchor := math3d.V2(0.3, -0.2)

	var points []math3d.Vec3
	for x := -12.0; x <= 12; x += 0.75 {
		for y := -12.0; y <= 12; y += 0.75 {
			points = append(points, math3d.V3(x, y, 0))
		}
	}

	for _, pair := range [][2]float64{{8, 5}, {5, 1}, {3, 2.999}} {
		big := NewCircleBrush(red, pair[0], view, anchor)
		small := NewCircleBrush(red, pair[1], view, anchor)
		for _, p := range points {
			if small.ContainsWorldPoint(p) {
				assert.True(t, big.ContainsWorldPoint(p), "radius %v contains %v but %v does not", pair[1], p, pair[0])
			}
		}
	}

	big := NewRectangleBrush(red, math3d.V2(10, 6), view, anchor)
	for _, size := range []math3d.Vec2{math3d.V2(9, 6), math3d.V2(10, 2), math3d.V2(1, 1)} {
		small := NewRectangleBrush(red, size, view, anchor)
		for _, p := range points {
			if small.ContainsWorldPoint(p) {
				assert.True(t, big.ContainsWorldPoint(p), "size %v contains %v", size, p)
			}
		}
	}
}
