package paint

import (
	"image"
	"math"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// UVRect is an axis-aligned rectangle in UV space. A rectangle with zero
// width or height is empty.
type UVRect struct {
	X, Y float64 // Minimum corner
	W, H float64 // Extent
}

// Empty reports whether the rectangle is the empty sentinel.
func (r UVRect) Empty() bool {
	return r.W == 0 || r.H == 0
}

// Max returns the maximum corner.
func (r UVRect) Max() math3d.Vec2 {
	return math3d.V2(r.X+r.W, r.Y+r.H)
}

// TriangleUVRect returns the bounding rectangle of three UV coordinates.
func TriangleUVRect(a, b, c math3d.Vec2) UVRect {
	lo := a.Min(b).Min(c)
	hi := a.Max(b).Max(c)
	return UVRect{X: lo.X, Y: lo.Y, W: hi.X - lo.X, H: hi.Y - lo.Y}
}

// MergeRects returns the bounding rectangle of a and b. An empty operand is
// absorbed and the other returned unchanged.
func MergeRects(a, b UVRect) UVRect {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	lo := math3d.V2(a.X, a.Y).Min(math3d.V2(b.X, b.Y))
	hi := a.Max().Max(b.Max())
	return UVRect{X: lo.X, Y: lo.Y, W: hi.X - lo.X, H: hi.Y - lo.Y}
}

// triangleUVs returns the UVs of triangle t.
func triangleUVs(g Geometry, t int) (a, b, c math3d.Vec2) {
	i := t * 3
	return g.UVs[g.Indices[i]], g.UVs[g.Indices[i+1]], g.UVs[g.Indices[i+2]]
}

// AggregateUVRect folds MergeRects over the UV rectangles of tris.
func AggregateUVRect(g Geometry, tris []int) UVRect {
	var agg UVRect
	for _, t := range tris {
		agg = MergeRects(agg, TriangleUVRect(triangleUVs(g, t)))
	}
	return agg
}

// TexelWindow scales r to a texture of w x h texels, flooring origin and
// extent independently.
func TexelWindow(r UVRect, w, h int) image.Rectangle {
	x := int(math.Floor(r.X * float64(w)))
	y := int(math.Floor(r.Y * float64(h)))
	return image.Rect(x, y,
		x+int(math.Floor(r.W*float64(w))),
		y+int(math.Floor(r.H*float64(h))))
}
