package paint

import (
	"fmt"
	"image/color"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// Kind identifies a brush variant.
type Kind int

const (
	// KindCircle is a screen-space disc around the anchor.
	KindCircle Kind = iota + 1
	// KindRectangle is a screen-space axis-aligned box around the anchor.
	KindRectangle
	// KindProjectedRectangle is a box in the projector's local XY plane,
	// cast along the projector's forward (-Z) axis.
	KindProjectedRectangle
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindProjectedRectangle:
		return "projected-rectangle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Brush is an immutable paint shape. Build one per paint call with
// NewCircleBrush, NewRectangleBrush or NewProjectedRectangleBrush.
type Brush struct {
	kind  Kind
	color color.RGBA

	radius float64     // circle radius in pixels
	size   math3d.Vec2 // full rectangle extent (pixels or projector units)

	// Screen variants
	view   View
	anchor math3d.Vec2

	// Projected variant
	projector    math3d.Mat4 // local-to-world
	projectorInv math3d.Mat4
}

// NewCircleBrush creates a screen-space circle of the given pixel radius
// centered on anchor.
func NewCircleBrush(c color.RGBA, radius float64, view View, anchor math3d.Vec2) Brush {
	return Brush{kind: KindCircle, color: c, radius: radius, view: view, anchor: anchor}
}

// NewRectangleBrush creates a screen-space axis-aligned rectangle of the
// given full pixel size centered on anchor.
func NewRectangleBrush(c color.RGBA, size math3d.Vec2, view View, anchor math3d.Vec2) Brush {
	return Brush{kind: KindRectangle, color: c, size: size, view: view, anchor: anchor}
}

// NewProjectedRectangleBrush creates a rectangle of the given full size in
// the projector's local XY plane, centered on the projector origin.
func NewProjectedRectangleBrush(c color.RGBA, size math3d.Vec2, projector math3d.Mat4) Brush {
	return Brush{
		kind:         KindProjectedRectangle,
		color:        c,
		size:         size,
		projector:    projector,
		projectorInv: projector.Inverse(),
	}
}

// Kind returns the brush variant.
func (b Brush) Kind() Kind { return b.kind }

// Colour returns the paint color.
func (b Brush) Colour() color.RGBA { return b.color }

// Validate reports whether the brush can be painted with.
func (b Brush) Validate() error {
	switch b.kind {
	case KindCircle:
		if b.view == nil {
			return fmt.Errorf("%w: circle brush without a view", ErrInvalidBrush)
		}
		if !(b.radius > 0) {
			return fmt.Errorf("%w: circle radius %v", ErrInvalidBrush, b.radius)
		}
	case KindRectangle:
		if b.view == nil {
			return fmt.Errorf("%w: rectangle brush without a view", ErrInvalidBrush)
		}
		if !(b.size.X > 0 && b.size.Y > 0) {
			return fmt.Errorf("%w: rectangle size %v", ErrInvalidBrush, b.size)
		}
	case KindProjectedRectangle:
		if !(b.size.X > 0 && b.size.Y > 0) {
			return fmt.Errorf("%w: projected size %v", ErrInvalidBrush, b.size)
		}
		if !b.projector.Invertible() {
			return fmt.Errorf("%w: singular projector transform", ErrInvalidBrush)
		}
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidBrush, b.kind)
	}
	return nil
}

// FootprintSize returns the side of the square searched for triangles,
// in the brush's projection space.
func (b Brush) FootprintSize() float64 {
	switch b.kind {
	case KindCircle:
		return 2 * b.radius
	case KindRectangle, KindProjectedRectangle:
		return max(b.size.X, b.size.Y)
	}
	return 0
}

// Anchor returns the center of the footprint in projection space.
func (b Brush) Anchor() math3d.Vec2 {
	switch b.kind {
	case KindCircle, KindRectangle:
		return b.anchor
	}
	return math3d.Vec2{}
}

// ProbeRay maps a projection-space point to the world ray used to find the
// surface under it.
func (b Brush) ProbeRay(p math3d.Vec2) math3d.Ray {
	switch b.kind {
	case KindCircle, KindRectangle:
		return b.view.ScreenToRay(p)
	case KindProjectedRectangle:
		origin := b.projector.MulVec3(math3d.V3(p.X, p.Y, 0))
		return math3d.NewRay(origin, b.projector.MulVec3Dir(math3d.Forward()))
	}
	return math3d.Ray{}
}

// ContainsWorldPoint reports whether a world point lies inside the stroke
// volume. Boundaries are exclusive.
func (b Brush) ContainsWorldPoint(world math3d.Vec3) bool {
	switch b.kind {
	case KindCircle:
		screen, ok := b.view.WorldToScreen(world)
		if !ok {
			return false
		}
		return screen.Distance(b.anchor) < b.radius
	case KindRectangle:
		screen, ok := b.view.WorldToScreen(world)
		if !ok {
			return false
		}
		return insideBox(screen.Sub(b.anchor), b.size)
	case KindProjectedRectangle:
		local := b.projectorInv.MulVec3(world)
		return insideBox(local.XY(), b.size)
	}
	return false
}

// AffectedTriangles returns the triangles under the brush footprint.
func (b Brush) AffectedTriangles(c Collider) []int {
	return FindTriangles(b, c).Triangles
}

// insideBox reports whether p lies strictly within a box of the given full
// size centered on the origin.
func insideBox(p, size math3d.Vec2) bool {
	hx, hy := size.X*0.5, size.Y*0.5
	return p.X > -hx && p.X < hx && p.Y > -hy && p.Y < hy
}
