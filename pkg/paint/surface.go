// Package paint projects brush shapes onto mesh surfaces and writes the
// covered texels into the mesh texture.
//
// A paint call runs in four stages: triangle discovery by adaptive quadtree
// raycasting from the brush, aggregation of the affected triangles' UV
// bounds, barycentric mapping of every texel in that window back to a world
// position, and a containment test against the brush shape.
package paint

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

var (
	// ErrNilTexture is returned when Paint is called without a texture.
	ErrNilTexture = errors.New("nil texture")
	// ErrNilSurface is returned when Paint is called without a surface.
	ErrNilSurface = errors.New("nil surface")
	// ErrInvalidBrush wraps brush precondition failures.
	ErrInvalidBrush = errors.New("invalid brush")
	// ErrGeometry wraps malformed surface geometry.
	ErrGeometry = errors.New("invalid geometry")
)

// Hit is the result of a successful raycast.
type Hit struct {
	Triangle int         // Index of the triangle hit (face index)
	Point    math3d.Vec3 // World-space hit point
	Distance float64     // World-space distance from the ray origin
}

// Collider answers world-space raycasts against a mesh.
type Collider interface {
	Raycast(ray math3d.Ray) (Hit, bool)
}

// Geometry is the triangle data of a paintable mesh in model space.
// Triangle t uses vertices Indices[3t], Indices[3t+1] and Indices[3t+2].
type Geometry struct {
	Indices   []int
	Positions []math3d.Vec3
	UVs       []math3d.Vec2
}

// TriangleCount returns the number of triangles.
func (g Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Validate checks that the index list is whole triangles and that every
// index addresses both a position and a UV.
func (g Geometry) Validate() error {
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrGeometry, len(g.Indices))
	}
	if len(g.UVs) != len(g.Positions) {
		return fmt.Errorf("%w: %d positions but %d uvs", ErrGeometry, len(g.Positions), len(g.UVs))
	}
	for i, idx := range g.Indices {
		if idx < 0 || idx >= len(g.Positions) {
			return fmt.Errorf("%w: index %d at %d out of range", ErrGeometry, idx, i)
		}
	}
	return nil
}

// Surface is a paintable mesh: a collider plus its geometry and
// model-to-world transform.
type Surface interface {
	Collider
	Geometry() Geometry
	Transform() math3d.Mat4
}

// Texture is the pixel store that receives paint. Regions are addressed in
// texel space with the origin at the bottom-left, so texel (x, y) covers
// UV (x/width, y/height). ReadRegion returns rows starting at r.Min.Y and
// WriteRegion accepts the same layout.
type Texture interface {
	Size() (width, height int)
	ReadRegion(r image.Rectangle) []color.RGBA
	WriteRegion(r image.Rectangle, pixels []color.RGBA)
}

// View maps between world space and screen pixels for screen-space brushes.
type View interface {
	// WorldToScreen projects a world point. ok is false when the point
	// cannot be projected (at or behind the camera plane).
	WorldToScreen(world math3d.Vec3) (screen math3d.Vec2, ok bool)
	// ScreenToRay returns the world-space ray through a screen point.
	ScreenToRay(screen math3d.Vec2) math3d.Ray
}
