// Package collider answers raycasts against a transformed triangle mesh and
// exposes the mesh as a paintable surface.
package collider

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/meshpaint/pkg/math3d"
	"github.com/taigrr/meshpaint/pkg/models"
	"github.com/taigrr/meshpaint/pkg/paint"
)

// ErrSingularTransform is returned for transforms without an inverse.
var ErrSingularTransform = errors.New("singular transform")

// parallelEpsilon is the ray/plane alignment below which a triangle is
// treated as edge-on and skipped.
const parallelEpsilon = 1e-12

// MeshCollider is a mesh placed in the world by a model-to-world transform.
// Faces are two-sided; Raycast returns the nearest face hit.
type MeshCollider struct {
	mesh      *models.Mesh
	transform math3d.Mat4
	inverse   math3d.Mat4
	bounds    aabb
	geometry  paint.Geometry
}

// New creates a collider for mesh placed by transform.
func New(mesh *models.Mesh, transform math3d.Mat4) (*MeshCollider, error) {
	if mesh == nil {
		return nil, fmt.Errorf("%w: nil mesh", models.ErrInvalidMesh)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	c := &MeshCollider{
		mesh: mesh,
		geometry: paint.Geometry{
			Indices:   mesh.Indices(),
			Positions: mesh.Positions(),
			UVs:       mesh.UVs(),
		},
	}
	c.bounds = boundsOf(c.geometry.Positions)
	if err := c.SetTransform(transform); err != nil {
		return nil, err
	}
	return c, nil
}

// SetTransform moves the collider.
func (c *MeshCollider) SetTransform(m math3d.Mat4) error {
	if !m.Invertible() {
		return ErrSingularTransform
	}
	c.transform = m
	c.inverse = m.Inverse()
	return nil
}

// Mesh returns the underlying mesh.
func (c *MeshCollider) Mesh() *models.Mesh { return c.mesh }

// Transform returns the model-to-world transform.
func (c *MeshCollider) Transform() math3d.Mat4 { return c.transform }

// Geometry returns the mesh triangles in model space.
func (c *MeshCollider) Geometry() paint.Geometry { return c.geometry }

// Raycast intersects a world-space ray with the mesh and returns the nearest
// hit. A ray through an edge shared by two triangles reports one of them.
func (c *MeshCollider) Raycast(ray math3d.Ray) (paint.Hit, bool) {
	local := ray.Transform(c.inverse)
	if _, ok := c.bounds.intersect(local); !ok {
		return paint.Hit{}, false
	}

	best := paint.Hit{Triangle: -1, Distance: math.Inf(1)}
	g := c.geometry
	for t := 0; t < g.TriangleCount(); t++ {
		i := t * 3
		p, ok := intersectTriangle(local,
			g.Positions[g.Indices[i]],
			g.Positions[g.Indices[i+1]],
			g.Positions[g.Indices[i+2]])
		if !ok {
			continue
		}
		world := c.transform.MulVec3(p)
		if d := world.Distance(ray.Origin); d < best.Distance {
			best = paint.Hit{Triangle: t, Point: world, Distance: d}
		}
	}
	return best, best.Triangle >= 0
}

// intersectTriangle intersects the ray with the plane of (p1, p2, p3) and
// keeps the point if it lies inside all three edges. Either winding hits.
func intersectTriangle(r math3d.Ray, p1, p2, p3 math3d.Vec3) (math3d.Vec3, bool) {
	normal := p2.Sub(p1).Cross(p3.Sub(p1))
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return math3d.Vec3{}, false
	}

	t := (normal.Dot(p1) - normal.Dot(r.Origin)) / denom
	if t < 0 {
		return math3d.Vec3{}, false
	}

	p := r.At(t)
	if p2.Sub(p1).Cross(p.Sub(p1)).Dot(normal) < 0 ||
		p3.Sub(p2).Cross(p.Sub(p2)).Dot(normal) < 0 ||
		p1.Sub(p3).Cross(p.Sub(p3)).Dot(normal) < 0 {
		return math3d.Vec3{}, false
	}
	return p, true
}
