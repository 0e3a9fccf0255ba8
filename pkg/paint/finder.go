package paint

import (
	"slices"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// MinRegionSize is the side length, in projection-space units, at or below
// which a search region is never subdivided.
const MinRegionSize = 2.0

// Discovery is the outcome of one triangle search.
type Discovery struct {
	Triangles []int // Unique triangle indices in discovery order
	Regions   int   // Regions popped from the work stack
	Rays      int   // Rays actually cast against the collider
}

type rayResult struct {
	hit      bool
	triangle int
}

// region is a square in projection space.
type region struct {
	min  math3d.Vec2
	side float64
}

// finder holds the state of one discovery pass.
type finder struct {
	brush    Brush
	collider Collider
	cache    map[math3d.Vec2]rayResult
	rays     int
}

func (f *finder) cast(p math3d.Vec2) rayResult {
	if r, ok := f.cache[p]; ok {
		return r
	}
	f.rays++
	var r rayResult
	if hit, ok := f.collider.Raycast(f.brush.ProbeRay(p)); ok {
		r = rayResult{hit: true, triangle: hit.Triangle}
	}
	f.cache[p] = r
	return r
}

// FindTriangles searches the brush footprint for mesh triangles with an
// adaptive quadtree of raycasts. A region whose four corners hit more than
// one distinct triangle is split into quadrants until regions reach
// MinRegionSize. If the ray through the anchor misses, nothing is found.
func FindTriangles(b Brush, c Collider) Discovery {
	f := &finder{
		brush:    b,
		collider: c,
		cache:    make(map[math3d.Vec2]rayResult),
	}

	var d Discovery
	anchor := b.Anchor()
	first := f.cast(anchor)
	if !first.hit {
		d.Rays = f.rays
		return d
	}
	d.Triangles = append(d.Triangles, first.triangle)
	seen := map[int]struct{}{first.triangle: {}}

	size := b.FootprintSize()
	stack := []region{{
		min:  anchor.Sub(math3d.V2(size*0.5, size*0.5)),
		side: size,
	}}

	corners := make([]int, 0, 4)
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d.Regions++

		lo, hi := r.min, r.min.Add(math3d.V2(r.side, r.side))
		corners = corners[:0]
		for _, p := range [4]math3d.Vec2{
			{X: hi.X, Y: hi.Y},
			{X: lo.X, Y: hi.Y},
			{X: hi.X, Y: lo.Y},
			{X: lo.X, Y: lo.Y},
		} {
			res := f.cast(p)
			if res.hit && !slices.Contains(corners, res.triangle) {
				corners = append(corners, res.triangle)
			}
		}

		if len(corners) > 1 && r.side > MinRegionSize {
			half := r.side * 0.5
			stack = append(stack,
				region{min: lo, side: half},
				region{min: math3d.V2(lo.X, lo.Y+half), side: half},
				region{min: math3d.V2(lo.X+half, lo.Y), side: half},
				region{min: math3d.V2(lo.X+half, lo.Y+half), side: half},
			)
		}

		for _, t := range corners {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				d.Triangles = append(d.Triangles, t)
			}
		}
	}

	d.Rays = f.rays
	return d
}
