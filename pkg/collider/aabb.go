package collider

import (
	"math"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// aabb is an axis-aligned bounding box in model space.
type aabb struct {
	Min, Max math3d.Vec3
}

// boundsOf returns the box around points, padded slightly so flat meshes
// still have volume for the slab test.
func boundsOf(points []math3d.Vec3) aabb {
	if len(points) == 0 {
		return aabb{}
	}
	b := aabb{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	pad := 1e-9 * (1 + b.Max.Sub(b.Min).Len())
	b.Min = b.Min.Sub(math3d.V3(pad, pad, pad))
	b.Max = b.Max.Add(math3d.V3(pad, pad, pad))
	return b
}

// intersect runs the slab test and returns the entry parameter, or the exit
// parameter when the ray starts inside.
func (b aabb) intersect(r math3d.Ray) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := range 3 {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
