package math3d

// Ray is a half-line starting at Origin and extending along Direction.
// Direction is not required to be normalized; parametric distances are
// measured in multiples of its length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray with a normalized direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray transformed by m. The origin is transformed as
// a point and the direction as a direction, so parameters stay comparable
// between the two spaces.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{
		Origin:    m.MulVec3(r.Origin),
		Direction: m.MulVec3Dir(r.Direction),
	}
}
