package paint

import (
	"image/color"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

var red = color.RGBA{R: 255, A: 255}

// orthoView maps world XY to screen pixels by a uniform scale, looking down
// -Z. Points above maxZ are treated as behind the camera.
type orthoView struct {
	scale float64
	maxZ  float64
}

func newOrthoView(scale float64) orthoView {
	return orthoView{scale: scale, maxZ: 10}
}

func (v orthoView) WorldToScreen(p math3d.Vec3) (math3d.Vec2, bool) {
	if p.Z >= v.maxZ {
		return math3d.Vec2{}, false
	}
	return math3d.V2(p.X*v.scale, p.Y*v.scale), true
}

func (v orthoView) ScreenToRay(s math3d.Vec2) math3d.Ray {
	return math3d.NewRay(math3d.V3(s.X/v.scale, s.Y/v.scale, v.maxZ), math3d.V3(0, 0, -1))
}

// colliderFunc adapts a function to Collider.
type colliderFunc func(math3d.Ray) (Hit, bool)

func (f colliderFunc) Raycast(r math3d.Ray) (Hit, bool) { return f(r) }

// recordingCollider counts raycasts per ray origin.
type recordingCollider struct {
	inner Collider
	casts map[math3d.Vec3]int
	total int
}

func newRecordingCollider(inner Collider) *recordingCollider {
	return &recordingCollider{inner: inner, casts: make(map[math3d.Vec3]int)}
}

func (r *recordingCollider) Raycast(ray math3d.Ray) (Hit, bool) {
	r.casts[ray.Origin]++
	r.total++
	return r.inner.Raycast(ray)
}

// everywhere hits triangle 0 for every ray.
var everywhere = colliderFunc(func(math3d.Ray) (Hit, bool) {
	return Hit{Triangle: 0}, true
})

// nowhere misses every ray.
var nowhere = colliderFunc(func(math3d.Ray) (Hit, bool) {
	return Hit{}, false
})
