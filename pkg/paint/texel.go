package paint

import (
	"image"
	"image/color"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// Barycentric acceptance band. Samples slightly outside a triangle are
// accepted so that texels on shared UV edges are not left unpainted.
const (
	baryMin    = -0.1
	baryMax    = 1.1
	baryMaxMag = 1.1
)

// degenerateEpsilon is the relative denominator below which a UV triangle
// is treated as having no area.
const degenerateEpsilon = 1e-10

// Barycentric returns the barycentric coordinates (u, v, w) of p with
// respect to triangle (a, b, c), so that p = u*a + v*b + w*c. ok is false
// when the triangle is degenerate.
func Barycentric(p, a, b, c math3d.Vec2) (bary math3d.Vec3, ok bool) {
	if degenerateUV(a, b, c) {
		return math3d.Vec3{}, false
	}
	v0, v1, v2 := b.Sub(a), c.Sub(a), p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	return math3d.V3(1-v-w, v, w), true
}

// degenerateUV reports whether triangle (a, b, c) has no usable area.
func degenerateUV(a, b, c math3d.Vec2) bool {
	v0, v1 := b.Sub(a), c.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	return d00 == 0 || d11 == 0 || d00*d11-d01*d01 <= degenerateEpsilon*d00*d11
}

func acceptBarycentric(b math3d.Vec3) bool {
	if b.X < baryMin || b.Y < baryMin || b.Z < baryMin ||
		b.X > baryMax || b.Y > baryMax || b.Z > baryMax {
		return false
	}
	return b.Len() <= baryMaxMag
}

// texelJob is the per-triangle input to paintTriangle.
type texelJob struct {
	brush     Brush
	transform math3d.Mat4
	pixels    []color.RGBA    // shared window, row-major from window.Min
	window    image.Rectangle // texel window of pixels
	agg       UVRect          // UV rect the window was derived from
	texW      int
	texH      int
}

// paintTriangle paints the texels of triangle t that fall inside the brush
// and returns how many were written.
func (j *texelJob) paintTriangle(g Geometry, t int) int {
	i := t * 3
	ia, ib, ic := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
	uvA, uvB, uvC := g.UVs[ia], g.UVs[ib], g.UVs[ic]
	pA, pB, pC := g.Positions[ia], g.Positions[ib], g.Positions[ic]

	// Degenerate UV triangles own no texels.
	if degenerateUV(uvA, uvB, uvC) {
		return 0
	}

	rect := TriangleUVRect(uvA, uvB, uvC)
	tw, th := float64(j.texW), float64(j.texH)

	win := TexelWindow(UVRect{X: rect.X - j.agg.X, Y: rect.Y - j.agg.Y, W: rect.W, H: rect.H}, j.texW, j.texH)
	stride, rows := j.window.Dx(), j.window.Dy()

	painted := 0
	for x := 0; x < win.Dx(); x++ {
		wx := win.Min.X + x
		if wx < 0 || wx >= stride {
			continue
		}
		for y := 0; y < win.Dy(); y++ {
			wy := win.Min.Y + y
			if wy < 0 || wy >= rows {
				continue
			}

			uv := math3d.V2(rect.X+float64(x)/tw, rect.Y+float64(y)/th)
			bary, ok := Barycentric(uv, uvA, uvB, uvC)
			if !ok || !acceptBarycentric(bary) {
				continue
			}

			model := pA.Scale(bary.X).Add(pB.Scale(bary.Y)).Add(pC.Scale(bary.Z))
			if !j.brush.ContainsWorldPoint(j.transform.MulVec3(model)) {
				continue
			}
			j.pixels[wy*stride+wx] = j.brush.Colour()
			painted++
		}
	}
	return painted
}
