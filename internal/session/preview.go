package session

import (
	"github.com/taigrr/meshpaint/pkg/render"
)

// Render draws the mesh with its current texture into fb, seen from the
// session camera. Both faces are drawn so open meshes stay visible.
func (s *Session) Render(fb *render.Framebuffer) render.RasterStats {
	s.Texture.FilterMode = render.FilterNearest
	if s.cfg.Preview.Smooth {
		s.Texture.FilterMode = render.FilterBilinear
	}

	cam := *s.Camera
	cam.SetAspectRatio(float64(fb.Width) / float64(fb.Height))

	fb.Clear(render.ColorSky)
	r := render.NewRasterizer(&cam, fb)
	r.DisableBackfaceCulling = true
	r.DrawMeshTextured(s.Mesh, s.Collider.Transform(), s.Texture, cam.Forward().Negate())
	return r.Stats
}
