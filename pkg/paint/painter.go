package paint

import (
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
)

// Stats describes the most recent Paint call.
type Stats struct {
	Triangles int             // Triangles discovered under the brush
	Texels    int             // Texels written with the brush color
	Regions   int             // Quadtree regions examined
	Rays      int             // Rays cast during discovery
	Window    image.Rectangle // Texel window read and written back
}

// Painter paints brushes onto textured surfaces. It caches the geometry of
// the last surface painted so consecutive strokes on one mesh read it once.
// Surfaces are compared by identity and must be comparable (pointers).
//
// A Painter is safe for concurrent use; calls are serialized.
type Painter struct {
	log *zap.Logger

	mu       sync.Mutex
	surface  Surface
	geometry Geometry
	stats    Stats
}

// NewPainter creates a painter. A nil logger disables logging.
func NewPainter(log *zap.Logger) *Painter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Painter{log: log}
}

// Invalidate drops the cached geometry so the next Paint re-reads it.
func (p *Painter) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.surface = nil
	p.geometry = Geometry{}
}

// Stats returns the statistics of the last Paint call.
func (p *Painter) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Paint applies brush b to tex through surface s. It reports whether any
// triangle lay under the brush; when none did the texture is not touched.
// A true result does not imply that any texel changed color.
func (p *Painter) Paint(b Brush, tex Texture, s Surface) (bool, error) {
	if tex == nil {
		return false, ErrNilTexture
	}
	if s == nil {
		return false, ErrNilSurface
	}
	if err := b.Validate(); err != nil {
		return false, err
	}
	texW, texH := tex.Size()
	if texW <= 0 || texH <= 0 {
		return false, fmt.Errorf("%w: size %dx%d", ErrNilTexture, texW, texH)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	d := FindTriangles(b, s)
	p.stats = Stats{Triangles: len(d.Triangles), Regions: d.Regions, Rays: d.Rays}
	if len(d.Triangles) == 0 {
		p.log.Debug("brush missed surface",
			zap.Stringer("brush", b.Kind()),
			zap.Int("rays", d.Rays))
		return false, nil
	}

	if err := p.refresh(s); err != nil {
		return false, err
	}
	g := p.geometry
	for _, t := range d.Triangles {
		if t < 0 || t >= g.TriangleCount() {
			return false, fmt.Errorf("%w: collider reported triangle %d of %d", ErrGeometry, t, g.TriangleCount())
		}
	}

	agg := AggregateUVRect(g, d.Triangles)
	window := TexelWindow(agg, texW, texH)
	job := &texelJob{
		brush:     b,
		transform: s.Transform(),
		pixels:    tex.ReadRegion(window),
		window:    window,
		agg:       agg,
		texW:      texW,
		texH:      texH,
	}
	if len(job.pixels) < window.Dx()*window.Dy() {
		return false, fmt.Errorf("texture returned %d texels for window %v", len(job.pixels), window)
	}

	for _, t := range d.Triangles {
		p.stats.Texels += job.paintTriangle(g, t)
	}
	tex.WriteRegion(window, job.pixels)
	p.stats.Window = window

	p.log.Debug("painted",
		zap.Stringer("brush", b.Kind()),
		zap.Int("triangles", p.stats.Triangles),
		zap.Int("texels", p.stats.Texels),
		zap.Int("regions", d.Regions),
		zap.Int("rays", d.Rays),
		zap.Stringer("window", window))
	return true, nil
}

// refresh re-reads geometry when the surface differs from the cached one.
func (p *Painter) refresh(s Surface) error {
	if p.surface == s {
		return nil
	}
	g := s.Geometry()
	if err := g.Validate(); err != nil {
		return err
	}
	p.surface = s
	p.geometry = g
	p.log.Debug("surface geometry cached",
		zap.Int("triangles", g.TriangleCount()),
		zap.Int("vertices", len(g.Positions)))
	return nil
}
