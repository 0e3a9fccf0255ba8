// Package session wires a configuration into a paintable scene and runs
// strokes over it.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/taigrr/meshpaint/internal/config"
	"github.com/taigrr/meshpaint/pkg/collider"
	"github.com/taigrr/meshpaint/pkg/math3d"
	"github.com/taigrr/meshpaint/pkg/models"
	"github.com/taigrr/meshpaint/pkg/paint"
	"github.com/taigrr/meshpaint/pkg/render"
	"github.com/taigrr/meshpaint/pkg/stroke"
)

// Texture sources, reported in Session.TextureSource.
const (
	SourceFile     = "file"
	SourceEmbedded = "embedded"
	SourceBlank    = "blank"
)

// Session holds everything needed to paint one mesh.
type Session struct {
	cfg *config.Config
	log *zap.Logger

	Mesh          *models.Mesh
	Texture       *render.Texture
	TextureSource string
	Camera        *render.Camera
	View          *render.Viewport
	Collider      *collider.MeshCollider
	Painter       *paint.Painter
	Brushes       *BrushFactory
}

// Result summarizes a Run.
type Result struct {
	Frames int // Brush applications attempted
	Hits   int // Applications that found triangles under the brush
	Texels int // Texels written over all applications
}

// New loads the mesh and texture named by cfg and builds the scene.
// A nil logger disables logging.
func New(cfg *config.Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{cfg: cfg, log: log}
	if err := s.loadCanvas(); err != nil {
		return nil, err
	}

	s.Camera = render.NewCamera()
	s.Camera.SetFOV(radians(cfg.Camera.FOV))
	s.Camera.SetPosition(vec3(cfg.Camera.Position))
	s.Camera.LookAt(vec3(cfg.Camera.Target))
	s.View = render.NewViewport(s.Camera, cfg.Camera.Width, cfg.Camera.Height)

	var err error
	s.Collider, err = collider.New(s.Mesh, s.Mesh.NormalizeTransform(cfg.Canvas.ModelSize))
	if err != nil {
		return nil, fmt.Errorf("build collider: %w", err)
	}

	s.Brushes, err = NewBrushFactory(cfg.Brush, s.View, cfg.Camera.Width)
	if err != nil {
		return nil, err
	}
	s.Painter = paint.NewPainter(log.Named("paint"))

	log.Info("session ready",
		zap.String("mesh", s.Mesh.Name),
		zap.Int("triangles", s.Mesh.TriangleCount()),
		zap.String("texture", s.TextureSource),
		zap.Int("texture_width", s.Texture.Width),
		zap.Int("texture_height", s.Texture.Height),
		zap.String("brush", cfg.Brush.Type))
	return s, nil
}

// loadCanvas picks the mesh and the texture to paint on. The texture comes
// from canvas.texture, else the model's first embedded image, else a blank
// canvas.
func (s *Session) loadCanvas() error {
	c := s.cfg.Canvas
	if c.Model == "" {
		s.Mesh = models.NewPlane("plane", c.PlaneCells, c.PlaneCells)
	} else {
		mesh, img, err := models.LoadGLBWithTexture(c.Model)
		if err != nil {
			return fmt.Errorf("load model %s: %w", c.Model, err)
		}
		s.Mesh = mesh
		if img != nil {
			s.Texture = render.TextureFromImage(img)
			s.TextureSource = SourceEmbedded
		}
	}

	if c.Texture != "" {
		tex, err := render.LoadTexture(c.Texture)
		if err != nil {
			return err
		}
		s.Texture = tex
		s.TextureSource = SourceFile
	}

	if s.Texture == nil {
		bg, err := config.ParseColor(c.BlankColor)
		if err != nil {
			return err
		}
		s.Texture = render.NewSolidTexture(c.BlankSize, c.BlankSize, bg)
		s.TextureSource = SourceBlank
	}
	return nil
}

// Anchors returns the screen anchors of the configured stroke in viewport
// pixels.
func (s *Session) Anchors() ([]math3d.Vec2, error) {
	points := make([]math3d.Vec2, len(s.cfg.Stroke.Points))
	for i, p := range s.cfg.Stroke.Points {
		points[i] = math3d.V2(p[0]*float64(s.View.Width), p[1]*float64(s.View.Height))
	}
	return stroke.Replay(points, stroke.Config{
		FPS:             s.cfg.Stroke.FPS,
		Frequency:       s.cfg.Stroke.Frequency,
		Damping:         s.cfg.Stroke.Damping,
		StepsPerSegment: s.cfg.Stroke.Steps,
	})
}

// Run paints the configured stroke. Screen brushes follow the smoothed
// stroke; the projected brush paints brush.repeat times from its projector.
func (s *Session) Run() (Result, error) {
	var anchors []math3d.Vec2
	if s.Brushes.ScreenSpace() {
		var err error
		if anchors, err = s.Anchors(); err != nil {
			if errors.Is(err, stroke.ErrNoPoints) {
				s.log.Warn("stroke has no points, nothing to paint")
				return Result{}, nil
			}
			return Result{}, err
		}
	} else {
		anchors = make([]math3d.Vec2, s.cfg.Brush.Repeat)
	}

	var res Result
	for i, anchor := range anchors {
		b, err := s.Brushes.At(anchor)
		if err != nil {
			return res, err
		}
		hit, err := s.Painter.Paint(b, s.Texture, s.Collider)
		if err != nil {
			return res, fmt.Errorf("paint frame %d: %w", i, err)
		}
		res.Frames++
		if hit {
			res.Hits++
			res.Texels += s.Painter.Stats().Texels
		}
	}

	s.log.Info("stroke painted",
		zap.Int("frames", res.Frames),
		zap.Int("hits", res.Hits),
		zap.Int("texels", res.Texels))
	return res, nil
}

// Save writes the painted texture to canvas.output, creating parent
// directories as needed.
func (s *Session) Save() error {
	path := s.cfg.Canvas.Output
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := s.Texture.SavePNG(path); err != nil {
		return err
	}
	s.log.Info("texture saved", zap.String("path", path))
	return nil
}

func vec3(v []float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
