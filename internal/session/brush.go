package session

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/meshpaint/internal/config"
	"github.com/taigrr/meshpaint/pkg/math3d"
	"github.com/taigrr/meshpaint/pkg/paint"
)

// rectAspect is the width and height of the rectangle presets, per unit of
// brush size.
var rectAspect = math3d.V2(1.5, 0.75)

// BrushFactory builds the configured brush preset at a given anchor.
type BrushFactory struct {
	Preset    string
	Size      float64
	Color     color.RGBA
	View      paint.View
	ViewWidth float64     // Pixels that a screen brush size of 1 spans
	Projector math3d.Mat4 // Local-to-world transform of the projected preset
}

// NewBrushFactory validates cfg and prepares a factory for view.
func NewBrushFactory(cfg config.BrushConfig, view paint.View, viewWidth int) (*BrushFactory, error) {
	c, err := config.ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	if len(cfg.ProjectorPosition) != 3 || len(cfg.ProjectorRotation) != 3 {
		return nil, fmt.Errorf("%w: projector needs position and rotation", config.ErrInvalid)
	}

	pos := math3d.V3(cfg.ProjectorPosition[0], cfg.ProjectorPosition[1], cfg.ProjectorPosition[2])
	rot := cfg.ProjectorRotation
	projector := math3d.Compose(pos, radians(rot[0]), radians(rot[1]), radians(rot[2]), math3d.V3(1, 1, 1))

	return &BrushFactory{
		Preset:    cfg.Type,
		Size:      cfg.Size,
		Color:     c,
		View:      view,
		ViewWidth: float64(viewWidth),
		Projector: projector,
	}, nil
}

// ScreenSpace reports whether the preset follows a screen anchor.
func (f *BrushFactory) ScreenSpace() bool {
	return f.Preset != config.BrushProjected
}

// At returns the preset brush centered on anchor. The projected preset
// ignores the anchor.
func (f *BrushFactory) At(anchor math3d.Vec2) (paint.Brush, error) {
	px := f.Size * f.ViewWidth
	switch f.Preset {
	case config.BrushCircle:
		return paint.NewCircleBrush(f.Color, px/2, f.View, anchor), nil
	case config.BrushSquare:
		return paint.NewRectangleBrush(f.Color, math3d.V2(px, px), f.View, anchor), nil
	case config.BrushRectangle:
		return paint.NewRectangleBrush(f.Color, rectAspect.Scale(px), f.View, anchor), nil
	case config.BrushProjected:
		return paint.NewProjectedRectangleBrush(f.Color, rectAspect.Scale(f.Size), f.Projector), nil
	}
	return paint.Brush{}, fmt.Errorf("%w: unknown brush preset %q", paint.ErrInvalidBrush, f.Preset)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
