// Package config handles meshpaint configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Brush presets.
const (
	BrushCircle    = "circle"
	BrushSquare    = "square"
	BrushRectangle = "rectangle"
	BrushProjected = "projected"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all meshpaint settings.
type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas" toml:"canvas"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Brush   BrushConfig   `yaml:"brush" toml:"brush"`
	Stroke  StrokeConfig  `yaml:"stroke" toml:"stroke"`
	Preview PreviewConfig `yaml:"preview" toml:"preview"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// CanvasConfig selects the mesh, its texture and where the result goes.
type CanvasConfig struct {
	Model      string  `yaml:"model" toml:"model"`             // GLB/glTF path; empty paints a flat plane
	PlaneCells int     `yaml:"plane_cells" toml:"plane_cells"` // Grid resolution of the fallback plane
	ModelSize  float64 `yaml:"model_size" toml:"model_size"`   // Largest dimension after normalizing
	Texture    string  `yaml:"texture" toml:"texture"`         // Image path; overrides the embedded texture
	Output     string  `yaml:"output" toml:"output"`           // PNG written after painting
	BlankSize  int     `yaml:"blank_size" toml:"blank_size"`   // Side of the blank texture when none is found
	BlankColor string  `yaml:"blank_color" toml:"blank_color"` // "R,G,B[,A]" or "#rrggbb[aa]"
}

// CameraConfig places the view used by screen-space brushes.
type CameraConfig struct {
	Position []float64 `yaml:"position" toml:"position"`
	Target   []float64 `yaml:"target" toml:"target"`
	FOV      float64   `yaml:"fov" toml:"fov"` // Vertical field of view in degrees
	Width    int       `yaml:"width" toml:"width"`
	Height   int       `yaml:"height" toml:"height"`
}

// BrushConfig describes the brush applied along the stroke.
type BrushConfig struct {
	Type  string  `yaml:"type" toml:"type"`
	Size  float64 `yaml:"size" toml:"size"` // Fraction of viewport width, or projector units
	Color string  `yaml:"color" toml:"color"`

	ProjectorPosition []float64 `yaml:"projector_position" toml:"projector_position"`
	ProjectorRotation []float64 `yaml:"projector_rotation" toml:"projector_rotation"` // Pitch, yaw, roll in degrees
	Repeat            int       `yaml:"repeat" toml:"repeat"`                         // Projector paint count
}

// StrokeConfig drives screen-space brushes along waypoints.
type StrokeConfig struct {
	Points    [][]float64 `yaml:"points" toml:"points"` // Viewport fractions, (0,0) top-left
	FPS       int         `yaml:"fps" toml:"fps"`
	Frequency float64     `yaml:"frequency" toml:"frequency"`
	Damping   float64     `yaml:"damping" toml:"damping"`
	Steps     int         `yaml:"steps" toml:"steps"`
}

// PreviewConfig controls the terminal preview.
type PreviewConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Snapshot string `yaml:"snapshot" toml:"snapshot"` // Optional PNG of the preview frame
	Smooth   bool   `yaml:"smooth" toml:"smooth"`     // Bilinear texture filtering
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			PlaneCells: 8,
			ModelSize:  2,
			Output:     "painted.png",
			BlankSize:  256,
			BlankColor: "255,255,255",
		},
		Camera: CameraConfig{
			Position: []float64{0, 0, 3},
			Target:   []float64{0, 0, 0},
			FOV:      60,
			Width:    640,
			Height:   480,
		},
		Brush: BrushConfig{
			Type:              BrushCircle,
			Size:              0.1,
			Color:             "220,40,40",
			ProjectorPosition: []float64{0, 0, 2},
			ProjectorRotation: []float64{0, 0, 0},
			Repeat:            1,
		},
		Stroke: StrokeConfig{
			Points:    [][]float64{{0.3, 0.4}, {0.5, 0.6}, {0.7, 0.4}},
			FPS:       60,
			Frequency: 8,
			Damping:   1,
			Steps:     12,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the session cannot use.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Canvas.PlaneCells > 0, "canvas.plane_cells must be positive")
	check(c.Canvas.ModelSize > 0, "canvas.model_size must be positive")
	check(c.Canvas.BlankSize > 0, "canvas.blank_size must be positive")
	if _, err := ParseColor(c.Canvas.BlankColor); err != nil {
		errs = append(errs, err)
	}

	check(len(c.Camera.Position) == 3, "camera.position needs 3 components")
	check(len(c.Camera.Target) == 3, "camera.target needs 3 components")
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov %v out of range", c.Camera.FOV)
	check(c.Camera.Width > 0 && c.Camera.Height > 0, "camera viewport %dx%d", c.Camera.Width, c.Camera.Height)

	switch c.Brush.Type {
	case BrushCircle, BrushSquare, BrushRectangle, BrushProjected:
	default:
		check(false, "unknown brush type %q", c.Brush.Type)
	}
	check(c.Brush.Size > 0, "brush.size must be positive")
	if _, err := ParseColor(c.Brush.Color); err != nil {
		errs = append(errs, err)
	}
	check(len(c.Brush.ProjectorPosition) == 3, "brush.projector_position needs 3 components")
	check(len(c.Brush.ProjectorRotation) == 3, "brush.projector_rotation needs 3 components")
	check(c.Brush.Repeat >= 0, "brush.repeat must not be negative")

	for i, p := range c.Stroke.Points {
		check(len(p) == 2, "stroke.points[%d] needs 2 components", i)
	}
	check(c.Stroke.FPS > 0, "stroke.fps must be positive")
	check(c.Stroke.Steps > 0, "stroke.steps must be positive")

	return errors.Join(errs...)
}

// ParseColor parses "R,G,B", "R,G,B,A" (0-255 each) or "#rrggbb[aa]".
// Alpha defaults to 255.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 && len(hex) != 8 {
			return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalid, s)
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q: %w", ErrInvalid, s, err)
		}
		return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("%w: color %q wants R,G,B[,A]", ErrInvalid, s)
	}
	ch := [4]uint8{255, 255, 255, 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q: %w", ErrInvalid, s, err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
