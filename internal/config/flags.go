package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	ConfigPath string
	Model      string
	Texture    string
	Output     string
	Brush      string
	Size       float64
	Color      string
	Width      int
	Height     int
	Preview    bool
	Snapshot   string
	Smooth     bool
	Debug      bool
	LogFile    string
}

// RegisterFlags binds the meshpaint flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file (.yaml or .toml)")
	fs.StringVar(&f.Model, "model", "", "GLB/glTF model to paint (default: flat plane)")
	fs.StringVar(&f.Texture, "texture", "", "Texture image to paint on")
	fs.StringVar(&f.Output, "output", "", "Where to write the painted texture (PNG)")
	fs.StringVar(&f.Brush, "brush", "", "Brush: circle, square, rectangle or projected")
	fs.Float64Var(&f.Size, "size", 0, "Brush size (fraction of viewport width, or projector units)")
	fs.StringVar(&f.Color, "color", "", "Brush color as R,G,B[,A] or #rrggbb")
	fs.IntVar(&f.Width, "width", 0, "Viewport width in pixels")
	fs.IntVar(&f.Height, "height", 0, "Viewport height in pixels")
	fs.BoolVar(&f.Preview, "preview", false, "Show the painted mesh in the terminal")
	fs.StringVar(&f.Snapshot, "snapshot", "", "Save the preview frame as PNG")
	fs.BoolVar(&f.Smooth, "smooth", false, "Filter the preview texture bilinearly")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Model != "" {
		cfg.Canvas.Model = f.Model
	}
	if f.Texture != "" {
		cfg.Canvas.Texture = f.Texture
	}
	if f.Output != "" {
		cfg.Canvas.Output = f.Output
	}
	if f.Brush != "" {
		cfg.Brush.Type = f.Brush
	}
	if f.Size > 0 {
		cfg.Brush.Size = f.Size
	}
	if f.Color != "" {
		cfg.Brush.Color = f.Color
	}
	if f.Width > 0 {
		cfg.Camera.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Camera.Height = f.Height
	}
	if f.Preview {
		cfg.Preview.Enabled = true
	}
	if f.Snapshot != "" {
		cfg.Preview.Snapshot = f.Snapshot
	}
	if f.Smooth {
		cfg.Preview.Smooth = true
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
