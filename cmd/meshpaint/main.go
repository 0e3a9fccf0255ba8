// meshpaint - paint brush strokes onto textured meshes from the command line.
//
// A stroke is replayed through spring-smoothed screen anchors (or a fixed
// projector) and every frame is painted into the mesh texture, which is then
// written out as PNG.
//
// Usage:
//
//	meshpaint [options] [model.glb]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/taigrr/meshpaint/internal/config"
	"github.com/taigrr/meshpaint/internal/logger"
	"github.com/taigrr/meshpaint/internal/session"
	"github.com/taigrr/meshpaint/pkg/render"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "meshpaint - paint onto textured meshes\n\n")
		fmt.Fprintf(os.Stderr, "Usage: meshpaint [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a flat plane is painted. Settings are read from\n")
		fmt.Fprintf(os.Stderr, "meshpaint.yaml or meshpaint.toml in the working directory or in\n")
		fmt.Fprintf(os.Stderr, "%s; flags override the file.\n\n", config.ConfigDir())
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	if flag.NArg() == 1 && flags.Model == "" {
		flags.Model = flag.Arg(0)
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	s, err := session.New(cfg, logger.Named("session"))
	if err != nil {
		return err
	}

	res, err := s.Run()
	if err != nil {
		return err
	}
	if res.Frames > 0 && res.Hits == 0 {
		logger.Warn("brush never touched the mesh", zap.Int("frames", res.Frames))
	}

	if err := s.Save(); err != nil {
		return err
	}

	if cfg.Preview.Snapshot != "" {
		if err := snapshot(s, cfg.Preview.Snapshot, cfg.Camera.Width, cfg.Camera.Height); err != nil {
			return err
		}
	}

	if cfg.Preview.Enabled {
		return preview(s, filepath.Base(cfg.Canvas.Output))
	}
	return nil
}

// snapshot renders the painted mesh at viewport size and saves it as PNG.
func snapshot(s *session.Session, path string, width, height int) error {
	fb := render.NewFramebuffer(width, height)
	s.Render(fb)
	if err := fb.SavePNG(path); err != nil {
		return err
	}
	logger.Info("preview snapshot saved", zap.String("path", path))
	return nil
}
