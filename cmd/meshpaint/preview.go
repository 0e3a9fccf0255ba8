package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/meshpaint/internal/logger"
	"github.com/taigrr/meshpaint/internal/session"
	"github.com/taigrr/meshpaint/pkg/render"
)

// preview shows the painted mesh in the terminal until a key is pressed.
// Each terminal cell holds two framebuffer rows.
func preview(s *session.Session, title string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	draw := func() error {
		fb := render.NewFramebuffer(width, height*2)
		stats := s.Render(fb)
		fb.Draw(term, uv.Rect(0, 0, width, height))
		logger.Debug("preview drawn",
			zap.String("texture", title),
			zap.Int("pixels", stats.Pixels))
		return term.Display()
	}
	if err := draw(); err != nil {
		cleanup()
		return fmt.Errorf("draw preview: %w", err)
	}

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := draw(); err != nil {
					logger.Warn("redraw preview", zap.Error(err))
				}
			case uv.KeyPressEvent:
				cancel()
				return
			}
		}
	}()

	<-ctx.Done()
	cleanup()
	return nil
}
