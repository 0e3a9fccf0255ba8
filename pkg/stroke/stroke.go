// Package stroke turns a list of brush waypoints into per-frame brush
// anchors by chasing each waypoint with a spring, the way a cursor drag
// produces a stream of paint calls.
package stroke

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

// ErrNoPoints is returned when a stroke has no waypoints.
var ErrNoPoints = errors.New("stroke has no points")

// settleDistance is how close the anchor must come to the final waypoint
// before replay stops.
const settleDistance = 0.5

// Config controls stroke smoothing.
type Config struct {
	FPS             int     // Simulation frames per second
	Frequency       float64 // Spring angular frequency
	Damping         float64 // Spring damping ratio (1 = critically damped)
	StepsPerSegment int     // Frames spent moving toward each waypoint
}

// DefaultConfig returns a critically damped stroke at 60 frames per second.
func DefaultConfig() Config {
	return Config{
		FPS:             60,
		Frequency:       8.0,
		Damping:         1.0,
		StepsPerSegment: 12,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("stroke fps must be positive, got %d", c.FPS)
	case c.Frequency <= 0:
		return fmt.Errorf("stroke frequency must be positive, got %v", c.Frequency)
	case c.Damping < 0:
		return fmt.Errorf("stroke damping must not be negative, got %v", c.Damping)
	case c.StepsPerSegment <= 0:
		return fmt.Errorf("stroke steps per segment must be positive, got %d", c.StepsPerSegment)
	}
	return nil
}

// axis tracks position and velocity for one coordinate.
type axis struct {
	pos, vel float64
}

// Smoother moves a 2D point toward a target with one spring per axis.
type Smoother struct {
	spring harmonica.Spring
	x, y   axis
}

// NewSmoother creates a smoother resting at start.
func NewSmoother(cfg Config, start math3d.Vec2) *Smoother {
	return &Smoother{
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
		x:      axis{pos: start.X},
		y:      axis{pos: start.Y},
	}
}

// Update advances one frame toward target and returns the new position.
func (s *Smoother) Update(target math3d.Vec2) math3d.Vec2 {
	s.x.pos, s.x.vel = s.spring.Update(s.x.pos, s.x.vel, target.X)
	s.y.pos, s.y.vel = s.spring.Update(s.y.pos, s.y.vel, target.Y)
	return s.Position()
}

// Position returns the current position.
func (s *Smoother) Position() math3d.Vec2 {
	return math3d.V2(s.x.pos, s.y.pos)
}

// Replay returns the anchors of every frame of a stroke through points.
// The first anchor is points[0]; each following waypoint is chased for
// StepsPerSegment frames, and the stroke then settles on the last point.
func Replay(points []math3d.Vec2, cfg Config) ([]math3d.Vec2, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := NewSmoother(cfg, points[0])
	anchors := []math3d.Vec2{points[0]}
	for _, target := range points[1:] {
		for range cfg.StepsPerSegment {
			anchors = append(anchors, s.Update(target))
		}
	}

	last := points[len(points)-1]
	for range cfg.StepsPerSegment {
		if s.Position().Distance(last) < settleDistance {
			break
		}
		anchors = append(anchors, s.Update(last))
	}
	return anchors, nil
}
