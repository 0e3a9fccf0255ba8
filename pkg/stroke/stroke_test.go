package stroke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/meshpaint/pkg/math3d"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps", func(c *Config) { c.FPS = 0 }},
		{"frequency", func(c *Config) { c.Frequency = -1 }},
		{"damping", func(c *Config) { c.Damping = -0.5 }},
		{"steps", func(c *Config) { c.StepsPerSegment = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSmootherCriticallyDampedApproach(t *testing.T) {
	s := NewSmoother(DefaultConfig(), math3d.V2(0, 0))
	target := math3d.V2(100, -50)

	prev := s.Position().Distance(target)
	for range 240 {
		pos := s.Update(target)
		d := pos.Distance(target)
		assert.LessOrEqual(t, d, prev+1e-9, "critically damped spring should not move away")
		assert.LessOrEqual(t, pos.X, target.X+1e-6, "no overshoot")
		prev = d
	}
	assert.Less(t, prev, 0.01)
}

func TestReplay(t *testing.T) {
	cfg := DefaultConfig()
	points := []math3d.Vec2{math3d.V2(10, 10), math3d.V2(60, 10), math3d.V2(60, 40)}

	anchors, err := Replay(points, cfg)
	require.NoError(t, err)

	assert.Equal(t, points[0], anchors[0])
	assert.GreaterOrEqual(t, len(anchors), 1+2*cfg.StepsPerSegment)
	assert.LessOrEqual(t, len(anchors), 1+3*cfg.StepsPerSegment)

	// Anchors move smoothly: no frame jumps more than a segment length.
	for i := 1; i < len(anchors); i++ {
		assert.Less(t, anchors[i].Distance(anchors[i-1]), 50.0)
	}
}

func TestReplaySinglePoint(t *testing.T) {
	anchors, err := Replay([]math3d.Vec2{math3d.V2(3, 4)}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []math3d.Vec2{math3d.V2(3, 4)}, anchors)
}

func TestReplayErrors(t *testing.T) {
	_, err := Replay(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoPoints)

	bad := DefaultConfig()
	bad.FPS = 0
	_, err = Replay([]math3d.Vec2{{}}, bad)
	assert.Error(t, err)
}
