package sim

import (
	"github.com/Faultbox/blockworld/internal/config"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/internal/metrics"
	"github.com/Faultbox/blockworld/pkg/math"
)

// OptionsFromConfig builds simulation options from the physics and world
// sections of cfg. Tuning the config does not expose keeps its default.
func OptionsFromConfig(cfg *config.Config, m *metrics.Metrics) Options {
	opts := DefaultOptions()
	opts.Metrics = m

	ph := cfg.Physics
	opts.Player.Speed = ph.Speed
	opts.Player.JumpForce = ph.JumpForce
	opts.Player.Gravity = ph.Gravity
	opts.Player.Radius = ph.Radius
	opts.Player.GroundTolerance = ph.GroundTolerance
	if ph.PushPasses > 0 {
		opts.Player.PushPasses = ph.PushPasses
	}
	opts.Player.Spawn = math.Vec3{X: ph.Spawn[0], Y: ph.Spawn[1], Z: ph.Spawn[2]}

	w := cfg.World
	opts.Gen = world.GenParams{
		SizeX:        w.SizeX,
		SizeY:        w.SizeY,
		GroundHeight: w.GroundHeight,
		GrassDepth:   w.GrassDepth,
		StoneDepth:   w.StoneDepth,
	}
	opts.Reach = w.Reach
	if w.DefaultType != "" {
		opts.DefaultType = world.BlockType(w.DefaultType)
	}
	return opts
}
