package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/blockworld/internal/config"
	"github.com/Faultbox/blockworld/internal/game/entity"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/pkg/math"
)

func TestOptionsFromDefaultConfig(t *testing.T) {
	opts := OptionsFromConfig(config.Default(), nil)

	assert.Equal(t, entity.DefaultParams(), opts.Player)
	assert.Equal(t, world.DefaultGenParams(), opts.Gen)
	assert.Equal(t, world.Stone, opts.DefaultType)
	assert.Zero(t, opts.Reach, "picking is unlimited by default")
	assert.Nil(t, opts.Metrics)
}

func TestOptionsFromTunedConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Physics.Speed = 10
	cfg.Physics.Spawn = [3]float32{3, 4, 9}
	cfg.Physics.PushPasses = 0
	cfg.World.SizeX = 4
	cfg.World.DefaultType = "grass"

	opts := OptionsFromConfig(cfg, nil)
	assert.Equal(t, float32(10), opts.Player.Speed)
	assert.Equal(t, math.Vec3{X: 3, Y: 4, Z: 9}, opts.Player.Spawn)
	assert.Equal(t, entity.DefaultParams().PushPasses, opts.Player.PushPasses)
	assert.Equal(t, 4, opts.Gen.SizeX)
	assert.Equal(t, world.Grass, opts.DefaultType)

	s := New(opts)
	assert.Equal(t, 4*10*3, s.Generate())
	assert.Equal(t, world.Grass, s.Selected())
}
