package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/pkg/math"
)

const dt = float32(1.0 / 60.0)

func singleBlock() *world.Grid {
	g := world.NewGrid()
	g.Insert(world.Coord{}, world.Stone)
	return g
}

func floor(size int) *world.Grid {
	g := world.NewGrid()
	world.Generate(g, world.GenParams{SizeX: size, SizeY: size, GrassDepth: 1})
	return g
}

// settle steps the player until it is grounded or the step budget runs out.
func settle(t *testing.T, p *Player, g *world.Grid, steps int) {
	t.Helper()
	for i := 0; i < steps; i++ {
		p.Update(dt, g)
		if p.State().OnGround {
			return
		}
	}
	t.Fatalf("player never landed, at %v", p.Position())
}

func TestPlayer_FallsOntoSingleBlock(t *testing.T) {
	g := singleBlock()
	p := NewPlayer(DefaultParams())
	require.False(t, p.State().OnGround, "player starts in the air")

	for i := 0; i < 180; i++ {
		p.Update(dt, g)
	}

	st := p.State()
	assert.True(t, st.OnGround)
	assert.Equal(t, Grounded, p.Phase())
	assert.InDelta(t, 0.8, st.Position.Z, 1e-4)
	assert.InDelta(t, 0, st.Position.X, 1e-6)
	assert.InDelta(t, 0, st.Position.Y, 1e-6)
	assert.Zero(t, p.VerticalVelocity())
}

func TestPlayer_GroundSnapWithinATick(t *testing.T) {
	g := singleBlock()

	for _, h := range []float32{1.0, 2.0, 5.0, 12.0} {
		params := DefaultParams()
		params.Spawn = math.Vec3{Z: 0.5 + params.Radius + h}
		p := NewPlayer(params)

		detected := false
		for i := 0; i < 600 && !detected; i++ {
			p.Update(dt, g)
			feet := p.Position().Z - params.Radius
			detected = feet-0.5 < params.GroundTolerance
		}
		require.True(t, detected, "h=%v never reached the surface", h)

		p.Update(dt, g)
		assert.True(t, p.State().OnGround, "h=%v", h)
		assert.InDelta(t, 0.8, p.Position().Z, 1e-4, "h=%v", h)
	}
}

func TestPlayer_FallsPastMissingBlock(t *testing.T) {
	p := NewPlayer(DefaultParams())
	g := world.NewGrid()
	for i := 0; i < 60; i++ {
		p.Update(dt, g)
	}
	assert.False(t, p.State().OnGround)
	assert.Less(t, p.Position().Z, float32(0))
	assert.Less(t, p.VerticalVelocity(), float32(-10))
}

func TestPlayer_JumpIsEdgeTriggered(t *testing.T) {
	g := floor(4)
	params := DefaultParams()
	p := NewPlayer(params)
	settle(t, p, g, 300)

	p.SetInput(Input{Jump: true})
	p.Update(dt, g)
	require.Equal(t, params.JumpForce, p.VerticalVelocity(), "jump sets velocity")
	require.True(t, p.Jumping())
	require.Equal(t, Airborne, p.Phase())

	// Jump stays held for the whole flight: velocity must only fall until
	// the landing tick, which launches the next jump.
	prev := p.VerticalVelocity()
	relaunched := false
	for i := 0; i < 300; i++ {
		p.Update(dt, g)
		v := p.VerticalVelocity()
		if v == params.JumpForce {
			relaunched = true
			break
		}
		require.Less(t, v, prev, "holding jump in the air must not add velocity (tick %d)", i)
		prev = v
	}
	require.True(t, relaunched, "held jump should fire again after landing")
	assert.Less(t, prev, float32(0), "relaunch only happens on the way down")
	assert.InDelta(t, 0.8, p.Position().Z, 1e-4, "relaunch happens from the floor")
	assert.True(t, p.Jumping())
}

func TestPlayer_JumpRisesAndReturns(t *testing.T) {
	g := floor(4)
	p := NewPlayer(DefaultParams())
	settle(t, p, g, 300)

	p.SetInput(Input{Jump: true})
	p.Update(dt, g)
	p.SetInput(Input{})

	peak := p.Position().Z
	for i := 0; i < 120; i++ {
		p.Update(dt, g)
		if z := p.Position().Z; z > peak {
			peak = z
		}
	}
	// v^2 / 2g = 49 / 39.2 = 1.25
	assert.InDelta(t, 0.8+1.25, peak, 0.15)
	assert.True(t, p.State().OnGround)
	assert.InDelta(t, 0.8, p.Position().Z, 1e-4)
}

func TestPlayer_NoJumpWhileAirborne(t *testing.T) {
	p := NewPlayer(DefaultParams())
	p.SetInput(Input{Jump: true})
	p.Update(dt, world.NewGrid())
	assert.False(t, p.Jumping())
	assert.Less(t, p.VerticalVelocity(), float32(0))
}

func TestPlayer_HorizontalMovementFollowsHeading(t *testing.T) {
	tests := []struct {
		name  string
		yaw   float32
		input Input
		want  math.Vec3 // direction of travel
	}{
		{"forward at 0", 0, Input{Forward: true}, math.Vec3{Y: 1}},
		{"backward at 0", 0, Input{Backward: true}, math.Vec3{Y: -1}},
		{"right at 0", 0, Input{Right: true}, math.Vec3{X: 1}},
		{"left at 0", 0, Input{Left: true}, math.Vec3{X: -1}},
		{"forward at 90", 90, Input{Forward: true}, math.Vec3{X: -1}},
		{"right at 90", 90, Input{Right: true}, math.Vec3{Y: 1}},
		{"forward at 180", 180, Input{Forward: true}, math.Vec3{Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := floor(20)
			params := DefaultParams()
			p := NewPlayer(params)
			settle(t, p, g, 300)

			start := p.Position()
			p.SetLook(tt.yaw, 0)
			p.SetInput(tt.input)
			for i := 0; i < 30; i++ {
				p.Update(dt, g)
			}

			moved := p.Position().Sub(start)
			dist := params.Speed * dt * 30
			assert.InDelta(t, tt.want.X*dist, moved.X, 1e-3)
			assert.InDelta(t, tt.want.Y*dist, moved.Y, 1e-3)
			assert.InDelta(t, 0, moved.Z, 1e-4, "walking on a flat floor keeps height")
			assert.True(t, p.State().OnGround)
		})
	}
}

func TestPlayer_WallStopsMovement(t *testing.T) {
	g := floor(10)
	// Wall one cell ahead at floor+1 and floor+2.
	for x := -5; x < 5; x++ {
		g.Insert(world.Coord{X: x, Y: 2, Z: 1}, world.Stone)
		g.Insert(world.Coord{X: x, Y: 2, Z: 2}, world.Stone)
	}

	params := DefaultParams()
	p := NewPlayer(params)
	settle(t, p, g, 300)

	p.SetInput(Input{Forward: true})
	for i := 0; i < 120; i++ {
		p.Update(dt, g)
	}

	// The wall face is at y=1.5; the sphere stops one radius short of it.
	assert.InDelta(t, 1.5-params.Radius, p.Position().Y, 1e-3)
	assert.True(t, p.State().OnGround)
}

func TestPlayer_LookAndCells(t *testing.T) {
	p := NewPlayer(DefaultParams())

	p.SetLook(0, 0)
	assert.InDelta(t, 1, p.LookDirection().Y, 1e-6)

	p.SetLook(90, 0)
	d := p.LookDirection()
	assert.InDelta(t, -1, d.X, 1e-6)
	assert.InDelta(t, 0, d.Y, 1e-6)

	p.SetLook(0, 200)
	assert.Equal(t, float32(85), p.State().Pitch, "pitch is clamped")

	p.SetLook(-90, 0)
	assert.Equal(t, float32(270), p.State().Yaw, "heading wraps into [0, 360)")

	p.Turn(100, -300)
	assert.Equal(t, float32(10), p.State().Yaw)
	assert.Equal(t, float32(-85), p.State().Pitch)

	p.Teleport(math.Vec3{X: 1.2, Y: -0.4, Z: 0.8})
	assert.Equal(t, [2]world.Coord{{X: 1, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 2}}, p.Cells())
	assert.InDelta(t, 1.3, p.Eye().Z, 1e-6)
}
