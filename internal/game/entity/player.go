// Package entity implements the player character: gravity, jumping,
// heading-relative walking and collision against the block grid.
package entity

import (
	gomath "math"

	"github.com/Faultbox/blockworld/internal/engine/collision"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/pkg/math"
)

// BlockSource supplies candidate blocks for collision queries.
// *world.Grid satisfies it.
type BlockSource interface {
	Near(from, to math.Vec3) []world.Block
}

// Phase is the vertical movement state.
type Phase uint8

const (
	Airborne Phase = iota
	Grounded
)

func (p Phase) String() string {
	if p == Grounded {
		return "grounded"
	}
	return "airborne"
}

// Input is the movement input sampled once per tick.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
}

// Params holds the movement tuning.
type Params struct {
	Speed           float32   // horizontal units per second
	JumpForce       float32   // initial upward velocity
	Gravity         float32   // vertical acceleration, negative is down
	Radius          float32   // bounding sphere radius
	GroundTolerance float32   // max gap below the feet that still counts as standing
	GroundRayInset  float32   // ground ray starts this far inside the sphere bottom
	EyeHeight       float32   // eye offset above the center
	MaxPitch        float32   // degrees
	PushPasses      int       // body push-out passes per tick
	Spawn           math.Vec3 // start position
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		Speed:           5.0,
		JumpForce:       7.0,
		Gravity:         -19.6,
		Radius:          0.3,
		GroundTolerance: 0.1,
		GroundRayInset:  0.05,
		EyeHeight:       0.5,
		MaxPitch:        85,
		PushPasses:      collision.DefaultPasses,
		Spawn:           math.Vec3{X: 0, Y: 0, Z: 2},
	}
}

// State is a read-only view of the player for camera placement.
type State struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32
	OnGround bool
}

// Player is the simulated player body.
type Player struct {
	params Params

	position         math.Vec3
	verticalVelocity float32
	yaw              float32 // degrees
	pitch            float32 // degrees
	onGround         bool
	jumping          bool
	input            Input
}

// NewPlayer creates an airborne player at params.Spawn.
func NewPlayer(params Params) *Player {
	if params.PushPasses <= 0 {
		params.PushPasses = collision.DefaultPasses
	}
	return &Player{
		params:   params,
		position: params.Spawn,
	}
}

// Params returns the player's tuning.
func (p *Player) Params() Params {
	return p.params
}

// SetInput sets the input used by the next Update.
func (p *Player) SetInput(in Input) {
	p.input = in
}

// SetLook sets heading and pitch in degrees. Pitch is clamped.
func (p *Player) SetLook(yaw, pitch float32) {
	p.yaw = wrapDegrees(yaw)
	p.pitch = clampf(pitch, -p.params.MaxPitch, p.params.MaxPitch)
}

// Turn adds to heading and pitch in degrees.
func (p *Player) Turn(dYaw, dPitch float32) {
	p.SetLook(p.yaw+dYaw, p.pitch+dPitch)
}

// Teleport moves the player and drops any vertical motion.
func (p *Player) Teleport(pos math.Vec3) {
	p.position = pos
	p.verticalVelocity = 0
	p.onGround = false
	p.jumping = false
}

// State returns the camera-facing view of the player.
func (p *Player) State() State {
	return State{
		Position: p.position,
		Yaw:      p.yaw,
		Pitch:    p.pitch,
		OnGround: p.onGround,
	}
}

// Position returns the center of the bounding sphere.
func (p *Player) Position() math.Vec3 { return p.position }

// VerticalVelocity returns the current vertical speed.
func (p *Player) VerticalVelocity() float32 { return p.verticalVelocity }

// Jumping reports whether a jump is in progress.
func (p *Player) Jumping() bool { return p.jumping }

// Phase returns Grounded or Airborne.
func (p *Player) Phase() Phase {
	if p.onGround {
		return Grounded
	}
	return Airborne
}

// Eye returns the camera position.
func (p *Player) Eye() math.Vec3 {
	return p.position.Add(math.Vec3{Z: p.params.EyeHeight})
}

// LookDirection returns the unit view direction for the current heading and
// pitch. Heading 0 faces +Y; positive heading turns toward -X.
func (p *Player) LookDirection() math.Vec3 {
	yaw := math.Radians(p.yaw)
	pitch := math.Radians(p.pitch)
	cp := gomath.Cos(pitch)
	return math.Vec3{
		X: float32(-gomath.Sin(yaw) * cp),
		Y: float32(gomath.Cos(yaw) * cp),
		Z: float32(gomath.Sin(pitch)),
	}
}

// Cells returns the body and head cells, which blocks may not be placed in.
func (p *Player) Cells() [2]world.Coord {
	return [2]world.Coord{
		world.CoordOf(p.position),
		world.CoordOf(p.position.Add(math.Up)),
	}
}

// Update advances the player by dt seconds. The steps run in a fixed order:
// ground check, vertical integration, jump, horizontal move, push-out.
func (p *Player) Update(dt float32, blocks BlockSource) {
	p.checkGround(blocks)

	if !p.onGround {
		p.verticalVelocity += p.params.Gravity * dt
	}
	p.position.Z += p.verticalVelocity * dt

	// Only a grounded player that is not already mid-jump may take off, so
	// holding jump in the air does nothing until the next landing.
	if p.input.Jump && p.onGround && !p.jumping {
		p.verticalVelocity = p.params.JumpForce
		p.jumping = true
		p.onGround = false
	}

	p.moveHorizontal(dt)
	p.resolveBody(blocks)
}

// checkGround casts the ground ray and snaps the player onto a surface
// found within tolerance below the feet.
func (p *Player) checkGround(blocks BlockSource) {
	p.onGround = false

	// A rising player has just left the ground and must not be caught by it.
	if p.verticalVelocity > 0 {
		return
	}

	origin := p.position.Sub(math.Vec3{Z: p.params.Radius - p.params.GroundRayInset})
	ray := collision.Ray{Origin: origin, Direction: math.Down}

	probe := p.params.GroundRayInset + p.params.GroundTolerance + 1
	candidates := blocks.Near(origin.Sub(math.Vec3{Z: probe}), origin)
	hit, ok := collision.NearestHit(ray, world.Boxes(candidates))
	if !ok {
		return
	}

	feet := p.position.Z - p.params.Radius
	if hit.Point.Z <= feet-p.params.GroundTolerance {
		return
	}

	top := candidates[hit.Index].Box().Max.Z
	p.position.Z = top + p.params.Radius
	p.verticalVelocity = 0
	p.onGround = true
	p.jumping = false
}

func (p *Player) moveHorizontal(dt float32) {
	var local math.Vec3
	step := p.params.Speed * dt
	if p.input.Forward {
		local.Y += step
	}
	if p.input.Backward {
		local.Y -= step
	}
	if p.input.Left {
		local.X -= step
	}
	if p.input.Right {
		local.X += step
	}
	if local.X == 0 && local.Y == 0 {
		return
	}

	yaw := math.Radians(p.yaw)
	cos := float32(gomath.Cos(yaw))
	sin := float32(gomath.Sin(yaw))
	p.position.X += local.X*cos - local.Y*sin
	p.position.Y += local.X*sin + local.Y*cos
}

func (p *Player) resolveBody(blocks BlockSource) {
	r := p.params.Radius
	// Corrections can carry the sphere up to another radius away.
	reach := math.Vec3{X: 2 * r, Y: 2 * r, Z: 2 * r}
	candidates := blocks.Near(p.position.Sub(reach), p.position.Add(reach))
	if len(candidates) == 0 {
		return
	}
	p.position, _ = collision.ResolveSphere(p.position, r, world.Boxes(candidates), p.params.PushPasses)
}

func wrapDegrees(d float32) float32 {
	w := float32(gomath.Mod(float64(d), 360))
	if w < 0 {
		w += 360
	}
	return w
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
