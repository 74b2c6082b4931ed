// Package picking finds the block under the crosshair and applies break and
// place edits to the grid.
package picking

import (
	gomath "math"

	"github.com/Faultbox/blockworld/internal/engine/collision"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/pkg/math"
)

// Hit describes the block face struck by a pick ray.
type Hit struct {
	Coord    world.Coord
	Point    math.Vec3 // world-space surface point
	Normal   math.Vec3 // unit axis normal of the struck face
	Distance float32
}

// Adjacent returns the cell on the struck face side of the hit block.
func (h Hit) Adjacent() world.Coord {
	return h.Coord.Add(world.Coord{
		X: int(gomath.Round(float64(h.Normal.X))),
		Y: int(gomath.Round(float64(h.Normal.Y))),
		Z: int(gomath.Round(float64(h.Normal.Z))),
	})
}

// PlaceResult reports the outcome of Place.
type PlaceResult uint8

const (
	Placed PlaceResult = iota
	PlaceNoHit
	PlaceOccupied
	PlaceBlockedByPlayer
)

func (r PlaceResult) String() string {
	switch r {
	case Placed:
		return "placed"
	case PlaceNoHit:
		return "no_hit"
	case PlaceOccupied:
		return "occupied"
	case PlaceBlockedByPlayer:
		return "blocked_by_player"
	default:
		return "unknown"
	}
}

// Picker casts rays against a grid.
type Picker struct {
	grid *world.Grid

	// Reach limits pick distance; zero means unlimited.
	Reach float32
}

// New creates a picker over grid.
func New(grid *world.Grid, reach float32) *Picker {
	return &Picker{grid: grid, Reach: reach}
}

// Pick returns the nearest block struck by ray. Blocks at equal distance
// resolve in grid snapshot order (ascending X, then Y, then Z).
func (p *Picker) Pick(ray collision.Ray) (Hit, bool) {
	blocks := p.grid.Blocks()
	h, ok := collision.NearestHit(ray, world.Boxes(blocks))
	if !ok {
		return Hit{}, false
	}
	if p.Reach > 0 && h.T > p.Reach {
		return Hit{}, false
	}
	return Hit{
		Coord:    blocks[h.Index].Coord,
		Point:    h.Point,
		Normal:   h.Normal,
		Distance: h.T,
	}, true
}

// Break removes the struck block. It returns false if the cell was already
// empty.
func (p *Picker) Break(hit Hit) bool {
	return p.grid.Remove(hit.Coord)
}

// Place puts a block of type t against the struck face unless the target
// cell is occupied or is one of the player's cells.
func (p *Picker) Place(hit Hit, t world.BlockType, player [2]world.Coord) (world.Coord, PlaceResult) {
	target := hit.Adjacent()
	if p.grid.Has(target) {
		return target, PlaceOccupied
	}
	if target == player[0] || target == player[1] {
		return target, PlaceBlockedByPlayer
	}
	if !p.grid.Insert(target, t) {
		return target, PlaceOccupied
	}
	return target, Placed
}
