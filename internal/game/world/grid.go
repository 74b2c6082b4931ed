// Package world holds the block grid, the block-type registry and the
// layered world generator.
package world

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/blockworld/internal/engine/collision"
	"github.com/Faultbox/blockworld/pkg/math"
)

// HalfExtent is half the edge length of a block.
const HalfExtent = 0.5

// Coord identifies one unit cell of the world.
type Coord struct {
	X, Y, Z int
}

// Add returns c + other.
func (c Coord) Add(other Coord) Coord {
	return Coord{c.X + other.X, c.Y + other.Y, c.Z + other.Z}
}

// Center returns the world-space center of the cell.
func (c Coord) Center() math.Vec3 {
	return math.Vec3{X: float32(c.X), Y: float32(c.Y), Z: float32(c.Z)}
}

// Less orders coordinates by X, then Y, then Z.
func (c Coord) Less(other Coord) bool {
	if c.X != other.X {
		return c.X < other.X
	}
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.Z < other.Z
}

// CoordOf returns the cell containing p. Halves round away from zero.
func CoordOf(p math.Vec3) Coord {
	return Coord{
		X: int(gomath.Round(float64(p.X))),
		Y: int(gomath.Round(float64(p.Y))),
		Z: int(gomath.Round(float64(p.Z))),
	}
}

// BlockType is the type tag of a block, e.g. "stone".
type BlockType string

// Block is a placed block.
type Block struct {
	Coord Coord
	Type  BlockType
}

// Box returns the block's bounding box.
func (b Block) Box() collision.AABB {
	return BoxAt(b.Coord)
}

// BoxAt returns the bounding box of the cell at c.
func BoxAt(c Coord) collision.AABB {
	return collision.CenteredBox(c.Center(), HalfExtent)
}

// Grid is sparse, unbounded block storage keyed by coordinate.
// It is owned by the simulation and is not safe for concurrent use.
type Grid struct {
	blocks map[Coord]BlockType
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{blocks: make(map[Coord]BlockType)}
}

// Get returns the block at c.
func (g *Grid) Get(c Coord) (Block, bool) {
	t, ok := g.blocks[c]
	if !ok {
		return Block{}, false
	}
	return Block{Coord: c, Type: t}, true
}

// Has reports whether c holds a block.
func (g *Grid) Has(c Coord) bool {
	_, ok := g.blocks[c]
	return ok
}

// Insert places a block at c. It returns false without changing anything if
// the cell is already occupied.
func (g *Grid) Insert(c Coord, t BlockType) bool {
	if _, ok := g.blocks[c]; ok {
		return false
	}
	g.blocks[c] = t
	return true
}

// Remove deletes the block at c. It returns false if the cell was empty.
func (g *Grid) Remove(c Coord) bool {
	if _, ok := g.blocks[c]; !ok {
		return false
	}
	delete(g.blocks, c)
	return true
}

// Len returns the number of blocks.
func (g *Grid) Len() int {
	return len(g.blocks)
}

// Clear removes every block.
func (g *Grid) Clear() {
	clear(g.blocks)
}

// Blocks returns a snapshot of all blocks ordered by coordinate.
// The snapshot is unaffected by later edits.
func (g *Grid) Blocks() []Block {
	out := make([]Block, 0, len(g.blocks))
	for c, t := range g.blocks {
		out = append(out, Block{Coord: c, Type: t})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Coord.Less(out[j].Coord)
	})
	return out
}

// Range calls fn for each block of a snapshot until fn returns false.
// fn may edit the grid.
func (g *Grid) Range(fn func(Block) bool) {
	for _, b := range g.Blocks() {
		if !fn(b) {
			return
		}
	}
}

// Near returns the blocks whose cells intersect the region [from, to],
// ordered by coordinate.
func (g *Grid) Near(from, to math.Vec3) []Block {
	lo := cellFloor(from)
	hi := cellCeil(to)

	var out []Block
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				c := Coord{x, y, z}
				if t, ok := g.blocks[c]; ok {
					out = append(out, Block{Coord: c, Type: t})
				}
			}
		}
	}
	return out
}

// cellFloor returns the lowest cell whose box reaches p on every axis.
func cellFloor(p math.Vec3) Coord {
	return Coord{
		X: int(gomath.Ceil(float64(p.X) - HalfExtent)),
		Y: int(gomath.Ceil(float64(p.Y) - HalfExtent)),
		Z: int(gomath.Ceil(float64(p.Z) - HalfExtent)),
	}
}

// cellCeil returns the highest cell whose box reaches p on every axis.
func cellCeil(p math.Vec3) Coord {
	return Coord{
		X: int(gomath.Floor(float64(p.X) + HalfExtent)),
		Y: int(gomath.Floor(float64(p.Y) + HalfExtent)),
		Z: int(gomath.Floor(float64(p.Z) + HalfExtent)),
	}
}

// Boxes returns the bounding boxes of blocks in the same order.
func Boxes(blocks []Block) []collision.AABB {
	out := make([]collision.AABB, len(blocks))
	for i, b := range blocks {
		out[i] = b.Box()
	}
	return out
}
