// Package sim runs the world tick: player movement followed by any block
// edits requested for that tick.
package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/engine/collision"
	"github.com/Faultbox/blockworld/internal/game/entity"
	"github.com/Faultbox/blockworld/internal/game/picking"
	"github.com/Faultbox/blockworld/internal/game/save"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/internal/metrics"
)

// Fixed step limits used by Advance.
const (
	MaxStep     = float32(1.0 / 60.0)
	MaxSubSteps = 8
)

// Frame is the input for one tick.
type Frame struct {
	Input entity.Input

	// LookDX and LookDY are degrees added to heading and pitch.
	LookDX float32
	LookDY float32

	Break bool
	Place bool

	// Select switches the block type used by Place. Empty keeps the
	// current selection.
	Select world.BlockType
}

// Options configures a Simulation.
type Options struct {
	Player      entity.Params
	Gen         world.GenParams
	Registry    *world.Registry
	Reach       float32
	DefaultType world.BlockType
	Metrics     *metrics.Metrics // may be nil
}

// DefaultOptions returns the standard setup.
func DefaultOptions() Options {
	return Options{
		Player:      entity.DefaultParams(),
		Gen:         world.DefaultGenParams(),
		Registry:    world.DefaultRegistry(),
		DefaultType: world.Stone,
	}
}

// Simulation owns the world state. It is not safe for concurrent use; the
// host loop calls Step, Save and Load from one goroutine.
type Simulation struct {
	grid     *world.Grid
	player   *entity.Player
	picker   *picking.Picker
	registry *world.Registry
	metrics  *metrics.Metrics
	gen      world.GenParams
	selected world.BlockType
	log      *zap.Logger
}

// New creates a simulation with an empty grid.
func New(opts Options) *Simulation {
	if opts.Registry == nil {
		opts.Registry = world.DefaultRegistry()
	}
	selected := opts.DefaultType
	if _, ok := opts.Registry.Lookup(selected); !ok {
		selected = world.Stone
	}

	grid := world.NewGrid()
	return &Simulation{
		grid:     grid,
		player:   entity.NewPlayer(opts.Player),
		picker:   picking.New(grid, opts.Reach),
		registry: opts.Registry,
		metrics:  opts.Metrics,
		gen:      opts.Gen,
		selected: selected,
		log:      logger.Named("sim"),
	}
}

// Grid returns the world grid.
func (s *Simulation) Grid() *world.Grid { return s.grid }

// Player returns the player.
func (s *Simulation) Player() *entity.Player { return s.player }

// Registry returns the block type registry.
func (s *Simulation) Registry() *world.Registry { return s.registry }

// Selected returns the block type used for placement.
func (s *Simulation) Selected() world.BlockType { return s.selected }

// PlayerState returns the camera-facing player view.
func (s *Simulation) PlayerState() entity.State { return s.player.State() }

// Blocks returns a sorted snapshot of the grid.
func (s *Simulation) Blocks() []world.Block { return s.grid.Blocks() }

// Generate fills the grid with the layered starting world.
func (s *Simulation) Generate() int {
	n := world.Generate(s.grid, s.gen)
	s.log.Info("world generated",
		zap.Int("size_x", s.gen.SizeX),
		zap.Int("size_y", s.gen.SizeY),
		zap.Int("blocks", n))
	s.metrics.SetBlocks(s.grid.Len())
	return n
}

// Step advances the simulation by dt seconds.
func (s *Simulation) Step(dt float32, f Frame) {
	start := time.Now()

	if f.LookDX != 0 || f.LookDY != 0 {
		s.player.Turn(f.LookDX, f.LookDY)
	}
	if f.Select != "" {
		s.Select(f.Select)
	}

	s.player.SetInput(f.Input)
	s.player.Update(dt, s.grid)

	if f.Break {
		s.breakBlock()
	}
	if f.Place {
		s.placeBlock()
	}

	s.metrics.SetGrounded(s.player.State().OnGround)
	s.metrics.ObserveTick(time.Since(start))
}

// Advance runs as many fixed sub-steps as needed to cover elapsed seconds,
// at most MaxSubSteps. Look, selection and edits apply on the first
// sub-step only. It returns the number of sub-steps run.
func (s *Simulation) Advance(elapsed float32, f Frame) int {
	if elapsed <= 0 {
		return 0
	}

	n := int(elapsed / MaxStep)
	if float32(n)*MaxStep < elapsed {
		n++
	}
	dt := elapsed / float32(n)
	if n > MaxSubSteps {
		n = MaxSubSteps
		dt = MaxStep
	}

	for i := 0; i < n; i++ {
		s.Step(dt, f)
		f = Frame{Input: f.Input}
	}
	return n
}

// Select changes the placement type. Unknown types are ignored.
func (s *Simulation) Select(t world.BlockType) bool {
	if _, ok := s.registry.Lookup(t); !ok {
		s.log.Warn("unknown block type", zap.String("type", string(t)))
		return false
	}
	if t != s.selected {
		s.selected = t
		s.log.Debug("block type selected", zap.String("type", string(t)))
	}
	return true
}

// Target returns the block under the crosshair.
func (s *Simulation) Target() (picking.Hit, bool) {
	return s.picker.Pick(collision.NewRay(s.player.Eye(), s.player.LookDirection()))
}

func (s *Simulation) breakBlock() {
	hit, ok := s.Target()
	if !ok {
		s.metrics.Edit("break", metrics.ResultMiss)
		return
	}
	if s.picker.Break(hit) {
		s.log.Debug("block broken", zap.Int("x", hit.Coord.X), zap.Int("y", hit.Coord.Y), zap.Int("z", hit.Coord.Z))
		s.metrics.Edit("break", metrics.ResultOK)
		s.metrics.SetBlocks(s.grid.Len())
	}
}

func (s *Simulation) placeBlock() {
	hit, ok := s.Target()
	if !ok {
		s.metrics.Edit("place", metrics.ResultMiss)
		return
	}
	at, res := s.picker.Place(hit, s.selected, s.player.Cells())
	if res != picking.Placed {
		s.log.Debug("placement rejected", zap.Stringer("reason", res))
		s.metrics.Edit("place", res.String())
		return
	}
	s.log.Debug("block placed",
		zap.Int("x", at.X), zap.Int("y", at.Y), zap.Int("z", at.Z),
		zap.String("type", string(s.selected)))
	s.metrics.Edit("place", metrics.ResultOK)
	s.metrics.SetBlocks(s.grid.Len())
}

// Save writes the grid to path. Call it between ticks.
func (s *Simulation) Save(path string) error {
	_, err := save.Store(path, s.grid)
	s.metrics.SaveOp("save", err)
	if err != nil {
		s.log.Error("save failed", zap.String("path", path), zap.Error(err))
	}
	return err
}

// Load replaces the grid with the save at path. On error the grid is left
// as it was. The player keeps its position. Call it between ticks.
func (s *Simulation) Load(path string) (save.ImportStats, error) {
	stats, err := save.LoadInto(path, s.grid)
	s.metrics.SaveOp("load", err)
	if err != nil {
		s.log.Warn("load failed", zap.String("path", path), zap.Error(err))
		return stats, err
	}
	s.metrics.SetBlocks(s.grid.Len())
	return stats, nil
}

// LoadOrGenerate loads path, or generates a fresh world if that fails.
// It reports whether the save was used.
func (s *Simulation) LoadOrGenerate(path string) bool {
	if _, err := s.Load(path); err == nil {
		return true
	}
	s.grid.Clear()
	s.Generate()
	return false
}
