// Package game implements the windowed host loop around the simulation.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/config"
	"github.com/Faultbox/blockworld/internal/engine/camera"
	"github.com/Faultbox/blockworld/internal/engine/debug"
	"github.com/Faultbox/blockworld/internal/engine/input"
	"github.com/Faultbox/blockworld/internal/engine/renderer"
	"github.com/Faultbox/blockworld/internal/engine/window"
	"github.com/Faultbox/blockworld/internal/game/entity"
	"github.com/Faultbox/blockworld/internal/game/sim"
	"github.com/Faultbox/blockworld/internal/game/world"
	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/internal/metrics"
)

const title = "blockworld"

// Game is the main game instance.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FirstPerson
	shots    *debug.Screenshots
	sim      *sim.Simulation
	savePath string
	log      *zap.Logger
}

// New creates the window and renderer and loads the configured save, or
// generates a fresh world when there is none.
func New(cfg *config.Config, m *metrics.Metrics) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		savePath: cfg.SavePath(),
		log:      logger.Named("game"),
	}
	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("save", g.savePath),
	)

	// The window also creates the OpenGL context.
	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window, since the GL context must exist.
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New(cfg.Graphics.MouseSensitivity)
	g.camera = camera.NewFirstPerson(cfg.Graphics.FOV)
	g.shots = debug.NewScreenshots("screenshots", title)
	g.sim = sim.New(sim.OptionsFromConfig(cfg, m))

	if !g.sim.LoadOrGenerate(g.savePath) {
		g.log.Info("no usable save, generated new world", zap.Int("blocks", g.sim.Grid().Len()))
	}

	g.window.CaptureMouse(true)
	g.log.Info("game initialized")
	return g, nil
}

// Run starts the main game loop. It returns when the window is closed or
// Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}

	g.log.Info("starting game loop")

	for g.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Input
		g.input.Poll()
		actions := g.input.Actions()
		if !g.handleActions(actions) {
			break
		}
		capture := actions.Capture

		// 2. Simulation
		g.sim.Advance(float32(dt), g.frame(g.input.Controls()))

		// 3. Render and present
		g.render()
		if capture {
			g.screenshot()
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %s - %d fps", title, g.sim.Selected(), frameCount))
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(frameStart); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

// handleActions applies host actions between ticks. It returns false when
// the loop should stop.
func (g *Game) handleActions(a input.Actions) bool {
	if a.Quit {
		g.running = false
		return false
	}
	if a.Resized {
		g.renderer.Resize(a.Width, a.Height)
	}
	if a.Save {
		// Errors are logged and counted by the simulation.
		_ = g.sim.Save(g.savePath)
	}
	if a.Load {
		_, _ = g.sim.Load(g.savePath)
	}
	return true
}

// frame converts sampled controls into a simulation frame. Digit keys
// select through the registry's hotkey slots.
func (g *Game) frame(c input.Controls) sim.Frame {
	f := sim.Frame{
		Input: entity.Input{
			Forward:  c.Forward,
			Backward: c.Backward,
			Left:     c.Left,
			Right:    c.Right,
			Jump:     c.Jump,
		},
		LookDX: c.LookDX,
		LookDY: c.LookDY,
		Break:  c.Break,
		Place:  c.Place,
	}
	if c.Slot != input.NoSlot {
		if t, ok := g.sim.Registry().BySlot(c.Slot); ok {
			f.Select = t
		}
	}
	return f
}

func (g *Game) render() {
	p := g.sim.Player()
	g.camera.Follow(p.Eye(), p.LookDirection())

	var target *world.Coord
	if hit, ok := g.sim.Target(); ok {
		target = &hit.Coord
	}

	g.renderer.Begin()
	g.renderer.DrawBlocks(g.camera.ViewProjection(g.renderer.Aspect()), g.sim.Blocks(), g.sim.Registry(), target)
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.shots.Capture(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases the window and renderer.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.CaptureMouse(false)
		g.window.Close()
	}
}
