// Package input turns SDL2 events into per-frame player controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// NoSlot means no hotkey digit was pressed this frame.
const NoSlot = -1

// Controls is everything the player asked for since the previous Poll.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool

	// LookDX and LookDY are degrees to add to heading and pitch.
	LookDX float32
	LookDY float32

	Break bool // left click
	Place bool // right click
	Slot  int  // last digit pressed, NoSlot if none
}

// Actions are host-level requests raised this frame.
type Actions struct {
	Quit    bool
	Save    bool // F5
	Load    bool // F6
	Capture bool // F12 screenshot
	Resized bool
	Width   int
	Height  int
}

// Input accumulates SDL events between frames.
type Input struct {
	// Sensitivity is degrees of turn per pixel of mouse motion.
	Sensitivity float32

	held    map[sdl.Scancode]bool
	motionX int32
	motionY int32
	clicks  struct{ left, right bool }
	slot    int
	actions Actions
}

// New creates an input handler.
func New(sensitivity float32) *Input {
	return &Input{
		Sensitivity: sensitivity,
		held:        make(map[sdl.Scancode]bool),
		slot:        NoSlot,
	}
}

// Poll drains the SDL event queue. Returns true if the game should quit.
func (i *Input) Poll() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	return i.actions.Quit
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.actions.Quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.actions.Resized = true
			i.actions.Width = int(e.Data1)
			i.actions.Height = int(e.Data2)
		}

	case *sdl.KeyboardEvent:
		code := e.Keysym.Scancode
		if e.Type == sdl.KEYUP {
			delete(i.held, code)
			return
		}
		i.held[code] = true
		if e.Repeat != 0 {
			return
		}
		switch code {
		case sdl.SCANCODE_ESCAPE:
			i.actions.Quit = true
		case sdl.SCANCODE_F5:
			i.actions.Save = true
		case sdl.SCANCODE_F6:
			i.actions.Load = true
		case sdl.SCANCODE_F12:
			i.actions.Capture = true
		default:
			if slot, ok := digit(code); ok {
				i.slot = slot
			}
		}

	case *sdl.MouseMotionEvent:
		i.motionX += e.XRel
		i.motionY += e.YRel

	case *sdl.MouseButtonEvent:
		if e.Type != sdl.MOUSEBUTTONDOWN {
			return
		}
		switch e.Button {
		case sdl.BUTTON_LEFT:
			i.clicks.left = true
		case sdl.BUTTON_RIGHT:
			i.clicks.right = true
		}
	}
}

// digit maps the number row to hotkey slots 0-9.
func digit(code sdl.Scancode) (int, bool) {
	switch {
	case code >= sdl.SCANCODE_1 && code <= sdl.SCANCODE_9:
		return int(code-sdl.SCANCODE_1) + 1, true
	case code == sdl.SCANCODE_0:
		return 0, true
	}
	return 0, false
}

// Controls returns the accumulated controls and resets the per-frame parts.
// Held movement keys carry over to the next frame.
func (i *Input) Controls() Controls {
	c := Controls{
		Forward:  i.held[sdl.SCANCODE_W],
		Backward: i.held[sdl.SCANCODE_S],
		Left:     i.held[sdl.SCANCODE_A],
		Right:    i.held[sdl.SCANCODE_D],
		Jump:     i.held[sdl.SCANCODE_SPACE],
		// Moving the mouse right or down turns right or down.
		LookDX: -float32(i.motionX) * i.Sensitivity,
		LookDY: -float32(i.motionY) * i.Sensitivity,
		Break:  i.clicks.left,
		Place:  i.clicks.right,
		Slot:   i.slot,
	}

	i.motionX, i.motionY = 0, 0
	i.clicks.left, i.clicks.right = false, false
	i.slot = NoSlot
	return c
}

// Actions returns the host actions raised since the last call and clears
// them.
func (i *Input) Actions() Actions {
	a := i.actions
	i.actions = Actions{}
	return a
}
