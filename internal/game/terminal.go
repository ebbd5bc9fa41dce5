package game

import (
	"context"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"raymaze/internal/collision"
	"raymaze/internal/config"
	"raymaze/internal/render"
)

// upperHalfBlock lets one terminal cell show two pixels: the foreground
// colour paints the top half and the background the bottom half.
const upperHalfBlock = '▀'

// TerminalRunner plays the maze inside a terminal. Frames are rendered in
// software and blitted to the cell grid.
type TerminalRunner struct {
	config     *config.Config
	state      *State
	screen     tcell.Screen
	collision  *collision.CollisionSystem
	compositor *render.Compositor
	canvas     *render.ImageCanvas
	logger     *log.Logger
	pending    Intents
}

// NewTerminalRunner prepares a runner on an initialised screen.
func NewTerminalRunner(cfg *config.Config, state *State, compositor *render.Compositor, screen tcell.Screen, logger *log.Logger) *TerminalRunner {
	if logger == nil {
		logger = log.Default()
	}
	tr := &TerminalRunner{
		config:     cfg,
		state:      state,
		screen:     screen,
		collision:  collision.NewCollisionSystem(state.Grid, cfg.Movement.CollisionSize),
		compositor: compositor,
		canvas:     render.NewImageCanvas(1, 2),
		logger:     logger,
		pending:    NoIntents(),
	}
	tr.resize()
	return tr
}

// Run drives the frame loop until the player quits or ctx is done. Input
// arrives on a channel from the polling goroutine; all state changes
// happen on the loop goroutine.
func (tr *TerminalRunner) Run(ctx context.Context) error {
	ticker := time.NewTicker(tr.config.GetFrameInterval())
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := tr.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	for tr.state.Running {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			tr.handleEvent(ev)
		case <-ticker.C:
			tr.Step()
		}
	}
	return nil
}

func (tr *TerminalRunner) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		tr.pending = tr.pending.Add(TerminalKeyIntents(ev.Key(), ev.Rune(), tr.config.Movement))
	case *tcell.EventResize:
		tr.screen.Sync()
		tr.resize()
	}
}

// Step applies the input gathered since the last tick and draws a frame.
func (tr *TerminalRunner) Step() {
	ApplyIntents(tr.state, tr.pending, tr.collision)
	tr.pending = NoIntents()
	if !tr.state.Running {
		return
	}
	tr.compositor.RenderFrame(tr.canvas, tr.state.Scene())
	tr.blit()
	tr.screen.Show()
}

// resize matches the software canvas to the terminal: one column per cell
// and two pixel rows per cell.
func (tr *TerminalRunner) resize() {
	cols, rows := tr.screen.Size()
	if tr.config.Terminal.Width > 0 {
		cols = tr.config.Terminal.Width
	}
	if tr.config.Terminal.Height > 0 {
		rows = tr.config.Terminal.Height
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	tr.canvas.Resize(cols, rows*2)
}

func (tr *TerminalRunner) blit() {
	img := tr.canvas.Image()
	b := img.Bounds()
	for cy := 0; cy*2 < b.Dy(); cy++ {
		for cx := 0; cx < b.Dx(); cx++ {
			top := img.RGBAAt(cx, cy*2)
			bottom := img.RGBAAt(cx, cy*2+1)
			tr.screen.SetContent(cx, cy, upperHalfBlock, nil, CellStyle(top, bottom))
		}
	}
}

// CellStyle colours a half-block cell with two stacked pixels.
func CellStyle(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
}

// TerminalKeyIntents maps one key press to a tick's worth of intents.
// Terminals report presses, not held keys, so each event moves one step.
func TerminalKeyIntents(key tcell.Key, r rune, mv config.MovementConfig) Intents {
	keys := KeyState{Weapon: -1}
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		keys.Quit = true
	case tcell.KeyUp:
		keys.Forward = true
	case tcell.KeyDown:
		keys.Back = true
	case tcell.KeyLeft:
		keys.TurnLeft = true
	case tcell.KeyRight:
		keys.TurnRight = true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			keys.Forward = true
		case 's', 'S':
			keys.Back = true
		case 'a', 'A':
			keys.StrafeLeft = true
		case 'd', 'D':
			keys.StrafeRight = true
		case 'q', 'Q':
			keys.Quit = true
		case '1', '2', '3', '4':
			keys.Weapon = int(r - '1')
		}
	}
	return IntentsFromKeys(keys, 0, mv)
}
