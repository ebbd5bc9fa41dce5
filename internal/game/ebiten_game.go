package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"raymaze/internal/collision"
	"raymaze/internal/config"
	"raymaze/internal/render"
)

// EbitenGame runs the maze in a window. It implements ebiten.Game.
type EbitenGame struct {
	ctx        context.Context
	config     *config.Config
	state      *State
	input      *EbitenInput
	collision  *collision.CollisionSystem
	compositor *render.Compositor
	perf       *PerfWatch
	showFPS    bool
}

// NewEbitenGame wires state, input and compositor together. Cancelling ctx
// ends the session at the next tick.
func NewEbitenGame(ctx context.Context, cfg *config.Config, state *State, compositor *render.Compositor) *EbitenGame {
	g := &EbitenGame{
		ctx:        ctx,
		config:     cfg,
		state:      state,
		input:      NewEbitenInput(cfg.Movement),
		collision:  collision.NewCollisionSystem(state.Grid, cfg.Movement.CollisionSize),
		compositor: compositor,
		showFPS:    cfg.Display.ShowFPS,
	}
	if cfg.Display.PerfDebug {
		g.perf = NewPerfWatch(nil)
	}
	return g
}

// Run opens the window and blocks until the player quits.
func (g *EbitenGame) Run() error {
	ebiten.SetWindowSize(g.config.GetScreenWidth(), g.config.GetScreenHeight())
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", g.config.Display.WindowTitle, g.state.MapName))
	if g.config.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if g.config.Display.TPS > 0 {
		ebiten.SetTPS(g.config.Display.TPS)
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	log.Printf("[game] session ended: %v", g.compositor.Monitor().GetDetailedStats())
	return nil
}

// Update handles input, movement and collisions for one tick.
func (g *EbitenGame) Update() error {
	if g.ctx.Err() != nil {
		g.state.Running = false
		return ebiten.Termination
	}
	if g.input.ToggleFPS() {
		g.showFPS = !g.showFPS
	}
	if g.perf != nil {
		g.perf.Observe(ebiten.ActualFPS(), time.Now(), g.compositor.Monitor())
	}
	ApplyIntents(g.state, g.input.Poll(), g.collision)
	if !g.state.Running {
		return ebiten.Termination
	}
	return nil
}

// Draw composes the frame onto the screen.
func (g *EbitenGame) Draw(screen *ebiten.Image) {
	g.compositor.RenderFrame(render.NewEbitenCanvas(screen), g.state.Scene())
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout keeps a fixed logical resolution regardless of window size.
func (g *EbitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}
