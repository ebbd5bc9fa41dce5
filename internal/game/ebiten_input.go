package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"raymaze/internal/config"
	"raymaze/internal/game/keytracker"
)

var weaponKeys = [config.WeaponCount]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// EbitenInput samples keyboard and mouse once per ebiten tick.
type EbitenInput struct {
	movement   config.MovementConfig
	lastCursor int
	hasCursor  bool
	fpsToggle  keytracker.KeyStateTracker
}

// NewEbitenInput creates an input source using the given movement settings.
func NewEbitenInput(mv config.MovementConfig) *EbitenInput {
	return &EbitenInput{movement: mv}
}

// Poll reads the current key state and mouse motion.
func (ei *EbitenInput) Poll() Intents {
	keys := KeyState{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Back:        ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyLeft),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyRight),
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Weapon:      -1,
	}
	for i, key := range weaponKeys {
		if inpututil.IsKeyJustPressed(key) {
			keys.Weapon = i
		}
	}

	cursorX, _ := ebiten.CursorPosition()
	mouseDX := 0
	if ei.hasCursor {
		mouseDX = cursorX - ei.lastCursor
	}
	ei.lastCursor, ei.hasCursor = cursorX, true

	return IntentsFromKeys(keys, float64(mouseDX), ei.movement)
}

// ToggleFPS reports a fresh press of the F key.
func (ei *EbitenInput) ToggleFPS() bool {
	return ei.fpsToggle.IsKeyJustPressed(ebiten.KeyF)
}
