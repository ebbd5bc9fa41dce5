// Package keytracker turns level-triggered key state into edge events.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// JustPressed feeds the current key state and reports a released-to-pressed edge.
func (k *KeyStateTracker) JustPressed(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.JustPressed(ebiten.IsKeyPressed(key))
}
