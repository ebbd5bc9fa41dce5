package game

import (
	"raymaze/internal/config"
)

// Intents are the player's requests for one tick, already scaled to grid
// units and radians.
type Intents struct {
	Rotate       float64 // keyboard turn, radians, positive turns right
	RotateCamera float64 // mouse turn, radians
	Forward      float64
	Strafe       float64 // positive moves right
	Weapon       int     // -1 leaves the weapon unchanged
	Quit         bool
}

// NoIntents is an idle tick.
func NoIntents() Intents {
	return Intents{Weapon: -1}
}

// Add merges another set of intents into this one. The later weapon choice
// wins and any quit request sticks.
func (in Intents) Add(other Intents) Intents {
	in.Rotate += other.Rotate
	in.RotateCamera += other.RotateCamera
	in.Forward += other.Forward
	in.Strafe += other.Strafe
	if other.Weapon >= 0 {
		in.Weapon = other.Weapon
	}
	in.Quit = in.Quit || other.Quit
	return in
}

// KeyState is the set of held controls sampled from an input backend.
type KeyState struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	Quit        bool
	Weapon      int // -1 when no weapon key is down
}

// IntentsFromKeys scales held keys and a horizontal mouse delta (pixels)
// by the movement settings.
func IntentsFromKeys(keys KeyState, mouseDX float64, mv config.MovementConfig) Intents {
	in := NoIntents()
	if keys.Forward {
		in.Forward += mv.MoveSpeed
	}
	if keys.Back {
		in.Forward -= mv.MoveSpeed
	}
	if keys.StrafeRight {
		in.Strafe += mv.MoveSpeed
	}
	if keys.StrafeLeft {
		in.Strafe -= mv.MoveSpeed
	}
	if keys.TurnRight {
		in.Rotate += mv.RotationSpeed
	}
	if keys.TurnLeft {
		in.Rotate -= mv.RotationSpeed
	}
	in.RotateCamera = mouseDX * mv.MouseSensitivity
	in.Weapon = keys.Weapon
	in.Quit = keys.Quit
	return in
}
