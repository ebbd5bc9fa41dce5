package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/jinzhu/copier"

	"raymaze/internal/collision"
	"raymaze/internal/config"
	"raymaze/internal/render"
	"raymaze/internal/world"
)

// ErrInitialization is returned when the game cannot be brought up.
var ErrInitialization = errors.New("initialization failed")

// State is everything that survives between frames. Only ApplyIntents
// mutates it; renderers read it through Scene.
type State struct {
	MapName string
	Pose    world.Pose
	Grid    *world.Grid
	Sprites *world.SpriteRegistry
	Weapon  int
	Running bool
}

// NewState places the player on a freshly loaded map.
func NewState(md *world.MapData, cfg *config.Config) (*State, error) {
	var fallback *world.StartPoint
	if cfg.Player.Start != nil {
		fallback = &world.StartPoint{}
		if err := copier.Copy(fallback, cfg.Player.Start); err != nil {
			return nil, fmt.Errorf("%w: player start: %v", ErrInitialization, err)
		}
	}

	pose, err := md.StartPose(fallback, cfg.Camera.PlaneScale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	return &State{
		MapName: md.Name,
		Pose:    pose,
		Grid:    md.Grid,
		Sprites: md.Sprites,
		Running: true,
	}, nil
}

// Scene is the read-only view handed to the compositor.
func (s *State) Scene() render.Scene {
	return render.Scene{
		Pose:    s.Pose,
		Grid:    s.Grid,
		Sprites: s.Sprites,
		Weapon:  s.Weapon,
	}
}

// ApplyIntents advances the state by one tick: quit, rotate, move with
// wall sliding, then weapon selection.
func ApplyIntents(s *State, in Intents, cs *collision.CollisionSystem) {
	if in.Quit {
		s.Running = false
		return
	}

	if turn := in.Rotate + in.RotateCamera; turn != 0 {
		s.Pose.Rotate(turn)
	}

	if in.Forward != 0 || in.Strafe != 0 {
		dx := s.Pose.Dir.X * in.Forward
		dy := s.Pose.Dir.Y * in.Forward
		if planeLen := math.Hypot(s.Pose.Plane.X, s.Pose.Plane.Y); planeLen > 0 {
			dx += s.Pose.Plane.X / planeLen * in.Strafe
			dy += s.Pose.Plane.Y / planeLen * in.Strafe
		}
		s.Pose.Pos.X, s.Pose.Pos.Y, _ = cs.ResolveMove(s.Pose.Pos.X, s.Pose.Pos.Y, dx, dy)
	}

	if in.Weapon >= 0 && in.Weapon < config.WeaponCount {
		s.Weapon = in.Weapon
	}
}
