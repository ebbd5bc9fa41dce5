package render

import (
	"fmt"
	"math"

	"github.com/jinzhu/copier"

	"raymaze/internal/config"
	"raymaze/internal/raycast"
)

// Options controls what the compositor draws and how sprites are culled.
// Field names mirror config.RenderConfig so the two can be copied across.
type Options struct {
	SkyColor            [3]int
	FloorColor          [3]int
	VisibilityThreshold float64
	VisibilityStep      float64
	SpriteConeDegrees   float64
	SpriteScale         float64
	WeaponScale         float64
	// DoubleWeaponDraw also draws the weapon once before the walls.
	DoubleWeaponDraw bool
}

// DefaultOptions derives options from the built-in configuration. It panics
// if the render config no longer copies onto Options.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default().Render)
	if err != nil {
		panic(err)
	}
	return opts
}

// OptionsFromConfig copies the matching fields out of the render config.
func OptionsFromConfig(rc config.RenderConfig) (Options, error) {
	var opts Options
	if err := copier.Copy(&opts, &rc); err != nil {
		return Options{}, fmt.Errorf("copy render options: %w", err)
	}
	return opts, nil
}

// SpriteParams converts the options into raycast sprite settings.
func (o Options) SpriteParams() raycast.SpriteParams {
	return raycast.SpriteParams{
		VisibilityThreshold: o.VisibilityThreshold,
		VisibilityStep:      o.VisibilityStep,
		ConeHalfAngle:       o.SpriteConeDegrees * math.Pi / 180,
		Scale:               o.SpriteScale,
	}
}
