// Package render composes frames from the raycast results onto a Canvas.
package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrRender is returned by a Canvas when a draw call cannot be carried out.
var ErrRender = errors.New("render failed")

var errNoTexture = errors.New("no texture loaded")

// Texture is an opaque image handle. Both *ebiten.Image and image.Image satisfy it.
type Texture interface {
	Bounds() image.Rectangle
}

// Canvas is the drawing surface a frame is composed onto.
type Canvas interface {
	Size() (width, height int)
	Clear(c color.Color)
	FillRect(r image.Rectangle, c color.Color)
	// DrawImage scales the src region of tex into dst.
	DrawImage(tex Texture, src, dst image.Rectangle) error
}

// Textures are the images a frame needs. Weapons is indexed by weapon slot.
type Textures struct {
	Wall    Texture
	Floor   Texture
	Enemy   Texture
	Weapons []Texture
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 0xff}
}
