package render

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ImageCanvas is a software canvas backed by an RGBA image. It feeds the
// terminal presenter and lets frames be rendered without a GPU.
type ImageCanvas struct {
	img *image.RGBA
}

// NewImageCanvas allocates a width x height canvas.
func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA { return c.img }

// Resize reallocates the backing image when the size changes.
func (c *ImageCanvas) Resize(width, height int) {
	if b := c.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *ImageCanvas) Clear(col color.Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

func (c *ImageCanvas) FillRect(r image.Rectangle, col color.Color) {
	xdraw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, xdraw.Src)
}

// DrawImage scales with nearest-neighbour sampling; textures stay unfiltered.
func (c *ImageCanvas) DrawImage(tex Texture, src, dst image.Rectangle) error {
	img, ok := tex.(image.Image)
	if !ok || img == nil {
		return fmt.Errorf("%w: texture %T is not an image.Image", ErrRender, tex)
	}
	if src.Empty() || dst.Empty() {
		return fmt.Errorf("%w: empty rectangle src=%v dst=%v", ErrRender, src, dst)
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, img, src, xdraw.Over, nil)
	return nil
}
