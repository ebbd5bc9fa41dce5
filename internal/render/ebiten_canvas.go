package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenCanvas draws onto the screen image handed to ebiten's Draw.
type EbitenCanvas struct {
	dst *ebiten.Image
}

// NewEbitenCanvas wraps an ebiten image.
func NewEbitenCanvas(dst *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{dst: dst}
}

func (c *EbitenCanvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *EbitenCanvas) Clear(col color.Color) {
	c.dst.Fill(col)
}

func (c *EbitenCanvas) FillRect(r image.Rectangle, col color.Color) {
	vector.DrawFilledRect(c.dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), col, false)
}

func (c *EbitenCanvas) DrawImage(tex Texture, src, dst image.Rectangle) error {
	img, ok := tex.(*ebiten.Image)
	if !ok || img == nil {
		return fmt.Errorf("%w: texture %T is not an ebiten image", ErrRender, tex)
	}
	if src.Empty() || dst.Empty() {
		return fmt.Errorf("%w: empty rectangle src=%v dst=%v", ErrRender, src, dst)
	}

	sub, ok := img.SubImage(src).(*ebiten.Image)
	if !ok {
		return fmt.Errorf("%w: cannot take sub-image %v", ErrRender, src)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	c.dst.DrawImage(sub, op)
	return nil
}
