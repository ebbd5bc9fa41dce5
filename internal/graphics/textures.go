// Package graphics loads the texture set the renderer draws with.
package graphics

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"raymaze/internal/config"
	"raymaze/internal/render"
	"raymaze/internal/threading/core"
)

// ErrAssetLoad wraps every texture loading failure.
var ErrAssetLoad = errors.New("asset load failed")

// TextureSet holds the decoded images for one game session.
type TextureSet struct {
	Wall    image.Image
	Floor   image.Image
	Enemy   image.Image
	Weapons []image.Image
}

// LoadTextureSet decodes every texture named in cfg from cfg.Dir. Files are
// decoded in parallel; the first failure aborts the whole set.
func LoadTextureSet(ctx context.Context, cfg config.AssetsConfig, logger *log.Logger) (*TextureSet, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(cfg.Weapons) != config.WeaponCount {
		return nil, fmt.Errorf("%w: expected %d weapon textures, got %d", ErrAssetLoad, config.WeaponCount, len(cfg.Weapons))
	}

	names := append([]string{cfg.Wall, cfg.Floor, cfg.Enemy}, cfg.Weapons...)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(cfg.Dir, name)
	}

	imgs, err := core.ParallelTry(ctx, paths, func(_ context.Context, path string) (image.Image, error) {
		return DecodeFile(path)
	})
	if err != nil {
		if errors.Is(err, ErrAssetLoad) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}

	set := &TextureSet{
		Wall:    imgs[0],
		Floor:   imgs[1],
		Enemy:   imgs[2],
		Weapons: imgs[3:],
	}

	logger.Printf("[assets] loaded %d textures from %s", len(imgs), cfg.Dir)
	return set, nil
}

// DecodeFile opens and decodes a PNG, JPEG, BMP or WebP image.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open texture %s: %v", ErrAssetLoad, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode texture %s: %v", ErrAssetLoad, path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: texture %s (%s) is empty", ErrAssetLoad, path, format)
	}
	return img, nil
}

// ImageTextures exposes the set as plain images for the software canvas.
func (ts *TextureSet) ImageTextures() render.Textures {
	return ts.convert(func(img image.Image) render.Texture { return img })
}

// EbitenTextures uploads the set as ebiten images for the window canvas.
func (ts *TextureSet) EbitenTextures() render.Textures {
	return ts.convert(func(img image.Image) render.Texture { return ebiten.NewImageFromImage(img) })
}

func (ts *TextureSet) convert(fn func(image.Image) render.Texture) render.Textures {
	out := render.Textures{
		Wall:    fn(ts.Wall),
		Floor:   fn(ts.Floor),
		Enemy:   fn(ts.Enemy),
		Weapons: make([]render.Texture, len(ts.Weapons)),
	}
	for i, w := range ts.Weapons {
		out.Weapons[i] = fn(w)
	}
	return out
}
