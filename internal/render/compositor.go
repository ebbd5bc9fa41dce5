package render

import (
	"image"
	"log"

	"raymaze/internal/raycast"
	"raymaze/internal/threading/monitoring"
	"raymaze/internal/world"
)

// Scene is the read-only state one frame is drawn from.
type Scene struct {
	Pose    world.Pose
	Grid    *world.Grid
	Sprites *world.SpriteRegistry
	Weapon  int
}

// Compositor draws frames in a fixed order: sky, floor, walls, weapon, sprites.
type Compositor struct {
	opts     Options
	params   raycast.SpriteParams
	textures Textures
	depth    *raycast.DepthBuffer
	monitor  *monitoring.FrameMonitor
	logger   *log.Logger
	// logged holds the draw kinds that already reported a failure this frame.
	logged map[string]bool
}

// NewCompositor creates a compositor. A nil monitor or logger gets a default.
func NewCompositor(opts Options, textures Textures, monitor *monitoring.FrameMonitor, logger *log.Logger) *Compositor {
	if monitor == nil {
		monitor = monitoring.NewFrameMonitor(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Compositor{
		opts:     opts,
		params:   opts.SpriteParams(),
		textures: textures,
		depth:    raycast.NewDepthBuffer(0),
		monitor:  monitor,
		logger:   logger,
		logged:   make(map[string]bool),
	}
}

// Depth exposes the depth buffer of the last frame.
func (c *Compositor) Depth() *raycast.DepthBuffer { return c.depth }

// Monitor returns the frame monitor the compositor reports to.
func (c *Compositor) Monitor() *monitoring.FrameMonitor { return c.monitor }

// RenderFrame draws one frame onto canvas. Failed draws are logged and
// counted but never abort the frame.
func (c *Compositor) RenderFrame(canvas Canvas, scene Scene) monitoring.FrameStats {
	frame := c.monitor.StartFrame()
	defer frame.Stop()

	var stats monitoring.FrameStats
	clear(c.logged)
	w, h := canvas.Size()
	c.depth.Resize(w)
	c.depth.Reset()

	canvas.Clear(rgb(c.opts.SkyColor))
	c.drawFloor(canvas, w, h, &stats)
	if c.opts.DoubleWeaponDraw {
		c.drawWeapon(canvas, scene.Weapon, w, h, &stats)
	}

	walls := c.monitor.StartWallPass()
	c.drawWalls(canvas, scene, w, h, &stats)
	walls.Stop()

	c.drawWeapon(canvas, scene.Weapon, w, h, &stats)

	sprites := c.monitor.StartSpritePass()
	c.drawSprites(canvas, scene, w, h, &stats)
	sprites.Stop()

	c.monitor.RecordFrame(stats)
	return stats
}

func (c *Compositor) draw(canvas Canvas, what string, tex Texture, src, dst image.Rectangle, stats *monitoring.FrameStats) bool {
	var err error
	if tex == nil {
		err = errNoTexture
	} else {
		err = canvas.DrawImage(tex, src, dst)
	}
	if err == nil {
		return true
	}

	stats.DrawFailures++
	if !c.logged[what] {
		c.logger.Printf("[render] %s: %v", what, err)
		c.logged[what] = true
	}
	return false
}

func (c *Compositor) drawFloor(canvas Canvas, w, h int, stats *monitoring.FrameStats) {
	floor := image.Rect(0, h/2, w, h)
	if c.textures.Floor == nil {
		canvas.FillRect(floor, rgb(c.opts.FloorColor))
		return
	}
	c.draw(canvas, "floor", c.textures.Floor, c.textures.Floor.Bounds(), floor, stats)
}

func (c *Compositor) drawWalls(canvas Canvas, scene Scene, w, h int, stats *monitoring.FrameStats) {
	texW, texH, texMin := 1, 1, image.Point{}
	if c.textures.Wall != nil {
		b := c.textures.Wall.Bounds()
		texW, texH, texMin = b.Dx(), b.Dy(), b.Min
	}

	rayErrLogged := false
	for x := 0; x < w; x++ {
		col, err := raycast.CastColumn(x, w, h, texW, scene.Pose, scene.Grid)
		if err != nil {
			stats.RayFailures++
			if !rayErrLogged {
				c.logger.Printf("[render] column %d: %v", x, err)
				rayErrLogged = true
			}
			continue
		}
		stats.ColumnsCast++
		c.depth.Set(x, col.Dist)

		if col.Strip.DrawEnd <= col.Strip.DrawStart {
			continue
		}
		src := image.Rect(col.TexX, 0, col.TexX+1, texH).Add(texMin)
		dst := image.Rect(x, col.Strip.DrawStart, x+1, col.Strip.DrawEnd)
		c.draw(canvas, "wall", c.textures.Wall, src, dst, stats)
	}
}

func (c *Compositor) drawWeapon(canvas Canvas, weapon, w, h int, stats *monitoring.FrameStats) {
	if weapon < 0 || weapon >= len(c.textures.Weapons) {
		return
	}
	tex := c.textures.Weapons[weapon]

	var src, dst image.Rectangle
	if tex != nil && !tex.Bounds().Empty() {
		src = tex.Bounds()
		drawH := int(float64(h) * c.opts.WeaponScale)
		if drawH <= 0 {
			drawH = src.Dy()
		}
		drawW := drawH * src.Dx() / src.Dy()
		left := w/2 - drawW/2
		dst = image.Rect(left, h-drawH, left+drawW, h)
	}
	c.draw(canvas, "weapon", tex, src, dst, stats)
}

// drawSprites draws live sprites in registry order. Sprites are not sorted
// by distance, so overlapping sprites may layer incorrectly.
func (c *Compositor) drawSprites(canvas Canvas, scene Scene, w, h int, stats *monitoring.FrameStats) {
	if scene.Sprites == nil {
		return
	}
	for _, s := range scene.Sprites.Live() {
		if !raycast.IsVisibleAndClose(scene.Pose, scene.Grid, s.X, s.Y, c.params) {
			stats.SpritesSkipped++
			continue
		}
		proj, ok := raycast.ProjectSprite(scene.Pose, s.X, s.Y, w, h, c.depth, c.params)
		if !ok {
			stats.SpritesSkipped++
			continue
		}
		var src image.Rectangle
		if c.textures.Enemy != nil {
			src = c.textures.Enemy.Bounds()
		}
		if c.draw(canvas, "enemy", c.textures.Enemy, src, proj.Rect, stats) {
			stats.SpritesDrawn++
		}
	}
}
