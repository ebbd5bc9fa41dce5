package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/harbdog/raycaster-go/geom"

	"raymaze/internal/config"
	"raymaze/internal/world"
)

type drawCall struct {
	op       string
	tex      Texture
	src, dst image.Rectangle
}

// recordingCanvas records every call and fails draws of failOn.
type recordingCanvas struct {
	w, h   int
	calls  []drawCall
	failOn Texture
}

func (rc *recordingCanvas) Size() (int, int) { return rc.w, rc.h }

func (rc *recordingCanvas) Clear(c color.Color) {
	rc.calls = append(rc.calls, drawCall{op: "clear"})
}

func (rc *recordingCanvas) FillRect(r image.Rectangle, c color.Color) {
	rc.calls = append(rc.calls, drawCall{op: "fill", dst: r})
}

func (rc *recordingCanvas) DrawImage(tex Texture, src, dst image.Rectangle) error {
	rc.calls = append(rc.calls, drawCall{op: "draw", tex: tex, src: src, dst: dst})
	if rc.failOn != nil && tex == rc.failOn {
		return ErrRender
	}
	return nil
}

func (rc *recordingCanvas) draws(tex Texture) []drawCall {
	var out []drawCall
	for _, c := range rc.calls {
		if c.op == "draw" && c.tex == tex {
			out = append(out, c)
		}
	}
	return out
}

type testTextures struct {
	Textures
	wall, floor, enemy *image.RGBA
	weapons            []*image.RGBA
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func newTestTextures() testTextures {
	tt := testTextures{
		wall:  solid(64, 64, color.RGBA{B: 255, A: 255}),
		floor: solid(8, 8, color.RGBA{G: 128, A: 255}),
		enemy: solid(16, 16, color.RGBA{R: 255, A: 255}),
	}
	tt.Textures = Textures{Wall: tt.wall, Floor: tt.floor, Enemy: tt.enemy}
	for i := 0; i < 4; i++ {
		w := solid(30, 20, color.RGBA{R: uint8(40 * i), A: 255})
		tt.weapons = append(tt.weapons, w)
		tt.Weapons = append(tt.Weapons, w)
	}
	return tt
}

func quietCompositor(opts Options, tex Textures) *Compositor {
	return NewCompositor(opts, tex, nil, log.New(io.Discard, "", 0))
}

func pose(x, y, dirX, dirY, planeX, planeY float64) world.Pose {
	return world.Pose{
		Pos:   geom.Vector2{X: x, Y: y},
		Dir:   geom.Vector2{X: dirX, Y: dirY},
		Plane: geom.Vector2{X: planeX, Y: planeY},
	}
}

func pillarScene(t *testing.T) Scene {
	t.Helper()
	g := world.NewEnclosedGrid(15, 15)
	if err := g.Set(8, 7, world.TileWall); err != nil {
		t.Fatalf("set pillar: %v", err)
	}
	return Scene{
		Pose:    pose(7.5, 7.5, 1, 0, 0, 0.66),
		Grid:    g,
		Sprites: world.NewSpriteRegistry(),
	}
}

func TestRenderFrame_FourColumnScenario(t *testing.T) {
	tex := newTestTextures()
	c := quietCompositor(DefaultOptions(), tex.Textures)
	canvas := &recordingCanvas{w: 4, h: 100}

	stats := c.RenderFrame(canvas, pillarScene(t))

	walls := canvas.draws(tex.wall)
	if len(walls) != 4 {
		t.Fatalf("expected 4 wall strip draws, got %d", len(walls))
	}
	for x, call := range walls {
		want := image.Rect(x, 0, x+1, 99)
		if call.dst != want {
			t.Errorf("column %d: dst %v, want %v", x, call.dst, want)
		}
		if call.src.Dx() != 1 || call.src.Dy() != 64 {
			t.Errorf("column %d: expected a 1x64 texture column, got %v", x, call.src)
		}
		if d := c.Depth().At(x); math.Abs(d-0.5) > 1e-9 {
			t.Errorf("column %d: depth %v, want 0.5", x, d)
		}
	}
	if stats.ColumnsCast != 4 || stats.DrawFailures != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestRenderFrame_DrawOrder(t *testing.T) {
	tests := []struct {
		name   string
		double bool
		want   []string
	}{
		{"single weapon draw", false, []string{"clear", "floor", "wall", "wall", "wall", "wall", "weapon"}},
		{"double weapon draw", true, []string{"clear", "floor", "weapon", "wall", "wall", "wall", "wall", "weapon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := newTestTextures()
			opts := DefaultOptions()
			opts.DoubleWeaponDraw = tt.double
			c := quietCompositor(opts, tex.Textures)
			canvas := &recordingCanvas{w: 4, h: 100}

			scene := pillarScene(t)
			scene.Weapon = 2
			c.RenderFrame(canvas, scene)

			names := map[Texture]string{tex.wall: "wall", tex.floor: "floor", tex.weapons[2]: "weapon"}
			var got []string
			for _, call := range canvas.calls {
				if call.op == "clear" {
					got = append(got, "clear")
					continue
				}
				got = append(got, names[call.tex])
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRenderFrame_WeaponPlacement(t *testing.T) {
	tex := newTestTextures()
	c := quietCompositor(DefaultOptions(), tex.Textures)
	canvas := &recordingCanvas{w: 640, h: 480}

	scene := pillarScene(t)
	scene.Weapon = 1
	c.RenderFrame(canvas, scene)

	calls := canvas.draws(tex.weapons[1])
	if len(calls) != 1 {
		t.Fatalf("expected one weapon draw, got %d", len(calls))
	}
	// 480/3 = 160 high, 30x20 source keeps its 3:2 aspect.
	if want := image.Rect(200, 320, 440, 480); calls[0].dst != want {
		t.Errorf("weapon dst %v, want %v", calls[0].dst, want)
	}
	if len(canvas.draws(tex.weapons[0])) != 0 {
		t.Error("unselected weapon was drawn")
	}
}

func TestRenderFrame_SpritesInRegistryOrder(t *testing.T) {
	tex := newTestTextures()
	c := quietCompositor(DefaultOptions(), tex.Textures)
	canvas := &recordingCanvas{w: 640, h: 480}

	g := world.NewEnclosedGrid(15, 15)
	_ = g.Set(4, 5, world.TileEnemy)
	_ = g.Set(5, 5, world.TileEnemy)
	_ = g.Set(12, 5, world.TileEnemy)
	_ = g.Set(3, 9, world.TileEnemy)
	sprites := world.ExtractSprites(g)
	// (3,9) comes last in row-major order.
	if err := sprites.Kill(3); err != nil {
		t.Fatalf("kill: %v", err)
	}

	scene := Scene{Pose: pose(2.5, 5.5, 1, 0, 0, 0.66), Grid: g, Sprites: sprites}
	stats := c.RenderFrame(canvas, scene)

	enemies := canvas.draws(tex.enemy)
	if len(enemies) != 2 {
		t.Fatalf("expected 2 enemy draws, got %d", len(enemies))
	}
	if want := image.Rect(224, 144, 416, 336); enemies[0].dst != want {
		t.Errorf("first enemy dst %v, want %v", enemies[0].dst, want)
	}
	if want := image.Rect(256, 176, 384, 304); enemies[1].dst != want {
		t.Errorf("second enemy dst %v, want %v", enemies[1].dst, want)
	}
	if enemies[0].src != tex.enemy.Bounds() {
		t.Errorf("expected the whole sprite texture as source, got %v", enemies[0].src)
	}
	if stats.SpritesDrawn != 2 || stats.SpritesSkipped != 1 {
		t.Errorf("unexpected sprite stats %+v", stats)
	}
	if last := canvas.calls[len(canvas.calls)-1]; last.tex != tex.enemy {
		t.Error("sprites should be the last thing drawn")
	}
}

func TestRenderFrame_FailedDrawsDoNotAbort(t *testing.T) {
	tex := newTestTextures()
	monitorless := quietCompositor(DefaultOptions(), tex.Textures)
	canvas := &recordingCanvas{w: 4, h: 100, failOn: tex.wall}

	stats := monitorless.RenderFrame(canvas, pillarScene(t))

	if stats.DrawFailures != 4 {
		t.Errorf("expected 4 failed wall draws, got %d", stats.DrawFailures)
	}
	if len(canvas.draws(tex.weapons[0])) != 1 {
		t.Error("weapon should still be drawn after wall failures")
	}
	if monitorless.Monitor().DrawFailures() != 4 {
		t.Errorf("monitor saw %d failures, want 4", monitorless.Monitor().DrawFailures())
	}
	if monitorless.Monitor().FrameCount() != 1 {
		t.Errorf("expected 1 frame recorded, got %d", monitorless.Monitor().FrameCount())
	}
}

func TestRenderFrame_MissingTextures(t *testing.T) {
	c := quietCompositor(DefaultOptions(), Textures{})
	canvas := &recordingCanvas{w: 4, h: 100}

	stats := c.RenderFrame(canvas, pillarScene(t))

	if canvas.calls[0].op != "clear" || canvas.calls[1].op != "fill" {
		t.Errorf("expected clear then floor fill, got %+v", canvas.calls[:2])
	}
	if want := image.Rect(0, 50, 4, 100); canvas.calls[1].dst != want {
		t.Errorf("floor rect %v, want %v", canvas.calls[1].dst, want)
	}
	if stats.DrawFailures != 4 {
		t.Errorf("expected a failure per wall column, got %d", stats.DrawFailures)
	}
}

func TestRenderFrame_DrawFailuresLoggedOncePerFrame(t *testing.T) {
	var buf bytes.Buffer
	c := NewCompositor(DefaultOptions(), Textures{}, nil, log.New(&buf, "", 0))
	canvas := &recordingCanvas{w: 64, h: 100}

	for frame := 1; frame <= 2; frame++ {
		stats := c.RenderFrame(canvas, pillarScene(t))
		if stats.DrawFailures != 64 {
			t.Errorf("frame %d: expected a failure per wall column, got %d", frame, stats.DrawFailures)
		}
		if got := strings.Count(buf.String(), "wall: no texture loaded"); got != frame {
			t.Errorf("frame %d: wall failure logged %d times in total, want %d", frame, got, frame)
		}
	}
}

func TestRenderFrame_RayLeavingGrid(t *testing.T) {
	tex := newTestTextures()
	c := quietCompositor(DefaultOptions(), tex.Textures)
	canvas := &recordingCanvas{w: 4, h: 100}

	scene := Scene{Pose: pose(2.5, 2.5, 1, 0, 0, 0.66), Grid: world.NewGrid(5, 5)}
	stats := c.RenderFrame(canvas, scene)

	if stats.RayFailures != 4 || stats.ColumnsCast != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if len(canvas.draws(tex.wall)) != 0 {
		t.Error("no wall should be drawn for rays that left the grid")
	}
	if !math.IsInf(c.Depth().At(0), 1) {
		t.Errorf("expected +Inf depth, got %v", c.Depth().At(0))
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts := DefaultOptions()
	if opts.SpriteScale != 0.8 || opts.VisibilityThreshold != 4.0 || opts.VisibilityStep != 0.1 {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.SkyColor == ([3]int{}) {
		t.Error("sky colour was not copied")
	}
	if got := opts.SpriteParams().ConeHalfAngle; math.Abs(got-math.Pi/8) > 1e-12 {
		t.Errorf("expected pi/8 cone, got %v", got)
	}

	rc := config.Default().Render
	rc.DoubleWeaponDraw = true
	rc.SpriteScale = 0.5
	custom, err := OptionsFromConfig(rc)
	if err != nil {
		t.Fatalf("copy options: %v", err)
	}
	if !custom.DoubleWeaponDraw || custom.SpriteScale != 0.5 {
		t.Errorf("custom render config not copied: %+v", custom)
	}
}

func TestImageCanvas(t *testing.T) {
	c := NewImageCanvas(4, 4)
	red := color.RGBA{R: 255, A: 255}
	c.Clear(red)
	if got := c.Image().RGBAAt(3, 3); got != red {
		t.Errorf("clear: got %v", got)
	}

	blue := color.RGBA{B: 255, A: 255}
	c.FillRect(image.Rect(0, 2, 4, 10), blue)
	if got := c.Image().RGBAAt(1, 3); got != blue {
		t.Errorf("fill: got %v", got)
	}
	if got := c.Image().RGBAAt(1, 1); got != red {
		t.Errorf("fill leaked above its rect: %v", got)
	}

	green := color.RGBA{G: 255, A: 255}
	if err := c.DrawImage(solid(1, 1, green), image.Rect(0, 0, 1, 1), image.Rect(0, 0, 2, 2)); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := c.Image().RGBAAt(1, 1); got != green {
		t.Errorf("draw: got %v", got)
	}

	if err := c.DrawImage(boundsOnly{}, image.Rect(0, 0, 1, 1), image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrRender) {
		t.Errorf("expected ErrRender for foreign texture, got %v", err)
	}
	if err := c.DrawImage(solid(1, 1, green), image.Rectangle{}, image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrRender) {
		t.Errorf("expected ErrRender for empty source, got %v", err)
	}

	c.Resize(8, 2)
	if w, h := c.Size(); w != 8 || h != 2 {
		t.Errorf("resize: got %dx%d", w, h)
	}
}

type boundsOnly struct{}

func (boundsOnly) Bounds() image.Rectangle { return image.Rect(0, 0, 1, 1) }

func TestRenderFrame_ImageCanvasPixels(t *testing.T) {
	tex := newTestTextures()
	c := quietCompositor(DefaultOptions(), tex.Textures)
	canvas := NewImageCanvas(4, 100)

	scene := pillarScene(t)
	scene.Weapon = -1
	c.RenderFrame(canvas, scene)

	if got := canvas.Image().RGBAAt(1, 50); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected wall colour in the middle of the column, got %v", got)
	}
	if got := canvas.Image().RGBAAt(1, 99); got != (color.RGBA{G: 128, A: 255}) {
		t.Errorf("expected floor colour on the last row, got %v", got)
	}
}
