package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	flag "github.com/spf13/pflag"

	"raymaze/internal/config"
	"raymaze/internal/raycast"
	"raymaze/internal/render"
	"raymaze/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1000
	windowHeight = 700
	sidebarWidth = 260

	// One ray in rayStride screen columns is drawn on the map.
	rayStride = 8
)

type mapInfo struct {
	Path string
	Data *world.MapData
	Pose world.Pose
	Err  error
}

type viewer struct {
	cfg      *config.Config
	params   raycast.SpriteParams
	maps     []mapInfo
	mapIndex int
	showRays bool
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the configuration file")
	dir := flag.String("dir", "maps", "directory scanned when no map files are given")
	flag.Parse()

	ensureRuntimeCWD(*configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
		cfg = config.Default()
	}
	opts, err := render.OptionsFromConfig(cfg.Render)
	if err != nil {
		log.Fatal(err)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		if paths, err = findMaps(*dir); err != nil {
			log.Fatal(err)
		}
	}

	v := &viewer{
		cfg:      cfg,
		params:   opts.SpriteParams(),
		maps:     loadMaps(cfg, paths),
		showRays: true,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("raymaze map viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.showRays = !v.showRays
	}
	if len(v.maps) == 0 {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mapIndex = (v.mapIndex + 1) % len(v.maps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mapIndex--
		if v.mapIndex < 0 {
			v.mapIndex = len(v.maps) - 1
		}
	}

	// Q/E turn the start pose so the ray fan can be inspected from any angle.
	m := &v.maps[v.mapIndex]
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		m.Pose.Rotate(-v.cfg.GetRotSpeed())
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		m.Pose.Rotate(v.cfg.GetRotSpeed())
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, "no maps found", 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s failed to load:\n%v", m.Path, m.Err), 16, 16)
		return
	}

	padding := 16
	mapAreaW := windowWidth - sidebarWidth - padding*3
	mapAreaH := windowHeight - padding*2
	drawMapPanel(screen, v, m, padding, padding, mapAreaW, mapAreaH)
	drawSidebar(screen, v, m, padding*2+mapAreaW, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMapPanel(screen *ebiten.Image, v *viewer, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	grid := m.Data.Grid
	tileSize := w / grid.Width()
	if alt := h / grid.Height(); alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}
	originX := x + (w-grid.Width()*tileSize)/2
	originY := y + (h-grid.Height()*tileSize)/2

	floor := colorFromRGB(v.cfg.Render.FloorColor)
	for ty := 0; ty < grid.Height(); ty++ {
		for tx := 0; tx < grid.Width(); tx++ {
			cell := floor
			if grid.IsWall(tx, ty) {
				cell = color.RGBA{50, 50, 60, 255}
			}
			drawFilledRect(screen, originX+tx*tileSize+1, originY+ty*tileSize+1, tileSize-1, tileSize-1, cell)
		}
	}

	toScreen := func(wx, wy float64) (float32, float32) {
		return float32(float64(originX) + wx*float64(tileSize)), float32(float64(originY) + wy*float64(tileSize))
	}

	px, py := toScreen(m.Pose.Pos.X, m.Pose.Pos.Y)
	if v.showRays {
		drawRayFan(screen, v, m, px, py, toScreen)
	}

	for _, s := range m.Data.Sprites.Live() {
		sx, sy := toScreen(s.X, s.Y)
		clr := color.RGBA{230, 80, 80, 255}
		if raycast.IsVisibleAndClose(m.Pose, grid, s.X, s.Y, v.params) {
			clr = color.RGBA{255, 220, 0, 255}
		}
		vector.DrawFilledCircle(screen, sx, sy, float32(tileSize)*0.3, clr, true)
	}

	vector.DrawFilledCircle(screen, px, py, float32(tileSize)*0.35, color.RGBA{50, 200, 255, 255}, true)
	vector.StrokeCircle(screen, px, py, float32(tileSize)*0.35, 1, color.RGBA{255, 255, 255, 255}, true)
	dx, dy := toScreen(m.Pose.Pos.X+m.Pose.Dir.X, m.Pose.Pos.Y+m.Pose.Dir.Y)
	vector.StrokeLine(screen, px, py, dx, dy, 2, color.RGBA{255, 255, 255, 255}, true)
}

// drawRayFan casts the same columns the game would and draws each ray up to
// its wall hit.
func drawRayFan(screen *ebiten.Image, v *viewer, m mapInfo, px, py float32, toScreen func(float64, float64) (float32, float32)) {
	width := v.cfg.GetScreenWidth()
	for column := 0; column < width; column += rayStride {
		col, err := raycast.CastColumn(column, width, v.cfg.GetScreenHeight(), 1, m.Pose, m.Data.Grid)
		if err != nil {
			continue
		}
		// Along the ray the hit sits at perpendicular distance times the
		// ray direction, since the direction already folds in the plane.
		hx, hy := toScreen(m.Pose.Pos.X+col.Hit.RayDirX*col.Dist, m.Pose.Pos.Y+col.Hit.RayDirY*col.Dist)
		vector.StrokeLine(screen, px, py, hx, hy, 1, color.RGBA{120, 200, 120, 160}, true)
	}
}

func drawSidebar(screen *ebiten.Image, v *viewer, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	name := m.Data.Name
	if name == "" {
		name = filepath.Base(m.Path)
	}
	visible := 0
	for _, s := range m.Data.Sprites.Live() {
		if raycast.IsVisibleAndClose(m.Pose, m.Data.Grid, s.X, s.Y, v.params) {
			visible++
		}
	}

	lines := []string{
		fmt.Sprintf("%s (%d/%d)", name, v.mapIndex+1, len(v.maps)),
		fmt.Sprintf("Tiles: %dx%d", m.Data.Grid.Width(), m.Data.Grid.Height()),
		fmt.Sprintf("Enemies: %d", m.Data.Sprites.Len()),
		fmt.Sprintf("Visible and close: %d", visible),
		fmt.Sprintf("Start: (%.2f, %.2f)", m.Pose.Pos.X, m.Pose.Pos.Y),
		fmt.Sprintf("Angle: %.1f deg", m.Pose.Angle()*180/math.Pi),
		"",
		"Cyan: start  Red: enemies",
		"Yellow: in sprite range",
		"",
		"Left/Right (A/D): switch map",
		"Q/E: turn  R: toggle rays",
		"Esc: quit",
	}
	row := y + 12
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func findMaps(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.txt", "*.map", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

func loadMaps(cfg *config.Config, paths []string) []mapInfo {
	loader := world.NewMapLoader(cfg.GetMapWidth(), cfg.GetMapHeight(), log.Default())

	var fallback *world.StartPoint
	if s := cfg.Player.Start; s != nil {
		fallback = &world.StartPoint{X: s.X, Y: s.Y, Angle: s.Angle}
	}

	maps := make([]mapInfo, 0, len(paths))
	for _, path := range paths {
		info := mapInfo{Path: path}
		info.Data, info.Err = loader.LoadMap(path)
		if info.Err == nil {
			info.Pose, info.Err = info.Data.StartPose(fallback, cfg.Camera.PlaneScale)
		}
		maps = append(maps, info)
	}
	return maps
}

func colorFromRGB(rgb [3]int) color.RGBA {
	return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 255}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

// ensureRuntimeCWD moves to the executable's directory when started from
// elsewhere, so relative config and map paths still resolve.
func ensureRuntimeCWD(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
