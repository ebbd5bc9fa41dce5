package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"raymaze/internal/config"
	"raymaze/internal/raycast"
	"raymaze/internal/render"
	"raymaze/internal/world"
)

// ray_dump prints a map as the engine sees it and the ray hits for the
// start pose, one line per sampled column.
func main() {
	configPath := flag.String("config", "../config.yaml", "path to the configuration file")
	columns := flag.IntP("columns", "n", 16, "number of columns to sample across the screen")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <map_file>\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
		cfg = config.Default()
	}

	md, err := world.NewMapLoader(cfg.GetMapWidth(), cfg.GetMapHeight(), log.Default()).LoadMap(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	pose, err := md.StartPose(nil, cfg.Camera.PlaneScale)
	if err != nil {
		log.Fatalf("Failed to place player: %v", err)
	}
	opts, err := render.OptionsFromConfig(cfg.Render)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Map %q (%dx%d)\n", md.Name, md.Grid.Width(), md.Grid.Height())
	fmt.Println(strings.Repeat("=", md.Grid.Width()+10))
	printGrid(md, pose)

	fmt.Printf("\nPose: pos=(%.3f, %.3f) dir=(%.3f, %.3f) plane=(%.3f, %.3f)\n",
		pose.Pos.X, pose.Pos.Y, pose.Dir.X, pose.Dir.Y, pose.Plane.X, pose.Plane.Y)

	w, h := cfg.GetScreenWidth(), cfg.GetScreenHeight()
	fmt.Printf("\nColumns (%dx%d screen):\n", w, h)
	step := w / max(*columns, 1)
	if step < 1 {
		step = 1
	}
	for x := 0; x < w; x += step {
		col, err := raycast.CastColumn(x, w, h, 64, pose, md.Grid)
		if err != nil {
			fmt.Printf("  x=%4d  %v\n", x, err)
			continue
		}
		fmt.Printf("  x=%4d  hit=(%2d,%2d) side=%d dist=%7.3f strip=[%3d,%3d] texX=%2d\n",
			x, col.Hit.MapX, col.Hit.MapY, col.Hit.Side, col.Dist, col.Strip.DrawStart, col.Strip.DrawEnd, col.TexX)
	}

	fmt.Println("\nSprites:")
	params := opts.SpriteParams()
	for _, s := range md.Sprites.Live() {
		fmt.Printf("  #%d at (%.1f, %.1f) dist=%.2f visible=%v in-range=%v\n",
			s.ID, s.X, s.Y, pose.DistanceTo(s.X, s.Y),
			raycast.IsVisible(pose, md.Grid, s.X, s.Y, params.VisibilityStep),
			raycast.IsVisibleAndClose(pose, md.Grid, s.X, s.Y, params))
	}
}

func printGrid(md *world.MapData, pose world.Pose) {
	px, py := pose.Cell()
	enemies := make(map[[2]int]bool)
	for _, s := range md.Sprites.Live() {
		enemies[[2]int{int(s.X), int(s.Y)}] = true
	}

	for y := 0; y < md.Grid.Height(); y++ {
		var b strings.Builder
		for x := 0; x < md.Grid.Width(); x++ {
			switch {
			case x == px && y == py:
				b.WriteByte('@')
			case enemies[[2]int{x, y}]:
				b.WriteByte('E')
			case md.Grid.IsWall(x, y):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		fmt.Println(b.String())
	}
}
