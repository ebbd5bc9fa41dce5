package world

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MapLoader reads maps and checks them against the configured grid size.
type MapLoader struct {
	width  int
	height int
	logger *log.Logger
}

// StartPoint is an optional player start stored with the map.
type StartPoint struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"` // degrees, 0 faces +X
}

// MapData is the result of a successful load. Grid holds walls only;
// enemy markers have been moved into Sprites.
type MapData struct {
	Name    string
	Grid    *Grid
	Sprites *SpriteRegistry
	Start   *StartPoint
}

// yamlMap is the on-disk layout of .yaml/.yml maps.
type yamlMap struct {
	Name  string      `yaml:"name"`
	Rows  []string    `yaml:"rows"`
	Start *StartPoint `yaml:"start"`
}

// NewMapLoader creates a loader that accepts only width x height maps.
func NewMapLoader(width, height int, logger *log.Logger) *MapLoader {
	if logger == nil {
		logger = log.Default()
	}
	return &MapLoader{width: width, height: height, logger: logger}
}

// LoadMap loads a map file. Files ending in .yaml or .yml use the YAML
// layout, anything else is read as a plain digit grid.
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open map file %s: %v", ErrMapLoad, mapPath, err)
	}
	defer file.Close()

	var md *MapData
	switch strings.ToLower(filepath.Ext(mapPath)) {
	case ".yaml", ".yml":
		md, err = ml.ParseYAML(file)
	default:
		md, err = ml.ParseText(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mapPath, err)
	}
	if md.Name == "" {
		md.Name = strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	}

	ml.logger.Printf("[map] loaded %q: %dx%d, %d enemies", md.Name, md.Grid.Width(), md.Grid.Height(), md.Sprites.Len())
	return md, nil
}

// ParseText reads a grid with one row per line. Cells are single digits,
// optionally separated by spaces or commas. Blank lines and lines starting
// with # are ignored.
func (ml *MapLoader) ParseText(r io.Reader) (*MapData, error) {
	var rows [][]TileCode
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMapLoad, lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading map: %v", ErrMapLoad, err)
	}
	return ml.build("", rows, nil)
}

// ParseYAML reads the YAML layout: a name, a list of row strings and an
// optional start.
func (ml *MapLoader) ParseYAML(r io.Reader) (*MapData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading map: %v", ErrMapLoad, err)
	}
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", ErrMapLoad, err)
	}

	rows := make([][]TileCode, 0, len(ym.Rows))
	for i, line := range ym.Rows {
		row, err := parseRow(strings.TrimSpace(line))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMapLoad, i+1, err)
		}
		rows = append(rows, row)
	}
	return ml.build(ym.Name, rows, ym.Start)
}

func (ml *MapLoader) build(name string, rows [][]TileCode, start *StartPoint) (*MapData, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: map contains no rows", ErrMapLoad)
	}
	if len(rows) != ml.height {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrMapLoad, ml.height, len(rows))
	}

	grid := NewGrid(ml.width, ml.height)
	for y, row := range rows {
		if len(row) != ml.width {
			return nil, fmt.Errorf("%w: row %d has inconsistent width: expected %d, got %d", ErrMapLoad, y+1, ml.width, len(row))
		}
		for x, code := range row {
			grid.tiles[y*ml.width+x] = code
		}
	}

	if start != nil {
		if err := checkStart(grid, start.X, start.Y); err != nil {
			return nil, err
		}
	}

	sprites := ExtractSprites(grid)
	return &MapData{Name: name, Grid: grid, Sprites: sprites, Start: start}, nil
}

func parseRow(line string) ([]TileCode, error) {
	var tokens []string
	if strings.ContainsAny(line, ", \t") {
		tokens = strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	} else {
		tokens = strings.Split(line, "")
	}

	row := make([]TileCode, 0, len(tokens))
	for col, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("column %d: %q is not a tile code", col+1, tok)
		}
		code := TileCode(n)
		if !code.Valid() {
			return nil, fmt.Errorf("column %d: unknown tile code %d", col+1, n)
		}
		row = append(row, code)
	}
	return row, nil
}

func checkStart(g *Grid, x, y float64) error {
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	if !g.InBounds(cx, cy) {
		return fmt.Errorf("%w: start (%.2f,%.2f) is outside the map", ErrMapLoad, x, y)
	}
	if g.IsWall(cx, cy) {
		return fmt.Errorf("%w: start (%.2f,%.2f) is inside a wall", ErrMapLoad, x, y)
	}
	return nil
}

// StartPose picks the player start: the map's own start, then fallback,
// then the center of the first empty cell in row-major order.
func (md *MapData) StartPose(fallback *StartPoint, planeScale float64) (Pose, error) {
	start := md.Start
	if start == nil {
		start = fallback
	}
	if start != nil {
		if err := checkStart(md.Grid, start.X, start.Y); err != nil {
			return Pose{}, err
		}
		return NewPose(start.X, start.Y, start.Angle*math.Pi/180, planeScale), nil
	}

	for y := 0; y < md.Grid.Height(); y++ {
		for x := 0; x < md.Grid.Width(); x++ {
			if !md.Grid.IsWall(x, y) {
				return NewPose(float64(x)+0.5, float64(y)+0.5, 0, planeScale), nil
			}
		}
	}
	return Pose{}, fmt.Errorf("%w: map has no empty cell to start in", ErrMapLoad)
}
