package world

import "fmt"

// Grid is a row-major tile map whose dimensions are carried with the data.
type Grid struct {
	width  int
	height int
	tiles  []TileCode
}

// NewGrid creates an empty grid of the given size.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]TileCode, width*height),
	}
}

// NewEnclosedGrid returns an empty grid with a wall border on all four sides.
func NewEnclosedGrid(width, height int) *Grid {
	g := NewGrid(width, height)
	for x := 0; x < width; x++ {
		g.tiles[x] = TileWall
		g.tiles[(height-1)*width+x] = TileWall
	}
	for y := 0; y < height; y++ {
		g.tiles[y*width] = TileWall
		g.tiles[y*width+width-1] = TileWall
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y).
func (g *Grid) At(x, y int) (TileCode, error) {
	if !g.InBounds(x, y) {
		return TileEmpty, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.tiles[y*g.width+x], nil
}

// Set stores code at (x, y).
func (g *Grid) Set(x, y int, code TileCode) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	g.tiles[y*g.width+x] = code
	return nil
}

// IsWall reports whether the cell is solid. Cells outside the grid count as walls.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.tiles[y*g.width+x] == TileWall
}

// IsTileBlocking lets the grid serve as a collision.TileChecker.
func (g *Grid) IsTileBlocking(tileX, tileY int) bool {
	return g.IsWall(tileX, tileY)
}

// GetWorldBounds returns the grid size in tiles.
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.width, g.height
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, tiles: make([]TileCode, len(g.tiles))}
	copy(c.tiles, g.tiles)
	return c
}
