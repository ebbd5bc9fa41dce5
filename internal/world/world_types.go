package world

import "errors"

// TileCode is the integer stored in each grid cell.
type TileCode int

const (
	TileEmpty TileCode = iota
	TileWall
	TileEnemy // spawn marker, cleared from the grid once the sprite registry is built
)

// Default grid size used when the configuration does not override it.
const (
	DefaultMapWidth  = 15
	DefaultMapHeight = 15
)

var (
	// ErrOutOfBounds is returned for any lookup outside the grid.
	ErrOutOfBounds = errors.New("grid index out of bounds")
	// ErrMapLoad wraps every failure of the map loader.
	ErrMapLoad = errors.New("map load failed")
)

// Valid reports whether code is one of the recognized tile codes.
func (t TileCode) Valid() bool {
	return t == TileEmpty || t == TileWall || t == TileEnemy
}

func (t TileCode) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}
