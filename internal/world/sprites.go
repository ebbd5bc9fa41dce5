package world

import "fmt"

// SpriteKind distinguishes sprite imagery. Only enemies exist today.
type SpriteKind int

const (
	SpriteEnemy SpriteKind = iota
)

// Sprite is a billboard placed in the world, positioned at a cell center.
type Sprite struct {
	ID    int
	X, Y  float64
	Kind  SpriteKind
	Alive bool
}

// SpriteRegistry keeps sprites in the order they were found on the map
// (row-major), independent of the wall grid.
type SpriteRegistry struct {
	sprites []Sprite
}

// NewSpriteRegistry returns an empty registry.
func NewSpriteRegistry() *SpriteRegistry {
	return &SpriteRegistry{}
}

// ExtractSprites scans the grid row by row, registers a sprite for every
// marker cell and clears the marker so the grid holds static geometry only.
func ExtractSprites(g *Grid) *SpriteRegistry {
	r := NewSpriteRegistry()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[y*g.width+x] != TileEnemy {
				continue
			}
			r.Add(float64(x)+0.5, float64(y)+0.5, SpriteEnemy)
			g.tiles[y*g.width+x] = TileEmpty
		}
	}
	return r
}

// Add registers a live sprite and returns its ID.
func (r *SpriteRegistry) Add(x, y float64, kind SpriteKind) int {
	id := len(r.sprites)
	r.sprites = append(r.sprites, Sprite{ID: id, X: x, Y: y, Kind: kind, Alive: true})
	return id
}

// Len returns the number of registered sprites, dead ones included.
func (r *SpriteRegistry) Len() int { return len(r.sprites) }

// Get returns the sprite with the given ID.
func (r *SpriteRegistry) Get(id int) (Sprite, bool) {
	if id < 0 || id >= len(r.sprites) {
		return Sprite{}, false
	}
	return r.sprites[id], true
}

// Kill marks a sprite as dead. Dead sprites are skipped by the renderer.
func (r *SpriteRegistry) Kill(id int) error {
	if id < 0 || id >= len(r.sprites) {
		return fmt.Errorf("unknown sprite id %d", id)
	}
	r.sprites[id].Alive = false
	return nil
}

// Live returns the living sprites in registration order.
func (r *SpriteRegistry) Live() []Sprite {
	live := make([]Sprite, 0, len(r.sprites))
	for _, s := range r.sprites {
		if s.Alive {
			live = append(live, s)
		}
	}
	return live
}

// LiveCount returns how many sprites are still alive.
func (r *SpriteRegistry) LiveCount() int {
	n := 0
	for _, s := range r.sprites {
		if s.Alive {
			n++
		}
	}
	return n
}
