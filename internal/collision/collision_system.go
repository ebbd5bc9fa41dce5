// Package collision keeps the camera out of walls.
package collision

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// CollisionSystem resolves player movement against the tile grid.
type CollisionSystem struct {
	tileChecker TileChecker
	size        float64
}

// NewCollisionSystem creates a system for a square player footprint of the
// given side length. A size of 0 checks the center point only.
func NewCollisionSystem(tileChecker TileChecker, size float64) *CollisionSystem {
	if size < 0 {
		size = 0
	}
	return &CollisionSystem{tileChecker: tileChecker, size: size}
}

// CanMoveTo reports whether the footprint centered at (x, y) is clear.
func (cs *CollisionSystem) CanMoveTo(x, y float64) bool {
	return cs.canMoveToWorldPosition(NewBoundingBox(x, y, cs.size, cs.size))
}

// ResolveMove applies (dx, dy) from (x, y) one axis at a time, dropping any
// component that would end inside a wall, so the player slides along walls.
func (cs *CollisionSystem) ResolveMove(x, y, dx, dy float64) (newX, newY float64, blocked bool) {
	newX, newY = x, y
	if dx != 0 {
		if cs.CanMoveTo(x+dx, newY) {
			newX = x + dx
		} else {
			blocked = true
		}
	}
	if dy != 0 {
		if cs.CanMoveTo(newX, y+dy) {
			newY = y + dy
		} else {
			blocked = true
		}
	}
	return newX, newY, blocked
}

// canMoveToWorldPosition checks collision with world tiles
func (cs *CollisionSystem) canMoveToWorldPosition(boundingBox *BoundingBox) bool {
	width, height := cs.tileChecker.GetWorldBounds()
	startTileX, startTileY, endTileX, endTileY := boundingBox.TileRange()

	for tileY := startTileY; tileY <= endTileY; tileY++ {
		for tileX := startTileX; tileX <= endTileX; tileX++ {
			if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
				return false
			}
			if cs.tileChecker.IsTileBlocking(tileX, tileY) {
				return false
			}
		}
	}
	return true
}
