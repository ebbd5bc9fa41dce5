package collision

import "math"

// BoundingBox is an axis-aligned square footprint in grid units.
type BoundingBox struct {
	X      float64 // Center X coordinate
	Y      float64 // Center Y coordinate
	Width  float64
	Height float64
}

// NewBoundingBox creates a new bounding box centered at the given position
func NewBoundingBox(x, y, width, height float64) *BoundingBox {
	return &BoundingBox{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb *BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	halfWidth := bb.Width / 2
	halfHeight := bb.Height / 2
	return bb.X - halfWidth, bb.Y - halfHeight, bb.X + halfWidth, bb.Y + halfHeight
}

// TileRange returns the inclusive range of tiles the box overlaps.
func (bb *BoundingBox) TileRange() (startX, startY, endX, endY int) {
	minX, minY, maxX, maxY := bb.GetBounds()
	return int(math.Floor(minX)), int(math.Floor(minY)), int(math.Floor(maxX)), int(math.Floor(maxY))
}
