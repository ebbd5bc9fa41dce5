package raycast

import "math"

// DepthBuffer holds the perpendicular wall distance of every screen column
// for the frame being drawn.
type DepthBuffer struct {
	depths []float64
}

// NewDepthBuffer allocates a buffer for width columns, all at +Inf.
func NewDepthBuffer(width int) *DepthBuffer {
	db := &DepthBuffer{depths: make([]float64, width)}
	db.Reset()
	return db
}

// Reset marks every column as having no wall.
func (db *DepthBuffer) Reset() {
	for i := range db.depths {
		db.depths[i] = math.Inf(1)
	}
}

// Resize reallocates the buffer when the screen width changes.
func (db *DepthBuffer) Resize(width int) {
	if width == len(db.depths) {
		return
	}
	db.depths = make([]float64, width)
	db.Reset()
}

// Len returns the number of columns.
func (db *DepthBuffer) Len() int { return len(db.depths) }

// Set stores the wall distance for a column. Out of range columns are ignored.
func (db *DepthBuffer) Set(column int, dist float64) {
	if column >= 0 && column < len(db.depths) {
		db.depths[column] = dist
	}
}

// At returns the wall distance for a column, +Inf when unknown.
func (db *DepthBuffer) At(column int) float64 {
	if column < 0 || column >= len(db.depths) {
		return math.Inf(1)
	}
	return db.depths[column]
}
