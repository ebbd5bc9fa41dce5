package world

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// DefaultPlaneScale gives a field of view of roughly 66 degrees.
const DefaultPlaneScale = 0.66

// Pose is the camera: position in grid units, facing direction and camera plane.
// Dir and Plane are always perpendicular and rotate together.
type Pose struct {
	Pos   geom.Vector2
	Dir   geom.Vector2
	Plane geom.Vector2
}

// NewPose builds a pose at (x, y) facing angle radians, with a plane of
// planeScale times the (unit) direction length.
func NewPose(x, y, angle, planeScale float64) Pose {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	return Pose{
		Pos:   geom.Vector2{X: x, Y: y},
		Dir:   geom.Vector2{X: dirX, Y: dirY},
		Plane: geom.Vector2{X: -dirY * planeScale, Y: dirX * planeScale},
	}
}

// Rotate turns the direction and the camera plane by angle radians.
func (p *Pose) Rotate(angle float64) {
	cos, sin := math.Cos(angle), math.Sin(angle)

	oldDirX := p.Dir.X
	p.Dir.X = p.Dir.X*cos - p.Dir.Y*sin
	p.Dir.Y = oldDirX*sin + p.Dir.Y*cos

	oldPlaneX := p.Plane.X
	p.Plane.X = p.Plane.X*cos - p.Plane.Y*sin
	p.Plane.Y = oldPlaneX*sin + p.Plane.Y*cos
}

// CameraX maps a screen column to [-1, 1).
func CameraX(column, screenWidth int) float64 {
	return 2*float64(column)/float64(screenWidth) - 1
}

// RayDir returns the direction of the ray through the given screen column.
func (p Pose) RayDir(column, screenWidth int) (float64, float64) {
	cameraX := CameraX(column, screenWidth)
	return p.Dir.X + p.Plane.X*cameraX, p.Dir.Y + p.Plane.Y*cameraX
}

// Angle returns the facing angle in radians.
func (p Pose) Angle() float64 {
	return math.Atan2(p.Dir.Y, p.Dir.X)
}

// Cell returns the grid cell containing the camera.
func (p Pose) Cell() (int, int) {
	return int(math.Floor(p.Pos.X)), int(math.Floor(p.Pos.Y))
}

// DistanceTo returns the straight-line distance from the camera to (x, y).
func (p Pose) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-p.Pos.X, y-p.Pos.Y)
}
