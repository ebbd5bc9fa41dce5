package raycast

import (
	"image"
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"raymaze/internal/mathutil"
	"raymaze/internal/world"
)

// SpriteParams tunes sprite visibility and projection.
type SpriteParams struct {
	VisibilityThreshold float64 // sprites at or beyond this distance are skipped
	VisibilityStep      float64 // sampling step of the sight line
	ConeHalfAngle       float64 // radians either side of the view direction
	Scale               float64 // sprite size relative to a wall at the same depth
}

// DefaultSpriteParams returns the stock sprite settings.
func DefaultSpriteParams() SpriteParams {
	return SpriteParams{
		VisibilityThreshold: 4.0,
		VisibilityStep:      0.1,
		ConeHalfAngle:       math.Pi / 8,
		Scale:               0.8,
	}
}

// IsVisible marches from the camera to (targetX, targetY) in step sized
// increments and fails on the first sample inside a wall or off the grid.
// The march is sampled, so a sight line clipping a wall corner between two
// samples can still count as visible.
func IsVisible(pose world.Pose, grid *world.Grid, targetX, targetY, step float64) bool {
	dx := targetX - pose.Pos.X
	dy := targetY - pose.Pos.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return true
	}
	if step <= 0 {
		step = DefaultSpriteParams().VisibilityStep
	}

	ux, uy := dx/dist, dy/dist
	for t := 0.0; t < dist; t += step {
		cx := int(math.Floor(pose.Pos.X + t*ux))
		cy := int(math.Floor(pose.Pos.Y + t*uy))
		if !grid.InBounds(cx, cy) || grid.IsWall(cx, cy) {
			return false
		}
	}
	return true
}

// IsVisibleAndClose skips the march entirely for targets at or beyond the threshold.
func IsVisibleAndClose(pose world.Pose, grid *world.Grid, targetX, targetY float64, params SpriteParams) bool {
	if pose.DistanceTo(targetX, targetY) >= params.VisibilityThreshold {
		return false
	}
	return IsVisible(pose, grid, targetX, targetY, params.VisibilityStep)
}

// NormalizeAngle wraps an angle into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// CameraTransform maps a world point into camera space: x is lateral
// offset, y is depth along the view direction.
func CameraTransform(pose world.Pose, targetX, targetY float64) (float64, float64) {
	dx := targetX - pose.Pos.X
	dy := targetY - pose.Pos.Y
	invDet := 1.0 / (pose.Plane.X*pose.Dir.Y - pose.Dir.X*pose.Plane.Y)
	transformX := invDet * (pose.Dir.Y*dx - pose.Dir.X*dy)
	transformY := invDet * (-pose.Plane.Y*dx + pose.Plane.X*dy)
	return transformX, transformY
}

// SpriteProjection is a sprite that passed every test and should be drawn.
type SpriteProjection struct {
	Rect       image.Rectangle
	ScreenX    int
	TransformY float64
}

// ProjectSprite places a point sprite on screen. It reports false when the
// sprite is behind the camera, outside the view cone, degenerate after
// clamping, or hidden behind the wall drawn at its center column.
func ProjectSprite(pose world.Pose, targetX, targetY float64, screenW, screenH int, depth *DepthBuffer, params SpriteParams) (SpriteProjection, bool) {
	transformX, transformY := CameraTransform(pose, targetX, targetY)
	if transformY <= 0 {
		return SpriteProjection{}, false
	}

	targetAngle := math.Atan2(targetY-pose.Pos.Y, targetX-pose.Pos.X)
	if math.Abs(NormalizeAngle(targetAngle-pose.Angle())) > params.ConeHalfAngle {
		return SpriteProjection{}, false
	}

	screenX := int(geom.Clamp(float64(screenW)/2*(1+transformX/transformY), 0, float64(screenW-1)))

	size := int(geom.Clamp(float64(screenH)/transformY*params.Scale, 0, maxLineHeight))
	startY := mathutil.IntMax(screenH/2-size/2, 0)
	startX := mathutil.IntMax(screenX-size/2, 0)
	endY := mathutil.IntMin(startY+size, screenH-1)
	endX := mathutil.IntMin(startX+size, screenW-1)

	if startX >= endX || startY >= endY {
		return SpriteProjection{}, false
	}
	if transformY >= depth.At(screenX) {
		return SpriteProjection{}, false
	}

	return SpriteProjection{
		Rect:       image.Rect(startX, startY, endX, endY),
		ScreenX:    screenX,
		TransformY: transformY,
	}, true
}
