package raycast

import (
	"math"

	"raymaze/internal/mathutil"
	"raymaze/internal/world"
)

// maxLineHeight caps strip heights for cameras pressed against a wall.
const maxLineHeight = 1 << 20

// WallStrip is the vertical extent of one column's wall, both ends inclusive.
type WallStrip struct {
	LineHeight int
	DrawStart  int
	DrawEnd    int
}

// Column is everything the compositor needs to draw one screen column.
type Column struct {
	Hit   Hit
	Dist  float64
	Strip WallStrip
	TexX  int
}

// PerpWallDist returns the distance from the camera plane to the hit wall,
// measured along the view direction so that walls do not bow (no fisheye).
func PerpWallDist(hit Hit, pose world.Pose) float64 {
	if hit.Side == 0 {
		return (float64(hit.MapX) - pose.Pos.X + float64(1-hit.StepX)/2) / hit.RayDirX
	}
	return (float64(hit.MapY) - pose.Pos.Y + float64(1-hit.StepY)/2) / hit.RayDirY
}

// ProjectWallStrip centers a strip of height screenHeight/dist and clamps it to the screen.
func ProjectWallStrip(dist float64, screenHeight int) WallStrip {
	lh := float64(screenHeight) / dist
	if lh > maxLineHeight || math.IsNaN(lh) {
		lh = maxLineHeight
	}
	lineHeight := int(lh)

	start := -lineHeight/2 + screenHeight/2
	end := lineHeight/2 + screenHeight/2
	return WallStrip{
		LineHeight: lineHeight,
		DrawStart:  mathutil.IntClamp(start, 0, screenHeight-1),
		DrawEnd:    mathutil.IntClamp(end, 0, screenHeight-1),
	}
}

// WallX is the fractional position of the hit along the wall face, in [0, 1).
func WallX(hit Hit, pose world.Pose, dist float64) float64 {
	var wallX float64
	if hit.Side == 0 {
		wallX = pose.Pos.Y + dist*hit.RayDirY
	} else {
		wallX = pose.Pos.X + dist*hit.RayDirX
	}
	return wallX - math.Floor(wallX)
}

// TextureColumn picks the texture column for a hit. Faces seen from the
// positive side are mirrored so textures read the same way from every approach.
func TextureColumn(hit Hit, pose world.Pose, dist float64, texWidth int) int {
	texX := int(WallX(hit, pose, dist) * float64(texWidth))
	if hit.Side == 0 && hit.RayDirX > 0 {
		texX = texWidth - texX - 1
	}
	if hit.Side == 1 && hit.RayDirY < 0 {
		texX = texWidth - texX - 1
	}
	return mathutil.IntClamp(texX, 0, texWidth-1)
}

// CastColumn runs the traversal and projection for a single screen column.
func CastColumn(column, screenWidth, screenHeight, texWidth int, pose world.Pose, grid *world.Grid) (Column, error) {
	hit, err := CastColumnRay(column, screenWidth, pose, grid)
	if err != nil {
		return Column{}, err
	}
	dist := PerpWallDist(hit, pose)
	return Column{
		Hit:   hit,
		Dist:  dist,
		Strip: ProjectWallStrip(dist, screenHeight),
		TexX:  TextureColumn(hit, pose, dist, texWidth),
	}, nil
}
