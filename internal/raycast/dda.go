// Package raycast turns a pose and a wall grid into per-column wall strips,
// a depth buffer and projected sprite rectangles.
package raycast

import (
	"fmt"
	"math"

	"raymaze/internal/world"
)

// farDelta stands in for |1/0| when a ray component is zero, so that axis is never stepped.
const farDelta = 1e30

// Hit describes where a column ray stopped.
type Hit struct {
	MapX, MapY   int
	Side         int // 0: crossed a vertical grid line (stepped in X), 1: stepped in Y
	StepX, StepY int
	RayDirX      float64
	RayDirY      float64
	Tile         world.TileCode
}

// CastColumnRay casts the ray through screen column of a screenWidth wide view.
func CastColumnRay(column, screenWidth int, pose world.Pose, grid *world.Grid) (Hit, error) {
	rayDirX, rayDirY := pose.RayDir(column, screenWidth)
	return CastRay(pose, rayDirX, rayDirY, grid)
}

// CastRay walks the grid from the camera along (rayDirX, rayDirY) with a DDA
// and stops on the first non-empty cell. Leaving the grid before hitting
// anything yields world.ErrOutOfBounds.
func CastRay(pose world.Pose, rayDirX, rayDirY float64, grid *world.Grid) (Hit, error) {
	mapX, mapY := pose.Cell()

	deltaDistX := farDelta
	if rayDirX != 0 {
		deltaDistX = math.Abs(1 / rayDirX)
	}
	deltaDistY := farDelta
	if rayDirY != 0 {
		deltaDistY = math.Abs(1 / rayDirY)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDirX < 0 {
		stepX = -1
		sideDistX = (pose.Pos.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1 - pose.Pos.X) * deltaDistX
	}
	if rayDirY < 0 {
		stepY = -1
		sideDistY = (pose.Pos.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1 - pose.Pos.Y) * deltaDistY
	}

	hit := Hit{StepX: stepX, StepY: stepY, RayDirX: rayDirX, RayDirY: rayDirY}
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			hit.Side = 0
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			hit.Side = 1
		}

		tile, err := grid.At(mapX, mapY)
		if err != nil {
			return Hit{}, fmt.Errorf("ray (%.3f,%.3f) from (%.2f,%.2f): %w", rayDirX, rayDirY, pose.Pos.X, pose.Pos.Y, err)
		}
		if tile != world.TileEmpty {
			hit.MapX, hit.MapY, hit.Tile = mapX, mapY, tile
			return hit, nil
		}
	}
}
