package raycast

import (
	"math"
	"testing"

	"raymaze/internal/world"
)

func TestIsVisibleAndClose_Scenario(t *testing.T) {
	params := DefaultSpriteParams()
	grid := world.NewEnclosedGrid(15, 15)
	enemyX, enemyY := 3.5, 3.5

	onTop := facing(3.5, 3.5, 1, 0, 0, 0.66)
	if !IsVisibleAndClose(onTop, grid, enemyX, enemyY, params) {
		t.Error("enemy in the camera's own cell should be visible")
	}

	player := facing(1.5, 3.5, 1, 0, 0, 0.66)
	if !IsVisibleAndClose(player, grid, enemyX, enemyY, params) {
		t.Fatal("expected clear line of sight across an empty room")
	}

	blocked := grid.Clone()
	if err := blocked.Set(2, 3, world.TileWall); err != nil {
		t.Fatalf("set wall: %v", err)
	}
	if IsVisibleAndClose(player, blocked, enemyX, enemyY, params) {
		t.Error("a wall between camera and enemy should hide it")
	}

	far := facing(8.5, 3.5, -1, 0, 0, -0.66)
	if IsVisibleAndClose(far, grid, enemyX, enemyY, params) {
		t.Error("enemy 5 cells away should be beyond the proximity threshold")
	}
	if !IsVisible(far, grid, enemyX, enemyY, params.VisibilityStep) {
		t.Error("distance alone should not fail the sight line")
	}
}

func TestIsVisible_LeavingGrid(t *testing.T) {
	grid := world.NewGrid(5, 5)
	pose := facing(1.5, 1.5, 1, 0, 0, 0.66)
	if IsVisible(pose, grid, 7.5, 1.5, 0.1) {
		t.Error("sight line leaving the grid should not be visible")
	}
	if !IsVisible(pose, grid, 4.5, 1.5, 0.1) {
		t.Error("sight line inside an open grid should be visible")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCameraTransform(t *testing.T) {
	tests := []struct {
		name         string
		pose         world.Pose
		tx, ty       float64
		wantX, wantY float64
	}{
		{"straight ahead", facing(2.5, 5.5, 1, 0, 0, 0.66), 5.5, 5.5, 0, 3},
		{"behind", facing(2.5, 5.5, 1, 0, 0, 0.66), 0.5, 5.5, 0, -2},
		{"facing +Y", facing(5.5, 2.5, 0, 1, -0.66, 0), 5.5, 4.5, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := CameraTransform(tt.pose, tt.tx, tt.ty)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("got (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestProjectSprite(t *testing.T) {
	const screenW, screenH = 640, 480
	params := DefaultSpriteParams()
	pose := facing(2.5, 5.5, 1, 0, 0, 0.66)

	depth := NewDepthBuffer(screenW)
	proj, ok := ProjectSprite(pose, 5.5, 5.5, screenW, screenH, depth, params)
	if !ok {
		t.Fatal("expected sprite straight ahead to be emitted")
	}
	if proj.ScreenX != 320 || math.Abs(proj.TransformY-3) > 1e-9 {
		t.Errorf("unexpected projection %+v", proj)
	}
	if proj.Rect.Min.X != 256 || proj.Rect.Min.Y != 176 || proj.Rect.Max.X != 384 || proj.Rect.Max.Y != 304 {
		t.Errorf("unexpected rect %v", proj.Rect)
	}
	t.Logf("sprite rect %v", proj.Rect)

	depth.Set(320, 3.5)
	if _, ok := ProjectSprite(pose, 5.5, 5.5, screenW, screenH, depth, params); !ok {
		t.Error("sprite nearer than the wall should be emitted")
	}

	depth.Set(320, 2.5)
	if _, ok := ProjectSprite(pose, 5.5, 5.5, screenW, screenH, depth, params); ok {
		t.Error("sprite behind the wall strip should be occluded")
	}

	depth.Set(320, proj.TransformY)
	if _, ok := ProjectSprite(pose, 5.5, 5.5, screenW, screenH, depth, params); ok {
		t.Error("sprite at exactly the wall depth should be occluded")
	}
}

func TestProjectSprite_Rejections(t *testing.T) {
	const screenW, screenH = 640, 480
	params := DefaultSpriteParams()
	pose := facing(2.5, 5.5, 1, 0, 0, 0.66)
	depth := NewDepthBuffer(screenW)

	tests := []struct {
		name   string
		tx, ty float64
	}{
		{"behind camera", 1.5, 5.5},
		{"outside view cone", 5.5, 7.5},
		{"same position", 2.5, 5.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if proj, ok := ProjectSprite(pose, tt.tx, tt.ty, screenW, screenH, depth, params); ok {
				t.Errorf("expected rejection, got %+v", proj)
			}
		})
	}
}
