package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the binary looks for its configuration when no
// --config flag is given.
const DefaultPath = "config.yaml"

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	Terminal TerminalConfig `yaml:"terminal"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	ShowFPS      bool   `yaml:"show_fps"`
	PerfDebug    bool   `yaml:"perf_debug"` // log snapshots while FPS stays low
	TPS          int    `yaml:"tps"`
}

// WorldConfig fixes the grid size every map must match.
type WorldConfig struct {
	MapWidth  int `yaml:"map_width"`
	MapHeight int `yaml:"map_height"`
}

type PlayerConfig struct {
	// Start is used when the map file carries no start of its own.
	Start *StartConfig `yaml:"start"`
}

type StartConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"` // degrees
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`        // grid units per tick
	RotationSpeed    float64 `yaml:"rotation_speed"`    // radians per tick
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per pixel
	CollisionSize    float64 `yaml:"collision_size"`    // player box side, 0 = point
}

type CameraConfig struct {
	PlaneScale float64 `yaml:"plane_scale"`
}

type RenderConfig struct {
	SkyColor            [3]int  `yaml:"sky_color"`
	FloorColor          [3]int  `yaml:"floor_color"`
	VisibilityThreshold float64 `yaml:"visibility_threshold"`
	VisibilityStep      float64 `yaml:"visibility_step"`
	SpriteConeDegrees   float64 `yaml:"sprite_cone_degrees"`
	SpriteScale         float64 `yaml:"sprite_scale"`
	WeaponScale         float64 `yaml:"weapon_scale"` // weapon height as a fraction of the screen
	DoubleWeaponDraw    bool    `yaml:"double_weapon_draw"`
	FrameIntervalMs     int     `yaml:"frame_interval_ms"`
}

type AssetsConfig struct {
	Dir     string   `yaml:"dir"`
	Wall    string   `yaml:"wall"`
	Floor   string   `yaml:"floor"`
	Enemy   string   `yaml:"enemy"`
	Weapons []string `yaml:"weapons"`
}

type TerminalConfig struct {
	// Width and Height size the software frame blitted to the terminal;
	// 0 follows the terminal size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WeaponCount is the number of selectable weapons.
const WeaponCount = 4

// Default returns the built-in configuration. LoadConfig starts from it, so
// a config file only needs the keys it wants to change.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			WindowTitle:  "raymaze",
			TPS:          60,
		},
		World: WorldConfig{
			MapWidth:  15,
			MapHeight: 15,
		},
		Movement: MovementConfig{
			MoveSpeed:        0.08,
			RotationSpeed:    0.05,
			MouseSensitivity: 0.003,
		},
		Camera: CameraConfig{
			PlaneScale: 0.66,
		},
		Render: RenderConfig{
			SkyColor:            [3]int{135, 206, 235},
			FloorColor:          [3]int{84, 84, 84},
			VisibilityThreshold: 4.0,
			VisibilityStep:      0.1,
			SpriteConeDegrees:   22.5,
			SpriteScale:         0.8,
			WeaponScale:         1.0 / 3.0,
			FrameIntervalMs:     16,
		},
		Assets: AssetsConfig{
			Dir:     "assets",
			Wall:    "wall.png",
			Floor:   "floor.png",
			Enemy:   "enemy.png",
			Weapons: []string{"weapon0.png", "weapon1.png", "weapon2.png", "weapon3.png"},
		},
	}
}

// LoadConfig reads filename over the defaults and validates the result.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.World.MapWidth < 3 || c.World.MapHeight < 3 {
		errs = append(errs, fmt.Errorf("map size must be at least 3x3, got %dx%d", c.World.MapWidth, c.World.MapHeight))
	}
	if c.Camera.PlaneScale <= 0 {
		errs = append(errs, fmt.Errorf("camera plane_scale must be positive, got %v", c.Camera.PlaneScale))
	}
	if c.Render.VisibilityStep <= 0 {
		errs = append(errs, fmt.Errorf("render visibility_step must be positive, got %v", c.Render.VisibilityStep))
	}
	if len(c.Assets.Weapons) != WeaponCount {
		errs = append(errs, fmt.Errorf("expected %d weapon textures, got %d", WeaponCount, len(c.Assets.Weapons)))
	}
	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values

func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetMapWidth() int {
	return c.World.MapWidth
}

func (c *Config) GetMapHeight() int {
	return c.World.MapHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetSpriteConeAngle returns the sprite cone half-angle in radians.
func (c *Config) GetSpriteConeAngle() float64 {
	return c.Render.SpriteConeDegrees * math.Pi / 180
}

// GetFrameInterval returns the pause between frames of the terminal loop.
func (c *Config) GetFrameInterval() time.Duration {
	if c.Render.FrameIntervalMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.Render.FrameIntervalMs) * time.Millisecond
}
