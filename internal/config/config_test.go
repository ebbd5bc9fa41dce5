package config

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.GetMapWidth() != 15 || cfg.GetMapHeight() != 15 {
		t.Errorf("expected 15x15 default map, got %dx%d", cfg.GetMapWidth(), cfg.GetMapHeight())
	}
	if math.Abs(cfg.GetSpriteConeAngle()-math.Pi/8) > 1e-12 {
		t.Errorf("expected pi/8 cone, got %v", cfg.GetSpriteConeAngle())
	}
	if cfg.GetFrameInterval() != 16*time.Millisecond {
		t.Errorf("expected 16ms frame interval, got %v", cfg.GetFrameInterval())
	}
}

func TestLoadConfig_OverridesOnTopOfDefaults(t *testing.T) {
	path := writeConfig(t, `
display:
  screen_width: 320
world:
  map_width: 20
  map_height: 10
player:
  start: {x: 2.5, y: 3.5, angle: 90}
render:
  double_weapon_draw: true
  sky_color: [10, 20, 30]
assets:
  weapons: [a.png, b.png, c.png, d.png]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.GetScreenWidth() != 320 {
		t.Errorf("expected width 320, got %d", cfg.GetScreenWidth())
	}
	if cfg.GetScreenHeight() != 480 {
		t.Errorf("expected default height 480 to survive, got %d", cfg.GetScreenHeight())
	}
	if cfg.GetMapWidth() != 20 || cfg.GetMapHeight() != 10 {
		t.Errorf("unexpected map size %dx%d", cfg.GetMapWidth(), cfg.GetMapHeight())
	}
	if cfg.Player.Start == nil || cfg.Player.Start.Angle != 90 {
		t.Errorf("unexpected start %+v", cfg.Player.Start)
	}
	if !cfg.Render.DoubleWeaponDraw || cfg.Render.SkyColor != [3]int{10, 20, 30} {
		t.Errorf("render overrides not applied: %+v", cfg.Render)
	}
	if cfg.Render.SpriteScale != 0.8 {
		t.Errorf("expected default sprite scale, got %v", cfg.Render.SpriteScale)
	}
	if cfg.Assets.Weapons[3] != "d.png" || len(cfg.Assets.Weapons) != WeaponCount {
		t.Errorf("unexpected weapons %v", cfg.Assets.Weapons)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist for missing file, got %v", err)
	}

	if _, err := LoadConfig(writeConfig(t, "display: [not, a, map]\n")); err == nil {
		t.Error("expected parse error")
	}

	if _, err := LoadConfig(writeConfig(t, "assets:\n  weapons: [only.png]\n")); err == nil {
		t.Error("expected validation error for a single weapon")
	}

	if _, err := LoadConfig(writeConfig(t, "display:\n  screen_width: 0\n")); err == nil {
		t.Error("expected validation error for zero width")
	}
}
