package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "poweroutage.toml"

type WindowConfig struct {
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`
	Title  string `toml:"title"`
}

type RenderConfig struct {
	ShadowSize int32   `toml:"shadow_size"`
	TargetFPS  int     `toml:"target_fps"`
	Fov        float32 `toml:"fov"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
}

type CameraConfig struct {
	Speed       float32 `toml:"speed"`
	Sensitivity float32 `toml:"sensitivity"`
}

type AssetConfig struct {
	// Dir is the root that model, image and skybox paths are resolved against.
	Dir string `toml:"dir"`
	// ShaderDir overrides the embedded shader sources when set.
	ShaderDir string `toml:"shader_dir"`
	// HotReload recompiles changed shaders without waiting for the dev key.
	HotReload bool `toml:"hot_reload"`
	// Layout is an optional scene layout override file.
	Layout string `toml:"layout"`
}

type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Camera CameraConfig `toml:"camera"`
	Assets AssetConfig  `toml:"assets"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{Width: 960, Height: 720, Title: "Power Outage"},
		Render: RenderConfig{
			ShadowSize: 2048,
			TargetFPS:  60,
			Fov:        45,
			Near:       0.1,
			Far:        100,
		},
		Camera: CameraConfig{Speed: 6.5, Sensitivity: 0.1},
		Assets: AssetConfig{Dir: "."},
	}
}

// Load reads a TOML file over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", expanded, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", expanded, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Render.ShadowSize <= 0 {
		errs = append(errs, fmt.Errorf("shadow_size must be positive, got %d", c.Render.ShadowSize))
	}
	if c.Render.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target_fps must be positive, got %d", c.Render.TargetFPS))
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		errs = append(errs, fmt.Errorf("clip planes must satisfy 0 < near < far, got %v/%v", c.Render.Near, c.Render.Far))
	}
	if c.Camera.Speed <= 0 || c.Camera.Sensitivity <= 0 {
		errs = append(errs, errors.New("camera speed and sensitivity must be positive"))
	}
	return errors.Join(errs...)
}

// AssetPath resolves a path relative to the asset directory.
func (c Config) AssetPath(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Assets.Dir, rel)
}
