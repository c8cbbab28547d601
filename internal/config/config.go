// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  AssetsConfig  `yaml:"assets"`
	Scene   SceneConfig   `yaml:"scene"`
	Routes  []RouteConfig `yaml:"routes"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	MaxPixelRatio float32 `yaml:"max_pixel_ratio"`
}

// AssetsConfig points at the model, texture and shader files. Paths are URL-style and may
// carry cache-busting query strings; they are resolved against BaseURL, which is either a
// directory or an http(s) origin.
type AssetsConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	LegacyModel    string        `yaml:"legacy_model"`
	TextureDir     string        `yaml:"texture_dir"`
	TextureVersion string        `yaml:"texture_version"`
	SkyboxDir      string        `yaml:"skybox_dir"`
	NoiseTexture   string        `yaml:"noise_texture"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
}

// SceneConfig holds room presentation settings.
type SceneConfig struct {
	NarrowWidth     int           `yaml:"narrow_width"`
	Background      string        `yaml:"background"`
	Night           bool          `yaml:"night"`
	NightTransition time.Duration `yaml:"night_transition"`
}

// RouteConfig maps a name tag to a navigation target. Entries are matched in order.
type RouteConfig struct {
	Tag      string `yaml:"tag"`
	Route    string `yaml:"route"`
	External bool   `yaml:"external"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer toggles.
type DebugConfig struct {
	ShowHitboxes  bool   `yaml:"show_hitboxes"`
	LogFPS        bool   `yaml:"log_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "Room",
			Width:         1280,
			Height:        800,
			VSync:         true,
			MaxPixelRatio: 2,
		},
		Assets: AssetsConfig{
			BaseURL:        "./public",
			Model:          "/models/Room_Portfolio_Modified.glb?v=13",
			LegacyModel:    "/models/Room_Portfolio.glb",
			TextureDir:     "/textures/room",
			TextureVersion: "v=4",
			SkyboxDir:      "/textures/skybox/",
			NoiseTexture:   "/shaders/perlin.png",
			FetchTimeout:   30 * time.Second,
		},
		Scene: SceneConfig{
			NarrowWidth:     768,
			Background:      "#C5CCBE",
			NightTransition: 1500 * time.Millisecond,
		},
		Routes: DefaultRoutes(),
		Logging: LoggingConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// DefaultRoutes returns the built-in route table.
func DefaultRoutes() []RouteConfig {
	return []RouteConfig{
		{Tag: "My_Work_Button", Route: "/projects"},
		{Tag: "About_Button", Route: "/about"},
		{Tag: "Contact_Button", Route: "/about"},
		{Tag: "Coffee", Route: "/coffee"},
		{Tag: "GitHub", Route: "https://github.com/dannywillowliu-uchi", External: true},
		{Tag: "YouTube", Route: "https://www.youtube.com/@dannyliu7632", External: true},
		{Tag: "Instagram", Route: "https://www.instagram.com/dannywillowliu", External: true},
		{Tag: "Twitter", Route: "https://www.instagram.com/dannywillowliu", External: true},
		{Tag: "Headphones", Route: "https://open.spotify.com/user/7j4f1rsug0ea38pk293fh1dht", External: true},
		{Tag: "LinkedIn", Route: "https://www.linkedin.com/in/dwliu2", External: true},
		{Tag: "Boba", Route: "https://www.linkedin.com/in/dwliu2", External: true},
	}
}

// BackgroundRGB parses the scene background as "#RRGGBB" into 0..1 components.
func (s SceneConfig) BackgroundRGB() ([3]float32, error) {
	hex := strings.TrimPrefix(s.Background, "#")
	if len(hex) != 6 {
		return [3]float32{}, fmt.Errorf("background %q: want #RRGGBB", s.Background)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("background %q: %w", s.Background, err)
	}
	return [3]float32{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
