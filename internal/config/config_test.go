package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Errorf("expected 1280x800 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.MaxPixelRatio != 2 {
		t.Errorf("expected pixel ratio cap 2, got %v", cfg.Window.MaxPixelRatio)
	}
	if cfg.Assets.Model != "/models/Room_Portfolio_Modified.glb?v=13" {
		t.Errorf("unexpected model path %s", cfg.Assets.Model)
	}
	if cfg.Scene.NarrowWidth != 768 {
		t.Errorf("expected narrow width 768, got %d", cfg.Scene.NarrowWidth)
	}
	if cfg.Scene.NightTransition != 1500*time.Millisecond {
		t.Errorf("expected 1.5s night transition, got %v", cfg.Scene.NightTransition)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultRoutesOrder(t *testing.T) {
	routes := DefaultRoutes()
	if len(routes) == 0 {
		t.Fatal("expected built-in routes")
	}

	byTag := make(map[string]RouteConfig)
	for _, r := range routes {
		if _, dup := byTag[r.Tag]; dup {
			t.Errorf("duplicate route tag %s", r.Tag)
		}
		byTag[r.Tag] = r
	}

	if r := byTag["About_Button"]; r.Route != "/about" || r.External {
		t.Errorf("About_Button = %+v, want internal /about", r)
	}
	if r := byTag["GitHub"]; !r.External {
		t.Errorf("GitHub should be external, got %+v", r)
	}
}

func TestBackgroundRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]float32
		wantErr bool
	}{
		{in: "#FFFFFF", want: [3]float32{1, 1, 1}},
		{in: "000000", want: [3]float32{0, 0, 0}},
		{in: "#FF0000", want: [3]float32{1, 0, 0}},
		{in: "#FFF", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SceneConfig{Background: tt.in}.BackgroundRGB()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BackgroundRGB(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

assets:
  base_url: "https://example.com"
  fetch_timeout: 5s

scene:
  night: true

routes:
  - tag: "Mail"
    route: "mailto:someone@example.com"
    external: true
  - tag: "About_Button"
    route: "/about"

logging:
  level: "debug"
  log_file: "room.log"

debug:
  show_hitboxes: true
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 || !cfg.Window.Fullscreen {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Assets.BaseURL != "https://example.com" {
		t.Errorf("expected base url from file, got %s", cfg.Assets.BaseURL)
	}
	if cfg.Assets.FetchTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Assets.FetchTimeout)
	}
	// Unset keys keep their defaults.
	if cfg.Assets.Model != Default().Assets.Model {
		t.Errorf("model should keep default, got %s", cfg.Assets.Model)
	}
	if !cfg.Scene.Night {
		t.Error("expected night to be true")
	}
	if len(cfg.Routes) != 2 || cfg.Routes[0].Tag != "Mail" || !cfg.Routes[0].External {
		t.Errorf("routes should be replaced in file order, got %+v", cfg.Routes)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "room.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
	if !cfg.Debug.ShowHitboxes {
		t.Error("expected show_hitboxes to be true")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no model", func(c *Config) { c.Assets.Model = "" }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"empty route tag", func(c *Config) { c.Routes = append(c.Routes, RouteConfig{Route: "/x"}) }},
		{"bad background", func(c *Config) { c.Scene.Background = "green" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.LogFPS {
					t.Error("expected fps logging with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/srv/room" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.BaseURL != "/srv/room" {
					t.Errorf("expected base url /srv/room, got %s", cfg.Assets.BaseURL)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 390
				*flagHeight = 844
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 390 || cfg.Window.Height != 844 {
					t.Errorf("expected 390x844, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "night and hitbox flags",
			setup: func() { *flagNight, *flagShowHitboxes = true, true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Scene.Night || !cfg.Debug.ShowHitboxes {
					t.Errorf("expected night and hitboxes on, got %+v %+v", cfg.Scene, cfg.Debug)
				}
			},
			teardown: func() { *flagNight, *flagShowHitboxes = false, false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Night = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.Scene.Night {
		t.Error("saved night flag was not reloaded")
	}
	if len(loaded.Routes) != len(cfg.Routes) {
		t.Errorf("routes: got %d, want %d", len(loaded.Routes), len(cfg.Routes))
	}
}
