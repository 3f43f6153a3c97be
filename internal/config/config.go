package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// CameraConfig describes how frames are acquired.
// Type selects a concrete implementation (e.g., "webcam", "mock").
type CameraConfig struct {
	Type     string `yaml:"type"`      // "webcam" (gocv) or "mock" (synthetic frames)
	DeviceID int    `yaml:"device_id"` // V4L2 / OpenCV device index
	WidthPx  int    `yaml:"width_px"`  // requested frame width
	HeightPx int    `yaml:"height_px"` // requested frame height
}

// FiltersConfig holds the boosted values each filter toggle switches to.
// Neutral values are fixed: 100% for brightness/contrast/saturate, 0% for
// grayscale/sepia.
type FiltersConfig struct {
	BrightnessBoost float64 `yaml:"brightness_boost"` // percent, e.g. 125
	ContrastBoost   float64 `yaml:"contrast_boost"`   // percent, e.g. 150
	SaturateBoost   float64 `yaml:"saturate_boost"`   // percent, e.g. 200
	GrayscaleLevel  float64 `yaml:"grayscale_level"`  // percent, e.g. 100
	SepiaLevel      float64 `yaml:"sepia_level"`      // percent, e.g. 100
	MirrorDefault   bool    `yaml:"mirror_default"`   // start with preview mirrored
}

// BoothConfig holds capture sequencing parameters.
type BoothConfig struct {
	MaxCaptures       int   `yaml:"max_captures"`        // strip quota
	TimerOptionsSec   []int `yaml:"timer_options_sec"`   // cyclic countdown choices
	DefaultTimerIndex int   `yaml:"default_timer_index"` // index into timer_options_sec
	CapturePauseMs    int   `yaml:"capture_pause_ms"`    // pause between auto captures
	PreviewIntervalMs int   `yaml:"preview_interval_ms"` // live preview frame period
}

// ButtonConfig describes the optional hardware shutter button and status LED.
type ButtonConfig struct {
	Enabled    bool `yaml:"enabled"`
	ShutterPin int  `yaml:"shutter_pin"` // BCM pin, active LOW with pull-up
	LEDPin     int  `yaml:"led_pin"`     // BCM pin; 0 = no LED
	PollMs     int  `yaml:"poll_ms"`     // button poll period
	DebounceMs int  `yaml:"debounce_ms"` // ignore window after a press
}

// DefaultsConfig contains generic parameters.
type DefaultsConfig struct {
	DebugLevel int  `yaml:"debug_level"` // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockGPIO   bool `yaml:"mock_gpio"`   // use mock GPIO (true=dev/test, false=real Raspberry Pi)
}

// Config aggregates all application configuration.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Filters  FiltersConfig  `yaml:"filters"`
	Booth    BoothConfig    `yaml:"booth"`
	Button   ButtonConfig   `yaml:"button"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Load reads a YAML file, applies environment overrides, and returns the
// configuration. A .env file next to the working directory is honoured if
// present (development convenience; missing file is not an error).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	applyEnv(&cfg)

	// Basic validation
	if cfg.Camera.Type == "" {
		cfg.Camera.Type = "webcam"
	}
	if cfg.Camera.Type != "webcam" && cfg.Camera.Type != "mock" {
		return nil, fmt.Errorf("camera.type must be \"webcam\" or \"mock\", got %q", cfg.Camera.Type)
	}
	if cfg.Camera.WidthPx <= 0 {
		cfg.Camera.WidthPx = 1280
	}
	if cfg.Camera.HeightPx <= 0 {
		cfg.Camera.HeightPx = 960
	}
	if cfg.Camera.DeviceID < 0 {
		return nil, fmt.Errorf("camera.device_id must be >= 0, got %d", cfg.Camera.DeviceID)
	}

	if cfg.Filters.BrightnessBoost <= 0 {
		cfg.Filters.BrightnessBoost = 125
	}
	if cfg.Filters.ContrastBoost <= 0 {
		cfg.Filters.ContrastBoost = 150
	}
	if cfg.Filters.SaturateBoost <= 0 {
		cfg.Filters.SaturateBoost = 200
	}
	if cfg.Filters.GrayscaleLevel <= 0 {
		cfg.Filters.GrayscaleLevel = 100
	}
	if cfg.Filters.SepiaLevel <= 0 {
		cfg.Filters.SepiaLevel = 100
	}
	if cfg.Filters.GrayscaleLevel > 100 || cfg.Filters.SepiaLevel > 100 {
		return nil, fmt.Errorf("grayscale_level and sepia_level must be <= 100")
	}

	if cfg.Booth.MaxCaptures <= 0 {
		cfg.Booth.MaxCaptures = 10
	}
	if len(cfg.Booth.TimerOptionsSec) == 0 {
		cfg.Booth.TimerOptionsSec = []int{3, 5, 10}
	}
	for i, sec := range cfg.Booth.TimerOptionsSec {
		if sec <= 0 {
			return nil, fmt.Errorf("timer_options_sec[%d] must be > 0, got %d", i, sec)
		}
	}
	if cfg.Booth.DefaultTimerIndex < 0 || cfg.Booth.DefaultTimerIndex >= len(cfg.Booth.TimerOptionsSec) {
		return nil, fmt.Errorf("default_timer_index must be within timer_options_sec (0-%d), got %d",
			len(cfg.Booth.TimerOptionsSec)-1, cfg.Booth.DefaultTimerIndex)
	}
	if cfg.Booth.CapturePauseMs <= 0 {
		cfg.Booth.CapturePauseMs = 1000
	}
	if cfg.Booth.PreviewIntervalMs <= 0 {
		cfg.Booth.PreviewIntervalMs = 200
	}

	if cfg.Button.Enabled {
		if cfg.Button.ShutterPin <= 0 {
			return nil, fmt.Errorf("button.shutter_pin is required when the button is enabled")
		}
		if cfg.Button.PollMs <= 0 {
			cfg.Button.PollMs = 20
		}
		if cfg.Button.DebounceMs <= 0 {
			cfg.Button.DebounceMs = 150
		}
	}

	if cfg.Defaults.DebugLevel < 0 || cfg.Defaults.DebugLevel > 4 {
		return nil, fmt.Errorf("debug_level must be between 0 and 4, got %d", cfg.Defaults.DebugLevel)
	}

	return &cfg, nil
}

// applyEnv overrides selected fields from the environment. Only variables
// that are set and parse cleanly are applied.
func applyEnv(cfg *Config) {
	cfg.Camera.Type = getEnv("CAMERA_TYPE", cfg.Camera.Type)
	cfg.Camera.DeviceID = getEnvAsInt("CAMERA_DEVICE", cfg.Camera.DeviceID)
	cfg.Defaults.DebugLevel = getEnvAsInt("DEBUG_LEVEL", cfg.Defaults.DebugLevel)
	if v := os.Getenv("MOCK_GPIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Defaults.MockGPIO = b
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ValidateConfigPath checks that path points at a .yaml file inside a
// configs/ directory and does not traverse outside it.
func ValidateConfigPath(path string) error {
	if filepath.Ext(path) != ".yaml" {
		return fmt.Errorf("config file must have .yaml extension, got %q", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	dir := filepath.Base(filepath.Dir(abs))
	if dir != "configs" {
		return fmt.Errorf("config file must live in a configs/ directory, got %q", path)
	}
	if strings.Contains(filepath.ToSlash(path), "../") {
		return fmt.Errorf("config path must not traverse directories, got %q", path)
	}
	return nil
}

// CapturePause returns the pause between an auto capture and the next countdown.
func (c *Config) CapturePause() time.Duration {
	return time.Duration(c.Booth.CapturePauseMs) * time.Millisecond
}

// PreviewInterval returns the live preview frame period.
func (c *Config) PreviewInterval() time.Duration {
	return time.Duration(c.Booth.PreviewIntervalMs) * time.Millisecond
}

// ButtonPoll returns the shutter-button poll period.
func (c *Config) ButtonPoll() time.Duration {
	return time.Duration(c.Button.PollMs) * time.Millisecond
}

// ButtonDebounce returns the shutter-button debounce window.
func (c *Config) ButtonDebounce() time.Duration {
	return time.Duration(c.Button.DebounceMs) * time.Millisecond
}
