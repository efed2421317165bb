package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete ggshot configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Display DisplayConfig `mapstructure:"display"`
	Capture CaptureConfig `mapstructure:"capture"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig controls where captures are written
type OutputConfig struct {
	// Path is the file the capture is written to. The extension selects
	// the format: .bmp, .tif/.tiff, anything else is PNG
	Path string `mapstructure:"path"`
}

// DisplayConfig controls the simulated display
type DisplayConfig struct {
	// Width and Height are the display size in pixels (default: 1280x720)
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// FPS is the frame rate of the render loop (default: 60)
	FPS int `mapstructure:"fps"`
}

// CaptureConfig controls the capture itself
type CaptureConfig struct {
	// Source is what the camera shows: "testcard" or "desktop" (default: "testcard")
	Source string `mapstructure:"source"`
	// DesktopDisplay is the OS display index used by the desktop source
	DesktopDisplay int `mapstructure:"desktop_display"`
	// WarmupFrames are rendered before the capture is requested (default: 2)
	WarmupFrames int `mapstructure:"warmup_frames"`
	// Timeout bounds the wait for the captured frame (default: 10s)
	Timeout time.Duration `mapstructure:"timeout"`
	// Backend forces a surface backend by name; empty selects automatically
	Backend string `mapstructure:"backend"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Sources accepted by CaptureConfig.Source.
const (
	SourceTestcard = "testcard"
	SourceDesktop  = "desktop"
)

// EnvPrefix is the prefix of environment overrides, e.g. GGSHOT_OUTPUT_PATH.
const EnvPrefix = "GGSHOT"

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path: "shot.png",
		},
		Display: DisplayConfig{
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
		Capture: CaptureConfig{
			Source:       SourceTestcard,
			WarmupFrames: 2,
			Timeout:      10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("output.path", defaults.Output.Path)

	viper.SetDefault("display.width", defaults.Display.Width)
	viper.SetDefault("display.height", defaults.Display.Height)
	viper.SetDefault("display.fps", defaults.Display.FPS)

	viper.SetDefault("capture.source", defaults.Capture.Source)
	viper.SetDefault("capture.desktop_display", defaults.Capture.DesktopDisplay)
	viper.SetDefault("capture.warmup_frames", defaults.Capture.WarmupFrames)
	viper.SetDefault("capture.timeout", defaults.Capture.Timeout)
	viper.SetDefault("capture.backend", defaults.Capture.Backend)

	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper
func Load() (*Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Output.Path == "" {
		return fmt.Errorf("config: output.path must not be empty")
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("config: display size %dx%d must be positive", c.Display.Width, c.Display.Height)
	}
	if c.Display.FPS <= 0 || c.Display.FPS > 1000 {
		return fmt.Errorf("config: display.fps must be between 1 and 1000, got %d", c.Display.FPS)
	}
	switch c.Capture.Source {
	case SourceTestcard, SourceDesktop:
	default:
		return fmt.Errorf("config: capture.source must be %q or %q, got %q", SourceTestcard, SourceDesktop, c.Capture.Source)
	}
	if c.Capture.WarmupFrames < 0 {
		return fmt.Errorf("config: capture.warmup_frames must not be negative")
	}
	if c.Capture.Timeout <= 0 {
		return fmt.Errorf("config: capture.timeout must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// FrameInterval returns the time between two frames
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Display.FPS)
}

// LogLevel parses Logging.Level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("config: logging.level: %w", err)
	}
	return level, nil
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ggshot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ggshot")
}

// Init wires viper to its config file and the environment. An empty
// cfgFile searches config.yaml in ConfigDir() and the working directory.
// A missing config file is not an error.
func Init(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(EnvPrefix)
	// GGSHOT_CAPTURE_WARMUP_FRAMES for capture.warmup_frames
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}
