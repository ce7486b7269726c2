// Package config loads wheel settings: built-in defaults, then an
// optional YAML file, then a .env file, then WHEEL_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/elizafairlady/go-wheel/theme"
	"github.com/elizafairlady/go-wheel/wheel"
)

type SpinConfig struct {
	MinSpins float64       `yaml:"min_spins"`
	MaxSpins float64       `yaml:"max_spins"`
	Duration time.Duration `yaml:"duration"`
}

type Config struct {
	Home          string          `yaml:"home"`   // where the names are saved
	Listen        string          `yaml:"listen"` // 9P listen address for serve
	LogLevel      string          `yaml:"log_level"`
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	FrameInterval time.Duration   `yaml:"frame_interval"`
	Seed          uint64          `yaml:"seed"` // 0 seeds from the clock
	Spin          SpinConfig      `yaml:"spin"`
	Theme         theme.Overrides `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	spin := wheel.DefaultOptions()
	return &Config{
		Home:          defaultHome(),
		Listen:        "127.0.0.1:5640",
		LogLevel:      "info",
		Width:         400,
		Height:        400,
		FrameInterval: 16 * time.Millisecond,
		Spin: SpinConfig{
			MinSpins: spin.MinSpins,
			MaxSpins: spin.MaxSpins,
			Duration: spin.Duration,
		},
	}
}

func defaultHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "wheel")
	}
	return ".wheel"
}

// Load builds the configuration. path may be empty; a named file that
// does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("config: could not load .env")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Home = getEnv("WHEEL_HOME", c.Home)
	c.Listen = getEnv("WHEEL_LISTEN", c.Listen)
	c.LogLevel = getEnv("WHEEL_LOG_LEVEL", c.LogLevel)
	c.Width = getEnvAsInt("WHEEL_WIDTH", c.Width)
	c.Height = getEnvAsInt("WHEEL_HEIGHT", c.Height)
	c.FrameInterval = getEnvAsDuration("WHEEL_FRAME_INTERVAL", c.FrameInterval)
	c.Seed = uint64(getEnvAsInt("WHEEL_SEED", int(c.Seed)))
	c.Spin.MinSpins = getEnvAsFloat("WHEEL_MIN_SPINS", c.Spin.MinSpins)
	c.Spin.MaxSpins = getEnvAsFloat("WHEEL_MAX_SPINS", c.Spin.MaxSpins)
	c.Spin.Duration = getEnvAsDuration("WHEEL_SPIN_DURATION", c.Spin.Duration)
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.Home == "":
		return errors.New("config: home is empty")
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: canvas %dx%d is empty", c.Width, c.Height)
	case c.FrameInterval <= 0:
		return fmt.Errorf("config: frame_interval %v must be positive", c.FrameInterval)
	case c.Spin.MinSpins < 0:
		return fmt.Errorf("config: spin.min_spins %v is negative", c.Spin.MinSpins)
	case c.Spin.MaxSpins < c.Spin.MinSpins:
		return fmt.Errorf("config: spin.max_spins %v is below min_spins %v", c.Spin.MaxSpins, c.Spin.MinSpins)
	case c.Spin.Duration <= 0:
		return fmt.Errorf("config: spin.duration %v must be positive", c.Spin.Duration)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if _, err := c.BuildTheme(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SpinOptions returns the spin settings for the wheel engine.
func (c *Config) SpinOptions() wheel.Options {
	return wheel.Options{
		MinSpins: c.Spin.MinSpins,
		MaxSpins: c.Spin.MaxSpins,
		Duration: c.Spin.Duration,
	}
}

// BuildTheme returns the default theme with the configured overrides.
func (c *Config) BuildTheme() (*theme.Theme, error) {
	th := theme.Default()
	if err := th.Apply(c.Theme); err != nil {
		return nil, err
	}
	return th, nil
}

// Level returns the configured log level, or info if it does not parse.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
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
		log.Warn().Str("key", key).Str("value", value).Msg("config: ignoring bad integer")
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("config: ignoring bad number")
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("config: ignoring bad duration")
	}
	return defaultValue
}
