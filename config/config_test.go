package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/wheel"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "wheel.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, wheel.DefaultOptions(), cfg.SpinOptions())
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.NotEmpty(t, cfg.Home)
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, `
home: /tmp/wheel-test
listen: ":9999"
log_level: debug
width: 600
height: 500
frame_interval: 40ms
seed: 7
spin:
  min_spins: 2
  max_spins: 3
  duration: 1500ms
theme:
  palette: ["#112233", red]
  hub: black
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wheel-test", cfg.Home)
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 40*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, wheel.Options{MinSpins: 2, MaxSpins: 3, Duration: 1500 * time.Millisecond}, cfg.SpinOptions())

	th, err := cfg.BuildTheme()
	require.NoError(t, err)
	assert.Equal(t, []draw.Color{0x112233FF, draw.DRed}, th.Palette)
	assert.Equal(t, draw.DBlack, th.Hub)
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeFile(t, "width: 600\nspin:\n  max_spins: 20\n")
	t.Setenv("WHEEL_WIDTH", "800")
	t.Setenv("WHEEL_MIN_SPINS", "1.5")
	t.Setenv("WHEEL_SPIN_DURATION", "2s")
	t.Setenv("WHEEL_HOME", "/srv/wheel")
	t.Setenv("WHEEL_HEIGHT", "tall")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height, "bad values are ignored")
	assert.Equal(t, 1.5, cfg.Spin.MinSpins)
	assert.Equal(t, 20.0, cfg.Spin.MaxSpins)
	assert.Equal(t, 2*time.Second, cfg.Spin.Duration)
	assert.Equal(t, "/srv/wheel", cfg.Home)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "width: [oops"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative min", func(c *Config) { c.Spin.MinSpins = -1 }},
		{"max below min", func(c *Config) { c.Spin.MinSpins, c.Spin.MaxSpins = 5, 4 }},
		{"zero duration", func(c *Config) { c.Spin.Duration = 0 }},
		{"zero frame", func(c *Config) { c.FrameInterval = 0 }},
		{"empty canvas", func(c *Config) { c.Width = 0 }},
		{"no home", func(c *Config) { c.Home = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad color", func(c *Config) { c.Theme.Pointer = "plaid" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	c := Default()
	c.Spin.MinSpins, c.Spin.MaxSpins = 3, 3
	assert.NoError(t, c.Validate(), "equal min and max is a fixed turn count")
}
