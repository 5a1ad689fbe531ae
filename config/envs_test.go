package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("USER", "ada")
		c, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10, c.BaseCols)
		assert.Equal(t, 8, c.BaseRows)
		assert.InDelta(t, 0.15, c.HazardDensity, 1e-12)
		assert.InDelta(t, 2, c.SafeRadius, 1e-12)
		assert.Equal(t, 10, c.SpacingUntilLevel)
		assert.InDelta(t, 1.5, c.Gravity, 1e-12)
		assert.InDelta(t, 1, c.DefaultGravity, 1e-12)
		assert.Equal(t, 1200*time.Millisecond, c.WinDelay)
		assert.Equal(t, 1000*time.Millisecond, c.LoseDelay)
		assert.Equal(t, 60, c.TickRate)
		assert.True(t, c.Audio)
		assert.Equal(t, "ada", c.PlayerName)
		assert.Equal(t, "gravity-maze", c.JWTIssuer)
		assert.Equal(t, DefaultPalette(), c.Colors)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("BASE_COLS", "4")
		t.Setenv("HAZARD_DENSITY", "0.3")
		t.Setenv("WIN_DELAY_MS", "500")
		t.Setenv("AUDIO", "false")
		t.Setenv("PLAYER_NAME", "grace")

		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 4, c.BaseCols)
		assert.InDelta(t, 0.3, c.HazardDensity, 1e-12)
		assert.Equal(t, 500*time.Millisecond, c.WinDelay)
		assert.False(t, c.Audio)
		assert.Equal(t, "grace", c.PlayerName)
	})

	t.Run("Malformed number", func(t *testing.T) {
		t.Setenv("TICK_RATE", "fast")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Negative density fails fast", func(t *testing.T) {
		t.Setenv("HAZARD_DENSITY", "-0.2")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Tuning file overrides the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		require.NoError(t, os.WriteFile(path, []byte("level:\n  baseCols: 6\ncolors:\n  wall: \"#ffffff\"\n"), 0o600))
		t.Setenv("BASE_COLS", "12")
		t.Setenv("TUNING_FILE", path)

		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 6, c.BaseCols)
		assert.Equal(t, "#ffffff", c.Colors.Wall)
		assert.Equal(t, "#00ffff", c.Colors.Player)
	})

	t.Run("Missing tuning file", func(t *testing.T) {
		t.Setenv("TUNING_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			BaseCols:          10,
			BaseRows:          8,
			HazardDensity:     0.15,
			SafeRadius:        2,
			SpacingUntilLevel: 10,
			Gravity:           1.5,
			DefaultGravity:    1,
			GravityScale:      40,
			WinDelay:          time.Second,
			LoseDelay:         time.Second,
			TickRate:          60,
			FrameRate:         30,
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "Zero columns", mutate: func(c *Config) { c.BaseCols = 0 }},
		{name: "Density above one", mutate: func(c *Config) { c.HazardDensity = 1.2 }},
		{name: "Spacing never enforced", mutate: func(c *Config) { c.SpacingUntilLevel = 0 }},
		{name: "NaN hazard spin", mutate: func(c *Config) { c.HazardSpin = math.NaN() }},
		{name: "Zero gravity", mutate: func(c *Config) { c.Gravity = 0 }},
		{name: "Zero lose delay", mutate: func(c *Config) { c.LoseDelay = 0 }},
		{name: "Zero frame rate", mutate: func(c *Config) { c.FrameRate = 0 }},
		{name: "Status API without secret", mutate: func(c *Config) { c.StatusAddr = ":8080" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_Derived(t *testing.T) {
	c := Config{BaseCols: 5, BaseRows: 4, HazardDensity: 0.2, SafeRadius: 1, SpacingUntilLevel: 3, HazardSpin: 0.1, TickRate: 50, FrameRate: 20}

	p := c.LevelParams()
	assert.Equal(t, 5, p.BaseCols)
	assert.Equal(t, 3, p.SpacingUntilLevel)
	assert.InDelta(t, 0.1, p.HazardSpin, 1e-12)
	assert.Equal(t, 20*time.Millisecond, c.TickInterval())
	assert.Equal(t, 50*time.Millisecond, c.FrameInterval())
}

func TestParseTuning(t *testing.T) {
	t.Run("Empty document", func(t *testing.T) {
		tuning, err := ParseTuning(nil)
		require.NoError(t, err)

		c := Config{BaseCols: 3}
		tuning.Apply(&c)
		assert.Equal(t, 3, c.BaseCols)
	})

	t.Run("Timing overrides", func(t *testing.T) {
		tuning, err := ParseTuning([]byte("timing:\n  winDelayMs: 300\n  tickRate: 120\n"))
		require.NoError(t, err)

		var c Config
		tuning.Apply(&c)
		assert.Equal(t, 300*time.Millisecond, c.WinDelay)
		assert.Equal(t, 120, c.TickRate)
	})

	t.Run("Unknown keys are rejected", func(t *testing.T) {
		_, err := ParseTuning([]byte("level:\n  mystery: 1\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
