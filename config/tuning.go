package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning is the YAML override file. Absent keys keep their environment value.
type Tuning struct {
	Level struct {
		BaseCols          *int     `yaml:"baseCols"`
		BaseRows          *int     `yaml:"baseRows"`
		HazardDensity     *float64 `yaml:"hazardDensity"`
		SafeRadius        *float64 `yaml:"safeRadius"`
		SpacingUntilLevel *int     `yaml:"spacingUntilLevel"`
		HazardSpin        *float64 `yaml:"hazardSpin"`
	} `yaml:"level"`

	Physics struct {
		Gravity        *float64 `yaml:"gravity"`
		DefaultGravity *float64 `yaml:"defaultGravity"`
		GravityScale   *float64 `yaml:"gravityScale"`
	} `yaml:"physics"`

	Timing struct {
		WinDelayMs  *int `yaml:"winDelayMs"`
		LoseDelayMs *int `yaml:"loseDelayMs"`
		TickRate    *int `yaml:"tickRate"`
		FrameRate   *int `yaml:"frameRate"`
	} `yaml:"timing"`

	Colors Palette `yaml:"colors"`
}

// LoadTuning reads a tuning file.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("%w: reading tuning file: %v", ErrInvalidConfig, err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes tuning YAML. Unknown keys are rejected.
func ParseTuning(data []byte) (Tuning, error) {
	var t Tuning
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("%w: parsing tuning file: %v", ErrInvalidConfig, err)
	}
	return t, nil
}

// Apply overrides c with every value set in t.
func (t Tuning) Apply(c *Config) {
	setInt(&c.BaseCols, t.Level.BaseCols)
	setInt(&c.BaseRows, t.Level.BaseRows)
	setFloat(&c.HazardDensity, t.Level.HazardDensity)
	setFloat(&c.SafeRadius, t.Level.SafeRadius)
	setInt(&c.SpacingUntilLevel, t.Level.SpacingUntilLevel)
	setFloat(&c.HazardSpin, t.Level.HazardSpin)

	setFloat(&c.Gravity, t.Physics.Gravity)
	setFloat(&c.DefaultGravity, t.Physics.DefaultGravity)
	setFloat(&c.GravityScale, t.Physics.GravityScale)

	if t.Timing.WinDelayMs != nil {
		c.WinDelay = time.Duration(*t.Timing.WinDelayMs) * time.Millisecond
	}
	if t.Timing.LoseDelayMs != nil {
		c.LoseDelay = time.Duration(*t.Timing.LoseDelayMs) * time.Millisecond
	}
	setInt(&c.TickRate, t.Timing.TickRate)
	setInt(&c.FrameRate, t.Timing.FrameRate)

	setString(&c.Colors.Wall, t.Colors.Wall)
	setString(&c.Colors.Player, t.Colors.Player)
	setString(&c.Colors.Goal, t.Colors.Goal)
	setString(&c.Colors.Background, t.Colors.Background)
	setString(&c.Colors.Hazard, t.Colors.Hazard)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
