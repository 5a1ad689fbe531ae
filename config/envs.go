package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/beka-birhanu/gravity-maze/level"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every configuration problem.
var ErrInvalidConfig = errors.New("invalid configuration")

// Palette holds hex colours for drawing.
type Palette struct {
	Wall       string `yaml:"wall"`
	Player     string `yaml:"player"`
	Goal       string `yaml:"goal"`
	Background string `yaml:"background"`
	Hazard     string `yaml:"hazard"`
}

// Config holds the application's configuration values.
type Config struct {
	BaseCols          int           // Columns at level 1
	BaseRows          int           // Rows at level 1
	HazardDensity     float64       // Fraction of hazard candidates targeted
	SafeRadius        float64       // Candidacy radius around start and goal
	SpacingUntilLevel int           // Hazard spacing is enforced below this level
	Gravity           float64       // Magnitude of directional gravity
	DefaultGravity    float64       // Downward gravity applied at every level start
	GravityScale      float64       // World units/s² per gravity unit
	HazardSpin        float64       // Hazard rotation per physics step in radians
	WinDelay          time.Duration // Delay before the next level
	LoseDelay         time.Duration // Delay before the retry after a death
	TickRate          int           // Physics steps per second
	FrameRate         int           // Render steps per second
	Seed              int64         // Random seed, 0 picks a time based one
	LogFile           string        // Log destination
	Audio             bool          // Play sound cues
	StatusAddr        string        // Listen address of the status API, empty disables it
	GinMode           string        // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string        // Secret key for JWT signing
	JWTIssuer         string        // Issuer claim for JWTs
	RedisAddr         string        // Leaderboard redis address, empty disables it
	RedisPassword     string        // Leaderboard redis password
	RedisDB           int           // Leaderboard redis database
	PlayerName        string        // Leaderboard member name
	TuningFile        string        // Optional YAML overrides
	Colors            Palette       // Drawing colours
}

// Load reads .env, the environment and the optional tuning file, then validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	c, err := fromEnv()
	if err != nil {
		return Config{}, err
	}

	if c.TuningFile != "" {
		t, err := LoadTuning(c.TuningFile)
		if err != nil {
			return Config{}, err
		}
		t.Apply(&c)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func fromEnv() (Config, error) {
	var errs []error
	intEnv := func(key string, def int) int {
		v, err := getEnvAsInt(key, def)
		errs = append(errs, err)
		return v
	}
	floatEnv := func(key string, def float64) float64 {
		v, err := getEnvAsFloat(key, def)
		errs = append(errs, err)
		return v
	}
	boolEnv := func(key string, def bool) bool {
		v, err := getEnvAsBool(key, def)
		errs = append(errs, err)
		return v
	}

	c := Config{
		BaseCols:          intEnv("BASE_COLS", 10),
		BaseRows:          intEnv("BASE_ROWS", 8),
		HazardDensity:     floatEnv("HAZARD_DENSITY", 0.15),
		SafeRadius:        floatEnv("SAFE_RADIUS", 2),
		SpacingUntilLevel: intEnv("SPACING_UNTIL_LEVEL", 10),
		Gravity:           floatEnv("GRAVITY", 1.5),
		DefaultGravity:    floatEnv("DEFAULT_GRAVITY", 1),
		GravityScale:      floatEnv("GRAVITY_SCALE", 40),
		HazardSpin:        floatEnv("HAZARD_SPIN", 0.05),
		WinDelay:          time.Duration(intEnv("WIN_DELAY_MS", 1200)) * time.Millisecond,
		LoseDelay:         time.Duration(intEnv("LOSE_DELAY_MS", 1000)) * time.Millisecond,
		TickRate:          intEnv("TICK_RATE", 60),
		FrameRate:         intEnv("FRAME_RATE", 30),
		Seed:              int64(intEnv("SEED", 0)),
		LogFile:           getEnvWithDefault("LOG_FILE", "gravity-maze.log"),
		Audio:             boolEnv("AUDIO", true),
		StatusAddr:        getEnvWithDefault("STATUS_ADDR", ""),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:         getEnvWithDefault("API_SECRET", ""),
		JWTIssuer:         getEnvWithDefault("API_ISSUER", "gravity-maze"),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:           intEnv("REDIS_DB", 0),
		PlayerName:        getEnvWithDefault("PLAYER_NAME", getEnvWithDefault("USER", "player")),
		TuningFile:        getEnvWithDefault("TUNING_FILE", ""),
		Colors:            DefaultPalette(),
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		Wall:       "#333333",
		Player:     "#00ffff",
		Goal:       "#4ecdc4",
		Background: "#0a0a0a",
		Hazard:     "#ff0000",
	}
}

// Validate fails fast on values that cannot run a game.
func (c Config) Validate() error {
	switch {
	case c.BaseCols < 1 || c.BaseRows < 1:
		return fmt.Errorf("%w: base grid %dx%d", ErrInvalidConfig, c.BaseCols, c.BaseRows)
	case c.HazardDensity < 0 || c.HazardDensity > 1 || math.IsNaN(c.HazardDensity):
		return fmt.Errorf("%w: hazard density %v outside [0,1]", ErrInvalidConfig, c.HazardDensity)
	case c.SafeRadius < 0 || math.IsNaN(c.SafeRadius):
		return fmt.Errorf("%w: safe radius %v", ErrInvalidConfig, c.SafeRadius)
	case c.SpacingUntilLevel < 1:
		return fmt.Errorf("%w: SPACING_UNTIL_LEVEL must be at least 1, got %d", ErrInvalidConfig, c.SpacingUntilLevel)
	case math.IsNaN(c.HazardSpin) || math.IsInf(c.HazardSpin, 0):
		return fmt.Errorf("%w: hazard spin %v", ErrInvalidConfig, c.HazardSpin)
	case c.Gravity <= 0 || c.DefaultGravity <= 0 || c.GravityScale <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalidConfig)
	case c.WinDelay <= 0 || c.LoseDelay <= 0:
		return fmt.Errorf("%w: transition delays must be positive", ErrInvalidConfig)
	case c.TickRate <= 0 || c.FrameRate <= 0:
		return fmt.Errorf("%w: tick and frame rates must be positive", ErrInvalidConfig)
	case c.StatusAddr != "" && c.JWTSecret == "":
		return fmt.Errorf("%w: API_SECRET is required when STATUS_ADDR is set", ErrInvalidConfig)
	}
	return nil
}

// LevelParams returns the level generation tuning.
func (c Config) LevelParams() level.Params {
	return level.Params{
		BaseCols:          c.BaseCols,
		BaseRows:          c.BaseRows,
		HazardDensity:     c.HazardDensity,
		SafeRadius:        c.SafeRadius,
		SpacingUntilLevel: c.SpacingUntilLevel,
		HazardSpin:        c.HazardSpin,
	}
}

// TickInterval is the duration of one physics step.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// FrameInterval is the duration of one render step.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number: %v", ErrInvalidConfig, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalidConfig, key, err)
	}
	return value, nil
}
