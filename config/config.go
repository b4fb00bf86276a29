package config

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/spell-smash/parameter"
)

// Config holds every knob that is fixed for the duration of a session
type Config struct {
	Launch  LaunchConfig  `toml:"launch"`
	Blocks  BlockConfig   `toml:"blocks"`
	Session SessionConfig `toml:"session"`
	Input   InputConfig   `toml:"input"`
	Audio   AudioConfig   `toml:"audio"`
	Store   StoreConfig   `toml:"store"`
	Logging LoggingConfig `toml:"logging"`
}

type LaunchConfig struct {
	Angle    float64 `toml:"angle"` // degrees above horizontal
	Force    float64 `toml:"force"`
	AimSweep bool    `toml:"aim_sweep"`
}

type BlockConfig struct {
	Density       float64 `toml:"density"`
	Friction      float64 `toml:"friction"`
	Restitution   float64 `toml:"restitution"`
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	CountOverride int     `toml:"count_override"` // 0 = use tier table
}

type SessionConfig struct {
	Length        int   `toml:"length"` // buildings per session, even, 4-24
	DifficultyMin int   `toml:"difficulty_min"`
	DifficultyMax int   `toml:"difficulty_max"`
	ShowWord      bool  `toml:"show_word"`
	SillyMode     bool  `toml:"silly_mode"`
	FireStreak    int   `toml:"fire_streak"`
	SuperStreak   int   `toml:"super_streak"`
	Seed          int64 `toml:"seed"` // 0 = time based
}

type InputConfig struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

type AudioConfig struct {
	Enabled       bool    `toml:"enabled"`
	Volume        float64 `toml:"volume"` // 0.0-1.0
	Speech        bool    `toml:"speech"`
	SpeechCommand string  `toml:"speech_command"` // empty = autodetect
}

type StoreConfig struct {
	Path string `toml:"path"` // empty = results not recorded
}

type LoggingConfig struct {
	Enabled bool   `toml:"enabled"`
	Level   string `toml:"level"`
	Format  string `toml:"format"` // "json" or "console"
	Dir     string `toml:"dir"`
}

// Difficulty presets selectable from the command line
var Presets = map[string][2]int{
	"short":  {1, 2},
	"medium": {2, 4},
	"long":   {3, 5},
}

// Load reads a TOML file over the defaults and clamps the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Clamp()
	return cfg, nil
}

// Default returns a fresh configuration with all defaults applied
func Default() *Config {
	return &Config{
		Launch: LaunchConfig{
			Angle:    15,
			Force:    16,
			AimSweep: true,
		},
		Blocks: BlockConfig{
			Density:     0.012,
			Friction:    0.2,
			Restitution: parameter.DefaultRestitution,
			Width:       parameter.DefaultBlockWidth,
			Height:      parameter.DefaultBlockHeight,
		},
		Session: SessionConfig{
			Length:        parameter.DefaultSessionLength,
			DifficultyMin: 1,
			DifficultyMax: 2,
			ShowWord:      true,

			// Equal thresholds skip fire, a clean streak of three goes straight to super
			FireStreak:  parameter.DefaultBonusStreak,
			SuperStreak: parameter.DefaultBonusStreak,
		},
		Input: InputConfig{
			X: parameter.DefaultInputX,
			Y: parameter.DefaultInputY,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
			Speech:  true,
		},
		Store: StoreConfig{
			Path: "data/results.db",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Format:  "console",
			Dir:     "logs",
		},
	}
}

// Clamp forces every knob into its valid range
// Session length rounds down to an even count
func (c *Config) Clamp() {
	c.Session.Length = clampInt(c.Session.Length, parameter.MinSessionLength, parameter.MaxSessionLength)
	c.Session.Length -= c.Session.Length % 2

	c.Session.DifficultyMin = clampInt(c.Session.DifficultyMin, parameter.MinTier, parameter.MaxTier)
	c.Session.DifficultyMax = clampInt(c.Session.DifficultyMax, parameter.MinTier, parameter.MaxTier)
	if c.Session.DifficultyMax < c.Session.DifficultyMin {
		c.Session.DifficultyMax = c.Session.DifficultyMin
	}

	if c.Session.FireStreak < 1 {
		c.Session.FireStreak = 1
	}
	if c.Session.SuperStreak < c.Session.FireStreak {
		c.Session.SuperStreak = c.Session.FireStreak
	}

	c.Launch.Angle = clampFloat(c.Launch.Angle, 0, 80)
	c.Launch.Force = clampFloat(c.Launch.Force, 1, 60)

	c.Blocks.Density = clampFloat(c.Blocks.Density, 0.001, 0.1)
	c.Blocks.Friction = clampFloat(c.Blocks.Friction, 0, 1)
	c.Blocks.Restitution = clampFloat(c.Blocks.Restitution, 0, 1)
	c.Blocks.Width = clampFloat(c.Blocks.Width, 10, 80)
	c.Blocks.Height = clampFloat(c.Blocks.Height, 10, 60)
	if c.Blocks.CountOverride < 0 {
		c.Blocks.CountOverride = 0
	}

	c.Audio.Volume = clampFloat(c.Audio.Volume, 0, 1)
}

// ApplyPreset sets the difficulty range from a named preset
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown difficulty preset %q", name)
	}
	c.Session.DifficultyMin, c.Session.DifficultyMax = p[0], p[1]
	return nil
}

// LaunchVelocity returns the base launch velocity for an angle in degrees
// Y is negative because screen y grows downward
func (c *Config) LaunchVelocity(angle float64) (vx, vy float64) {
	rad := angle * math.Pi / 180
	return math.Cos(rad) * c.Launch.Force, -math.Sin(rad) * c.Launch.Force
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
