// Package config provides Viper-based configuration loading for the dungeon
// simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GameConfig holds the movement and turn-accounting tuning knobs.
type GameConfig struct {
	// BaselineDelay is the base time cost of one action, in abstract time
	// units. Every turn's time accounting starts from this value.
	BaselineDelay int `mapstructure:"baseline_delay"`
	// MoveDivisor normalizes base*speed into the final move delay.
	MoveDivisor int `mapstructure:"move_divisor"`
	// LungeRange is how many cells the lunge tracer scans.
	LungeRange int `mapstructure:"lunge_range"`
	// EasyDoor skips the direction prompt when exactly one door qualifies.
	EasyDoor bool `mapstructure:"easy_door"`
	// TravelOpenDoors lets a move into a closed door open it mid-run.
	TravelOpenDoors bool `mapstructure:"travel_open_doors"`
	// DigNoise is the loudness of tunnelling through a wall.
	DigNoise int `mapstructure:"dig_noise"`
	// TravelPace floors the per-move delay while running; 0 disables the floor.
	TravelPace int `mapstructure:"travel_pace"`
	// Seed seeds the deterministic RNG; 0 means derive one from the clock.
	Seed int64 `mapstructure:"seed"`
}

// DigExtraCost returns the fixed additional time cost of digging through a
// wall: one fifth of the baseline delay.
func (g GameConfig) DigExtraCost() int {
	return g.BaselineDelay / 5
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.BaselineDelay < 1 {
		errs = append(errs, fmt.Sprintf("game.baseline_delay must be >= 1, got %d", g.BaselineDelay))
	}
	if g.MoveDivisor < 1 {
		errs = append(errs, fmt.Sprintf("game.move_divisor must be >= 1, got %d", g.MoveDivisor))
	}
	if g.LungeRange < 1 {
		errs = append(errs, fmt.Sprintf("game.lunge_range must be >= 1, got %d", g.LungeRange))
	}
	if g.DigNoise < 0 {
		errs = append(errs, fmt.Sprintf("game.dig_noise must be >= 0, got %d", g.DigNoise))
	}
	if g.TravelPace < 0 {
		errs = append(errs, fmt.Sprintf("game.travel_pace must be >= 0, got %d", g.TravelPace))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the YAML file at path, applies DELVE_-prefixed
// environment overrides, and validates the result.
//
// Precondition: path must point to a readable YAML config file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DELVE_ prefix
	v.SetEnvPrefix("DELVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: unmarshalling defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.baseline_delay", 10)
	v.SetDefault("game.move_divisor", 10)
	v.SetDefault("game.lunge_range", 7)
	v.SetDefault("game.easy_door", true)
	v.SetDefault("game.travel_open_doors", true)
	v.SetDefault("game.dig_noise", 6)
	v.SetDefault("game.travel_pace", 0)
	v.SetDefault("game.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
