package config

import (
	"fmt"
	"os"
	"slices"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/cardregistry"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ModeBoth runs both playback modes, each on its own copy of the game
const ModeBoth = "both"

// Config represents the complete simulator configuration
type Config struct {
	Log      LogSettings
	Play     PlaySettings
	Generate GenerateSettings
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// PlaySettings contains settings for the play command
type PlaySettings struct {
	Mode       string `hcl:"mode,optional"`
	Transcript string `hcl:"transcript,optional"`
	Render     bool   `hcl:"render,optional"`
}

// GenerateSettings contains settings for the generate command. Seed and
// UniquenessThreshold are pointers so that an explicit zero can be told apart
// from a missing value. A nil seed means a fresh one is picked per run.
type GenerateSettings struct {
	Boards              int    `hcl:"boards,optional"`
	MaxValue            int    `hcl:"max_value,optional"`
	Seed                *int64 `hcl:"seed,optional"`
	UniquenessThreshold *int   `hcl:"uniqueness_threshold,optional"`
}

type fileConfig struct {
	Log      *LogSettings      `hcl:"log,block"`
	Play     *PlaySettings     `hcl:"play,block"`
	Generate *GenerateSettings `hcl:"generate,block"`
}

// Default returns the default configuration
func Default() *Config {
	threshold := cardregistry.DefaultUniquenessThreshold
	return &Config{
		Log: LogSettings{
			Level: "info",
		},
		Play: PlaySettings{
			Mode: ModeBoth,
		},
		Generate: GenerateSettings{
			Boards:              100,
			MaxValue:            99,
			UniquenessThreshold: &threshold,
		},
	}
}

// Load loads configuration from an HCL file. A missing file is not an error;
// the defaults are returned instead.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	config := Default()
	if raw.Log != nil && raw.Log.Level != "" {
		config.Log.Level = raw.Log.Level
	}
	if raw.Play != nil {
		if raw.Play.Mode != "" {
			config.Play.Mode = raw.Play.Mode
		}
		config.Play.Transcript = raw.Play.Transcript
		config.Play.Render = raw.Play.Render
	}
	if raw.Generate != nil {
		if raw.Generate.Boards != 0 {
			config.Generate.Boards = raw.Generate.Boards
		}
		if raw.Generate.MaxValue != 0 {
			config.Generate.MaxValue = raw.Generate.MaxValue
		}
		if raw.Generate.Seed != nil {
			config.Generate.Seed = raw.Generate.Seed
		}
		if raw.Generate.UniquenessThreshold != nil {
			config.Generate.UniquenessThreshold = raw.Generate.UniquenessThreshold
		}
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if _, err := c.PlaybackModes(); err != nil {
		return err
	}

	if c.Generate.Boards <= 0 {
		return fmt.Errorf("generator boards must be positive")
	}
	if c.Generate.MaxValue < bingo.BoardCells-1 {
		return fmt.Errorf("generator max value must be at least %d", bingo.BoardCells-1)
	}
	if t := c.UniquenessThreshold(); t < 0 || t > bingo.BoardCells {
		return fmt.Errorf("uniqueness threshold must be between 0 and %d", bingo.BoardCells)
	}

	return nil
}

// PlaybackModes expands the configured play mode into the modes to run, in
// the order they should be reported.
func (c *Config) PlaybackModes() ([]bingo.PlaybackMode, error) {
	if c.Play.Mode == ModeBoth {
		return slices.Clone(bingo.AllPlaybackModes), nil
	}
	mode, err := bingo.ParsePlaybackMode(c.Play.Mode)
	if err != nil {
		return nil, err
	}
	return []bingo.PlaybackMode{mode}, nil
}

// Seed returns the generator seed, if one was configured
func (c *Config) Seed() (int64, bool) {
	if c.Generate.Seed == nil {
		return 0, false
	}
	return *c.Generate.Seed, true
}

// UniquenessThreshold returns the generator's uniqueness threshold
func (c *Config) UniquenessThreshold() int {
	if c.Generate.UniquenessThreshold == nil {
		return cardregistry.DefaultUniquenessThreshold
	}
	return *c.Generate.UniquenessThreshold
}
