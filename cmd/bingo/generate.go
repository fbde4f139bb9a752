package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Parkreiner/bingosim/cardregistry"
	"github.com/Parkreiner/bingosim/config"
	"github.com/Parkreiner/bingosim/internal/fileutil"
	"github.com/Parkreiner/bingosim/parse"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

type GenerateCmd struct {
	Boards     int    `short:"b" help:"Number of boards to generate (overrides config)"`
	MaxValue   int    `name:"max-value" help:"Largest number that can be drawn (overrides config)"`
	Seed       *int64 `short:"s" help:"Random seed; a fresh one is picked when unset (overrides config)"`
	Uniqueness *int   `short:"u" help:"Most same-position cells two boards may share (overrides config)"`
	Output     string `short:"o" help:"Write the puzzle here instead of stdout"`
}

func (c *GenerateCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Log.Level)
	return generate(os.Stdout, logger, quartz.NewReal(), cfg, c.Output)
}

func (c *GenerateCmd) applyOverrides(cfg *config.Config) {
	if c.Boards != 0 {
		cfg.Generate.Boards = c.Boards
	}
	if c.MaxValue != 0 {
		cfg.Generate.MaxValue = c.MaxValue
	}
	if c.Seed != nil {
		cfg.Generate.Seed = c.Seed
	}
	if c.Uniqueness != nil {
		cfg.Generate.UniquenessThreshold = c.Uniqueness
	}
}

// generate builds a puzzle and writes it to output, or to stdout if output is
// empty.
func generate(stdout io.Writer, logger *log.Logger, clock quartz.Clock, cfg *config.Config, output string) error {
	seed, ok := cfg.Seed()
	if !ok {
		seed = clock.Now().UnixNano()
	}

	puzzle, err := cardregistry.Generate(cardregistry.Options{
		Boards:              cfg.Generate.Boards,
		MaxValue:            cfg.Generate.MaxValue,
		Seed:                seed,
		UniquenessThreshold: cfg.UniquenessThreshold(),
		Logger:              logger,
	})
	if err != nil {
		return err
	}
	logger.Info("Generated puzzle", "boards", len(puzzle.Entries), "draws", len(puzzle.Draws), "seed", seed)

	text := parse.Format(puzzle.Input())
	if output == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := fileutil.WriteFileAtomic(output, []byte(text), 0o644); err != nil {
		return err
	}
	logger.Info("Wrote puzzle", "path", output)
	return nil
}
