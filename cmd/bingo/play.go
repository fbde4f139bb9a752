package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	bingo "github.com/Parkreiner/bingosim"
	"github.com/Parkreiner/bingosim/config"
	"github.com/Parkreiner/bingosim/eventfilelogger"
	"github.com/Parkreiner/bingosim/eventlogger"
	"github.com/Parkreiner/bingosim/game"
	"github.com/Parkreiner/bingosim/parse"
	"github.com/Parkreiner/bingosim/render"
	"github.com/charmbracelet/log"
)

type PlayCmd struct {
	Input      string `arg:"" type:"existingfile" help:"Puzzle input: draws, a blank line, then 5x5 boards"`
	Mode       string `short:"m" help:"Playback mode: first, last or both (overrides config)"`
	Transcript string `short:"t" help:"Write every game event to this file as JSON lines (overrides config)"`
	Render     bool   `short:"r" help:"Draw each winning board"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Mode != "" {
		cfg.Play.Mode = c.Mode
	}
	if c.Transcript != "" {
		cfg.Play.Transcript = c.Transcript
	}
	if c.Render {
		cfg.Play.Render = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	input, err := parse.ParseReader(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.Input, err)
	}

	logger := newLogger(cfg.Log.Level)
	r := render.New(os.Stdout, !globals.NoColor)
	return play(os.Stdout, r, logger, cfg, input)
}

// player writes one result per playback mode
type player struct {
	out          io.Writer
	renderer     *render.Renderer
	logger       *log.Logger
	renderBoards bool
}

// play runs every configured mode on its own copy of the game. A mode without
// a winner is reported, not failed.
func play(out io.Writer, r *render.Renderer, logger *log.Logger, cfg *config.Config, input parse.Input) error {
	modes, err := cfg.PlaybackModes()
	if err != nil {
		return err
	}

	g, err := game.New(game.Init{
		Draws:  input.Draws,
		Boards: input.Boards,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Debug("Loaded puzzle", "game", g.ID(), "draws", len(input.Draws), "boards", len(input.Boards))

	p := player{out: out, renderer: r, logger: logger, renderBoards: cfg.Play.Render}
	for _, mode := range modes {
		transcript := transcriptPath(cfg.Play.Transcript, mode, len(modes))
		if err := p.playMode(g.Clone(), mode, transcript); err != nil {
			return fmt.Errorf("%s: %w", mode.Label(), err)
		}
	}
	return nil
}

func (p player) playMode(g *game.Game, mode bingo.PlaybackMode, transcript string) (err error) {
	el, err := eventlogger.New(eventlogger.Init{Subscriber: g, Logger: p.logger})
	if err != nil {
		return err
	}
	defer el.Close()

	if transcript != "" {
		efl, ferr := eventfilelogger.New(eventfilelogger.Init{Subscriber: g, OutputPath: transcript, Snapshots: g})
		if ferr != nil {
			return ferr
		}
		defer func() {
			err = errors.Join(err, efl.Close())
		}()
	}

	win, err := g.Play(mode)
	if errors.Is(err, bingo.ErrNoWinner) {
		_, err = fmt.Fprintln(p.out, p.renderer.NoWinner(mode.Label()))
		return err
	}
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(p.out, p.renderer.Result(mode.Label(), win)); err != nil {
		return err
	}
	if p.renderBoards {
		if _, err := fmt.Fprintln(p.out, p.renderer.Board(win.Board)); err != nil {
			return err
		}
	}
	return nil
}

// transcriptPath gives each mode its own transcript when more than one mode
// runs, so that one replay never truncates another: events.jsonl becomes
// events.first.jsonl and events.last.jsonl.
func transcriptPath(base string, mode bingo.PlaybackMode, modes int) string {
	if base == "" || modes < 2 {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "." + string(mode) + ext
}
