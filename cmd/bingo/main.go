package main

import (
	"os"

	"github.com/Parkreiner/bingosim/config"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand
type Globals struct {
	Config  string `short:"c" default:"bingo.hcl" help:"Path to HCL configuration file"`
	Verbose bool   `help:"Log at debug level (overrides config)"`
	NoColor bool   `name:"no-color" help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Replay a puzzle input and report the winning boards"`
	Generate GenerateCmd      `cmd:"" help:"Write a random puzzle input"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bingo"),
		kong.Description("Bingo simulator: finds the first and last boards to win"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the config file and applies the global overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bingo",
	})
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
