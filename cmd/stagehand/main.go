// Package main is the entry point for the stagehand runner.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dshills/stagehand/internal/app"
	"github.com/dshills/stagehand/internal/backend"
	"github.com/dshills/stagehand/internal/config"
	"github.com/dshills/stagehand/internal/replay"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// cliFlags holds the parsed command line.
type cliFlags struct {
	configPath string
	fps        int
	logLevel   string
	scripts    string
	record     string
	play       string
	demo       bool
	demoSet    bool
}

func run() int {
	cli := parseFlags()

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	applyFlags(&cfg, cli)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	b, err := chooseBackend(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	application, err := app.New(cfg, app.WithBackend(b))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	// The built-in demo fills the tree when no scripts provide one.
	if cli.demo || (!cli.demoSet && cfg.Scripts == "") {
		if err := installDemo(application); err != nil {
			fmt.Fprintf(os.Stderr, "Error: building demo: %v\n", err)
			return 1
		}
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// chooseBackend picks trace playback when configured, otherwise the
// live terminal.
func chooseBackend(cfg config.Config) (backend.Backend, error) {
	if cfg.Replay.Play != "" {
		entries, err := replay.Load(cfg.Replay.Play)
		if err != nil {
			return nil, err
		}
		return replay.NewSource(entries), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal (use -play to run a recorded trace headless)")
	}
	return backend.NewTerminal()
}

func parseFlags() cliFlags {
	var cli cliFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&cli.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.IntVar(&cli.fps, "fps", 0, "Target frame rate")
	flag.StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&cli.scripts, "scripts", "", "Directory of Lua scripts to load")
	flag.StringVar(&cli.record, "record", "", "Record the session to a trace file")
	flag.StringVar(&cli.play, "play", "", "Play a recorded trace instead of reading the terminal")
	flag.BoolVar(&cli.demo, "demo", false, "Run the built-in demo (default when no scripts are configured)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Stagehand - scene-driven event loop runner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: stagehand [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stagehand                        Run the built-in demo\n")
		fmt.Fprintf(os.Stderr, "  stagehand -scripts ./scenes      Run a scripted scene tree\n")
		fmt.Fprintf(os.Stderr, "  stagehand -record demo.jsonl     Record the session\n")
		fmt.Fprintf(os.Stderr, "  stagehand -play demo.jsonl       Replay a recorded session\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Stagehand %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "demo" {
			cli.demoSet = true
		}
	})

	return cli
}

// applyFlags overlays explicitly set flags onto the configuration.
// Flags outrank both the file and the environment.
func applyFlags(cfg *config.Config, cli cliFlags) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			cfg.FPS = cli.fps
		case "log-level":
			cfg.LogLevel = cli.logLevel
		case "scripts":
			cfg.Scripts = cli.scripts
		case "record":
			cfg.Replay.Record = cli.record
		case "play":
			cfg.Replay.Play = cli.play
		}
	})
}
