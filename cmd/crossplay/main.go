// Package main is the entry point for the crossplay terminal player.
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/crossplay/internal/config"
	"github.com/dshills/crossplay/internal/grid"
	"github.com/dshills/crossplay/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

//go:embed mini.yaml
var miniPuzzle []byte

type options struct {
	configPath  string
	puzzlePath  string
	keybind     string
	logLevel    string
	logFile     string
	printConfig bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	settings, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.keybind != "" {
		settings.Input.Keybind = opts.keybind
	}
	if opts.logLevel != "" {
		settings.Logging.Level = opts.logLevel
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.printConfig {
		if err := settings.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	puzzle, err := loadPuzzle(opts.puzzlePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logging.Config{Level: settings.LogLevel(), Output: logOut, Prefix: "crossplay"})

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	a, err := newApp(screen, puzzle, settings, logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath, config.WithWatcherLogger(logger))
		if err != nil {
			logger.Warn("live reload disabled: %v", err)
		} else {
			defer w.Close()
			_ = w.OnChange(a.reload)
		}
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			a.quit()
		}
	}()

	a.run()
	return 0
}

func loadPuzzle(path string) (*grid.Puzzle, error) {
	if path == "" {
		return grid.LoadPuzzle(bytes.NewReader(miniPuzzle))
	}
	return grid.LoadPuzzleFile(path)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.puzzlePath, "puzzle", "", "Path to a YAML puzzle (default: built-in mini)")
	flag.StringVar(&opts.puzzlePath, "p", "", "Path to a YAML puzzle (shorthand)")
	flag.StringVar(&opts.keybind, "keybind", "", "Keybind (standard, vim); overrides the config file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.printConfig, "print-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "crossplay - play crosswords in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: crossplay [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, name := range config.EnvVars() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  crossplay                         Play the built-in mini\n")
		fmt.Fprintf(os.Stderr, "  crossplay -keybind vim -p x.yaml  Play x.yaml with vim keys\n")
		fmt.Fprintf(os.Stderr, "  crossplay -print-config           Show the effective settings\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("crossplay %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
