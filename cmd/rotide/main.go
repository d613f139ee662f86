// Package main is the entry point for the rotide editor core.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cleichner/rotide/internal/app"
	"github.com/cleichner/rotide/internal/host"
	"github.com/cleichner/rotide/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type flags struct {
	opts    app.Options
	replay  string
	version bool
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()
	if f.version {
		fmt.Printf("rotide %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if f.replay != "" {
		return runReplay(ctx, f.opts, f.replay, os.Stdout)
	}
	return runTerminal(ctx, f.opts)
}

// runReplay feeds notation through the event loop against an in-memory
// surface and prints the resulting state.
func runReplay(ctx context.Context, opts app.Options, notation string, out io.Writer) int {
	src, err := app.ParseReplay(notation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	opts.NoWatch = true
	surface := host.NewMemory()
	application, err := app.New(opts, surface)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := application.Run(ctx, src); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	h := application.Handler()
	row, col := surface.Cursor()
	fmt.Fprintf(out, "mode: %s\n", h.Mode())
	fmt.Fprintf(out, "status: %s\n", surface.Status())
	fmt.Fprintf(out, "cursor: %d,%d\n", row, col)
	fmt.Fprintf(out, "history: %s\n", strings.Join(h.Context().History.Entries(), " | "))
	if h.QuitRequested() {
		fmt.Fprintln(out, "quit: true")
	}
	return 0
}

// runTerminal runs the tcell UI until quit or a signal.
func runTerminal(ctx context.Context, opts app.Options) int {
	if opts.LogOutput == nil {
		logFile, err := openLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer logFile.Close()
		opts.LogOutput = logFile
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	// Shutdown restores the terminal, so it must run before any error is
	// printed.
	application, err := app.New(opts, term)
	if err != nil {
		term.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	err = application.Run(ctx, term)
	closeErr := application.Close()
	term.Shutdown()

	switch {
	case err == nil, errors.Is(err, app.ErrQuit), errors.Is(err, context.Canceled):
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", closeErr)
		return 1
	}
	return 0
}

// openLogFile opens the log file under the user cache directory; the
// terminal owns stderr while the UI runs.
func openLogFile() (*os.File, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "rotide")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "rotide.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func parseFlags() flags {
	var f flags
	var scripts stringList

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Var(&scripts, "script", "Lua script file or directory to load (repeatable)")
	flag.StringVar(&f.replay, "replay", "", "Replay key notation headless and print the final state")
	flag.BoolVar(&f.version, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rotide - modal editor input core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rotide [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rotide                          Run the terminal UI\n")
		fmt.Fprintf(os.Stderr, "  rotide -script keys.lua         Load an extra script\n")
		fmt.Fprintf(os.Stderr, "  rotide -replay '3j:set<CR>'     Replay keys and print the result\n")
	}

	flag.Parse()

	switch f.opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.opts.LogLevel)
		os.Exit(2)
	}
	f.opts.Scripts = scripts
	return f
}
