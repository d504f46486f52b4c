// Package main is the entry point for the tern editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tern-editor/tern/internal/app"
	"github.com/tern-editor/tern/internal/config"
	"github.com/tern-editor/tern/internal/log"
	"github.com/tern-editor/tern/internal/plugin"
	"github.com/tern-editor/tern/internal/plugin/lua"
	"github.com/tern-editor/tern/internal/renderer/backend"
	"github.com/tern-editor/tern/internal/renderer/highlight"
	"github.com/tern-editor/tern/internal/syntax"
	"github.com/tern-editor/tern/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	logger, closeLog := openLogger(cfg, flags)
	defer closeLog()

	// A bad theme color or highlight pattern is a configuration
	// error; refuse to start rather than render garbage.
	theme, err := highlight.NewTheme(cfg.Theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	registry, err := syntax.LoadDir(cfg.Syntax.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	plugins := plugin.NewRegistry(logger)
	defer plugins.Close()
	for _, script := range lua.LoadDir(cfg.Plugins.Dir, cfg.Plugins.Enabled, logger) {
		if err := plugins.Register(script); err != nil {
			logger.Warn("plugin rejected: %v", err)
		}
	}

	watcher, err := watch.New()
	if err != nil {
		logger.Warn("file watching unavailable: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open terminal: %v\n", err)
		return 1
	}

	sess, err := app.New(app.Options{
		Backend: term,
		Config:  cfg,
		Theme:   theme,
		Syntax:  registry,
		Plugins: plugins,
		Watcher: watcher,
		Logger:  logger,
		File:    flags.file,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	// Restore the terminal before dying on SIGTERM.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.Shutdown()
		os.Exit(1)
	}()

	if err := sess.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		term.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type cliFlags struct {
	configPath string
	logFile    string
	logLevel   string
	file       string
}

func parseFlags() cliFlags {
	var flags cliFlags
	var showVersion bool

	flag.StringVar(&flags.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&flags.logFile, "log", "", "Write diagnostics to this file")
	flag.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tern - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tern [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tern                 Open with an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  tern notes.txt       Open a file\n")
		fmt.Fprintf(os.Stderr, "  tern -log tern.log   Open with diagnostics enabled\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("tern %s (%s)\n", version, commit)
		os.Exit(0)
	}

	flags.file = flag.Arg(0)
	return flags
}

// openLogger builds the session logger. Flags beat the config file;
// without a target file, logging is off.
func openLogger(cfg config.Config, flags cliFlags) (*log.Logger, func()) {
	target := cfg.Log.File
	if flags.logFile != "" {
		target = flags.logFile
	}
	if target == "" {
		return log.Discard(), func() {}
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.Discard(), func() {}
	}

	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	return log.New(f, log.ParseLevel(level)), func() { f.Close() }
}
