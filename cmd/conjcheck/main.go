// # cmd/conjcheck/main.go
package main

import (
	"conjcheck/internal/config"
	"conjcheck/internal/shared/observability"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

var (
	configPath  = flag.String("config", "./conjcheck.toml", "Path to config file")
	once        = flag.Bool("once", false, "Run single validation and exit")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode")
	trends      = flag.Bool("trends", false, "Print error trends from the history store and exit")
	trendWindow = flag.Duration("trend-window", 7*24*time.Hour, "Lookback window for --trends")
	verbose     = flag.Bool("verbose", false, "Print the per-record rule transcript")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("conjcheck v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err == nil {
				output = f
			} else {
				fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./conjcheck.toml" {
			cfg, err = config.Load("./conjcheck.example.toml")
		}
		if err != nil {
			slog.Debug("no config file found, using defaults", "error", err)
			cfg = config.Default()
		}
	}

	if flag.NArg() > 0 {
		cfg.CorpusRoot = flag.Arg(0)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observe.OTLPEndpoint, VERSION)
	if err != nil {
		slog.Warn("failed to initialize tracing", "error", err)
	} else {
		defer shutdownTracing(ctx)
	}

	app, err := NewApp(cfg, *verbose)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if *trends {
		if err := app.PrintTrends(time.Now().Add(-*trendWindow), *trendWindow); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := app.StartObservability(ctx); err != nil {
		slog.Error("failed to start observability server", "error", err)
		os.Exit(1)
	}

	// Initial validation
	result, err := app.RunValidation(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if !*ui {
		app.PrintReport(result)
	}
	if err := app.GenerateOutputs(result); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	if *once {
		if result.Counters.Clean() {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Watch mode
	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "conjcheck", "conjcheck.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "conjcheck", "conjcheck.log")
	}

	return "conjcheck.log"
}
