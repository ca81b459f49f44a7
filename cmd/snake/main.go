// snake is the classic snake game for the terminal, a desktop window, SSH
// and the browser, with recordable and replayable runs.
//
// Usage:
//
//	snake play              - Play in the terminal
//	snake window            - Play in a desktop window
//	snake serve             - Start SSH server for remote play
//	snake web               - Serve the game to browsers
//	snake runs              - List recorded runs
//	snake replay <run-id>   - Verify or watch a recorded run
//
// Global flags:
//
//	--tps <rate>        - Override the tick rate (default: from config)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.snake/runs.db)
//	--config <path>     - Load game config from a YAML file
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagTPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// logger is configured from the global flags before any command runs.
var logger = log.Default()

// logFile is closed when the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game for terminals, windows and browsers",
	Long: `Snake steers a growing snake towards food on an endless board.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  web      - Serve the game to browsers over websockets
  runs     - List recorded runs
  replay   - Verify or watch a recorded run

Examples:
  snake play --record
  snake window --autopilot
  snake serve --ssh :2222
  snake web --addr :8080
  snake runs
  snake replay 6f1c2d3e --watch`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Tick rate in updates per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// setupLogging builds the shared logger from --log-level and --log-file.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return nil
}

// terminalLogger is the logger for commands that own the terminal. Without
// --log-file their logs would tear the alt screen, so they are dropped.
func terminalLogger() *log.Logger {
	if logFile != nil {
		return logger
	}
	return log.New(io.Discard)
}

// loadConfig loads the game config and applies the --tps override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagTPS > 0 {
		cfg.TickRate = flagTPS
	}
	return cfg, nil
}

// openStore opens the runs database, or returns nil with a warning when it
// is unavailable and required is false.
func openStore(required bool) (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if required {
			return nil, err
		}
		logger.Warn("could not open runs database, recordings will not be saved", "error", err)
		return nil, nil
	}
	return store, nil
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
