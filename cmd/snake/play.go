package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagAutopilot bool
	flagRecord    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Arrows/WASD/HJKL - Steer
  Ctrl+S           - Save a text screenshot to ~/.snake/screenshots
  ?                - Toggle help
  Esc/Q/Ctrl+C     - Quit

Examples:
  snake play
  snake play --record
  snake play --autopilot --tps 30
  snake play --seed 42 --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addSessionFlags(playCmd)
}

// addSessionFlags registers the flags shared by the local hosts.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Steer the snake automatically")
	cmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run so it can be replayed")
}

// newLocalSession builds the session for play and window.
func newLocalSession(host string) (*session.Session, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var store *storage.Store
	if flagRecord {
		if store, err = openStore(false); err != nil {
			return nil, nil, err
		}
	}

	sess, err := session.New(session.Options{
		Config:    cfg,
		Seed:      flagSeed,
		Host:      host,
		Record:    flagRecord && store != nil,
		Autopilot: flagAutopilot,
	})
	if err != nil {
		closeStore(store)
		return nil, nil, err
	}
	return sess, store, nil
}

// runtimeConfig sizes the view to the current terminal.
func runtimeConfig(sess *session.Session) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = sess.Config.TickRate
	rc.Seed = sess.Seed
	return rc
}

func runPlay(_ *cobra.Command, _ []string) error {
	sess, store, err := newLocalSession("tui")
	if err != nil {
		return err
	}
	defer closeStore(store)

	runID, err := tui.Run(sess, runtimeConfig(sess), tui.Options{
		Store:  store,
		Logger: terminalLogger(),
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	if runID != "" {
		fmt.Printf("Run saved: %s\n", runID)
	}
	return nil
}
