package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/platform/window"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagReplayWatch  bool
	flagReplayWindow bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Verify or watch a recorded run",
	Long: `Re-execute a recorded run from its seed, config and presses.

Without flags the run is replayed headless and its final state compared
with the recorded one; a mismatch exits with an error. A unique prefix of
the run ID is enough.

Examples:
  snake replay 6f1c2d3e
  snake replay 6f1c2d3e --watch
  snake replay 6f1c2d3e --window`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayWatch, "watch", false, "Watch the replay in the terminal")
	replayCmd.Flags().BoolVar(&flagReplayWindow, "window", false, "Watch the replay in a desktop window")
}

func runReplay(_ *cobra.Command, args []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if flagReplayWatch || flagReplayWindow {
		return watchRun(store, args[0])
	}

	run, err := store.FindRun(args[0])
	if err != nil {
		return err
	}
	final, err := replay.Verify(run)
	if errors.Is(err, replay.ErrDiverged) {
		logger.Error("replay diverged", "run", run.ID, "ticks", final.Tick)
		return err
	}
	if err != nil {
		return err
	}

	logger.Info("replay verified", "run", run.ID, "ticks", final.Tick, "length", len(final.Body))
	fmt.Printf("Run %s verified: %d ticks, length %d, %d presses\n",
		run.ID, final.Tick, len(final.Body), len(run.Presses))
	return nil
}

// watchRun plays a recorded run back in the terminal or a window.
func watchRun(store *storage.Store, id string) error {
	run, err := store.FindRun(id)
	if err != nil {
		return err
	}
	sess, err := session.NewReplay(run)
	if err != nil {
		return err
	}

	if flagReplayWindow {
		_, err = window.Run(sess, nil, logger)
		return err
	}
	_, err = tui.Run(sess, runtimeConfig(sess), tui.Options{Logger: terminalLogger()})
	return err
}
