package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play there.

The window size, title and whether Esc closes it come from the config file.

Examples:
  snake window
  snake window --record --seed 7`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	addSessionFlags(windowCmd)
}

func runWindow(_ *cobra.Command, _ []string) error {
	sess, store, err := newLocalSession("window")
	if err != nil {
		return err
	}
	defer closeStore(store)

	runID, err := window.Run(sess, store, logger)
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	if runID != "" {
		fmt.Printf("Run saved: %s\n", runID)
	}
	return nil
}
