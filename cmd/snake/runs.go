package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagRunsLimit  int
	flagRunsBrowse bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `List the most recent recorded runs, newest first.

With --browse the list opens interactively: Enter watches the selected
run, x deletes it.

Examples:
  snake runs
  snake runs --limit 5
  snake runs --browse`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Browse runs interactively")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := openStore(true)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if flagRunsBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		id, err := tui.BrowseRuns(store, flagRunsLimit, width, height)
		if err != nil || id == "" {
			return err
		}
		return watchRun(store, id)
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Play with --record to keep one.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(tui.RunColumns...)
	for _, r := range runs {
		t.Row(tui.RunRow(r)...)
	}
	fmt.Println(t)
	return nil
}
