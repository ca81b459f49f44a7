package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/web"
)

var (
	flagWebAddr   string
	flagWebRecord bool
	flagWebPilot  bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game to browsers",
	Long: `Start an HTTP server with a canvas page. Every browser tab that opens
it plays its own game over a websocket.

Endpoints:
  GET /          - The game page
  GET /ws        - Game websocket
  GET /api/runs  - Recently recorded runs as JSON
  GET /healthz   - Liveness check

Examples:
  snake web
  snake web --addr :9000 --record`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().BoolVar(&flagWebRecord, "record", false, "Save every game as a run")
	webCmd.Flags().BoolVar(&flagWebPilot, "autopilot", false, "Steer every game automatically")
}

func runWeb(_ *cobra.Command, _ []string) error {
	game, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	cfg := web.DefaultConfig()
	cfg.Addr = flagWebAddr
	cfg.Game = game
	cfg.Record = flagWebRecord && store != nil
	cfg.Autopilot = flagWebPilot

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving snake on %s\n", cfg.Addr)
	fmt.Println("Press Ctrl+C to stop")

	return web.NewServer(cfg, store, logger).ListenAndServe(ctx)
}
