package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/core"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the built-in configuration: a two-cell snake at
// (0,0),(0,1) heading right, food at the origin, food respawning in
// [0, 30) on both axes, 20 pixel cells and 10 updates per second.
func DefaultConfig() Config {
	return Config{
		TickRate:   10,
		CellSize:   20,
		Background: NewColor(core.ColorGreen),
		Snake: SnakeConfig{
			Body:      []core.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}},
			Direction: "right",
			Color:     NewColor(core.ColorRed),
		},
		Food: FoodConfig{
			Position: core.Cell{X: 0, Y: 0},
			Color:    NewColor(core.ColorBlack),
		},
		Spawn: SpawnRange{Min: 0, Max: 30},
		Window: WindowConfig{
			Width:     200,
			Height:    200,
			Title:     "snake",
			ExitOnEsc: true,
		},
	}
}
