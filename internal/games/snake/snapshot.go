package snake

import (
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64      `json:"tick"`
	Direction string      `json:"direction"`
	Body      []core.Cell `json:"body"`
	Food      core.Cell   `json:"food"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Direction: g.snake.Direction().String(),
		Body:      g.snake.Body(),
		Food:      g.food.Position(),
	}
}

// Head returns the first body cell of the snapshot.
func (s Snapshot) Head() core.Cell {
	if len(s.Body) == 0 {
		return core.Cell{}
	}
	return s.Body[0]
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Tick == other.Tick &&
		s.Direction == other.Direction &&
		s.Food == other.Food &&
		slices.Equal(s.Body, other.Body)
}
