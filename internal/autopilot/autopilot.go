// Package autopilot steers a snake toward the food without player input.
package autopilot

import (
	"github.com/joonazan/vec2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Pilot wraps a driver and presses a movement button before every update.
// Live presses still pass through, so a player can take over between ticks.
type Pilot struct {
	driver snake.Driver
}

// Wrap returns a pilot driving d.
func Wrap(d snake.Driver) *Pilot {
	return &Pilot{driver: d}
}

// Update picks a direction, presses it, then advances the wrapped driver.
func (p *Pilot) Update() snake.StepResult {
	if b := Choose(p.driver.Snapshot()); b != core.ButtonNone {
		p.driver.Pressed(b)
	}
	return p.driver.Update()
}

// Pressed forwards live input.
func (p *Pilot) Pressed(b core.Button) {
	p.driver.Pressed(b)
}

// Render forwards to the wrapped driver.
func (p *Pilot) Render(c core.Canvas) {
	p.driver.Render(c)
}

// Snapshot forwards to the wrapped driver.
func (p *Pilot) Snapshot() snake.Snapshot {
	return p.driver.Snapshot()
}

// Choose returns the button whose next head lands nearest the food, or
// ButtonNone when the current direction is already the best move. Reversals
// are never chosen; ties keep the current direction, then follow
// declaration order.
func Choose(s snake.Snapshot) core.Button {
	current, err := snake.ParseDirection(s.Direction)
	if err != nil || len(s.Body) == 0 {
		return core.ButtonNone
	}
	head := s.Head()
	food := vec(s.Food)

	best := current
	bestDist := distance(head, current, food)
	for _, d := range snake.Directions() {
		if d == current || snake.IsOpposite(d, current) {
			continue
		}
		if dist := distance(head, d, food); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == current {
		return core.ButtonNone
	}
	return best.Button()
}

func distance(head core.Cell, d snake.Direction, food vec2.Vector) float64 {
	dx, dy := d.Offset()
	return vec(head.Add(dx, dy)).Minus(food).Length()
}

func vec(c core.Cell) vec2.Vector {
	return vec2.Vector{X: float64(c.X), Y: float64(c.Y)}
}
