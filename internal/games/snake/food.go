package snake

import (
	"image/color"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Food is the single target the snake grows on. It never moves by itself.
type Food struct {
	position core.Cell
	color    color.RGBA
}

// NewFood places food at pos.
func NewFood(pos core.Cell, c color.RGBA) *Food {
	return &Food{position: pos, color: c}
}

// Relocate moves the food to (x, y). Cells occupied by the snake are not
// excluded.
func (f *Food) Relocate(x, y int) {
	f.position = core.Cell{X: x, Y: y}
}

// Position returns the food cell.
func (f *Food) Position() core.Cell {
	return f.position
}

// Render draws the food as one square.
func (f *Food) Render(c core.Canvas, cellSize float64) {
	c.FillSquare(float64(f.position.X)*cellSize, float64(f.position.Y)*cellSize, cellSize, f.color)
}
