package snake

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gammazero/deque"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvariant marks a broken internal invariant. It is only ever raised
// through panic: reaching it means the snake was built or mutated outside
// its documented operations.
var ErrInvariant = errors.New("snake: invariant violated")

// Step appended past a single-cell tail, where no tail vector exists.
const growFallbackDX, growFallbackDY = 0, -1

// Snake is an ordered body of cells, head first, plus the direction it
// moves on the next update.
type Snake struct {
	body      deque.Deque[core.Cell] // Front is the head, back the tail
	direction Direction
	color     color.RGBA
}

// NewSnake creates a snake from a head-first body. The body must hold at
// least one cell.
func NewSnake(body []core.Cell, dir Direction, c color.RGBA) (*Snake, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: snake needs at least one cell", ErrInvariant)
	}
	s := &Snake{direction: dir, color: c}
	for _, cell := range body {
		s.body.PushBack(cell)
	}
	return s, nil
}

// MoveForward steps the head one cell along the current direction and drops
// the tail, keeping the length unchanged.
func (s *Snake) MoveForward() {
	if s.body.Len() == 0 {
		panic(fmt.Errorf("%w: move with empty body", ErrInvariant))
	}
	dx, dy := s.direction.Offset()
	s.body.PushFront(s.body.Front().Add(dx, dy))
	s.body.PopBack()
}

// Grow appends one cell past the tail, continuing the step from the
// second-to-last cell to the last one. A single-cell snake has no such
// step and extends by (0,-1) instead.
func (s *Snake) Grow() {
	n := s.body.Len()
	if n == 0 {
		panic(fmt.Errorf("%w: grow with empty body", ErrInvariant))
	}
	tail := s.body.Back()
	dx, dy := growFallbackDX, growFallbackDY
	if n > 1 {
		dx, dy = tail.Sub(s.body.At(n - 2))
	}
	s.body.PushBack(tail.Add(dx, dy))
}

// CollidesWith reports whether the head sits on the food.
func (s *Snake) CollidesWith(f *Food) bool {
	if s.body.Len() == 0 {
		return false
	}
	return s.body.Front() == f.Position()
}

// SetDirection replaces the direction used by the next MoveForward.
// Reversal checks belong to the caller.
func (s *Snake) SetDirection(d Direction) {
	s.direction = d
}

// Direction returns the current direction.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return s.body.Len()
}

// Head returns the first body cell.
func (s *Snake) Head() core.Cell {
	return s.body.Front()
}

// Tail returns the last body cell.
func (s *Snake) Tail() core.Cell {
	return s.body.Back()
}

// Body returns a head-first copy of the body.
func (s *Snake) Body() []core.Cell {
	cells := make([]core.Cell, s.body.Len())
	for i := range cells {
		cells[i] = s.body.At(i)
	}
	return cells
}

// Render draws one square per body cell.
func (s *Snake) Render(c core.Canvas, cellSize float64) {
	for i := range s.body.Len() {
		cell := s.body.At(i)
		c.FillSquare(float64(cell.X)*cellSize, float64(cell.Y)*cellSize, cellSize, s.color)
	}
}
