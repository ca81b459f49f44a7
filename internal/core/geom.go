// Package core provides fundamental types and utilities shared by the
// simulation and the platform hosts. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "fmt"

// Cell is one discrete grid coordinate. The grid is unbounded: cells may
// carry negative coordinates and nothing wraps or clamps them.
type Cell struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Add returns the cell shifted by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Sub returns the offset from other to c.
func (c Cell) Sub(other Cell) (dx, dy int) {
	return c.X - other.X, c.Y - other.Y
}

// String formats the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
