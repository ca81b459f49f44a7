package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// directionInfo is the closed table every Direction lookup goes through.
var directionInfo = [...]struct {
	name     string
	dx, dy   int
	opposite Direction
}{
	DirLeft:  {name: "left", dx: -1, dy: 0, opposite: DirRight},
	DirRight: {name: "right", dx: 1, dy: 0, opposite: DirLeft},
	DirUp:    {name: "up", dx: 0, dy: -1, opposite: DirDown},
	DirDown:  {name: "down", dx: 0, dy: 1, opposite: DirUp},
}

// buttonDirections maps the movement buttons to directions.
var buttonDirections = map[core.Button]Direction{
	core.ButtonUp:    DirUp,
	core.ButtonDown:  DirDown,
	core.ButtonLeft:  DirLeft,
	core.ButtonRight: DirRight,
}

// Directions lists every direction in declaration order.
func Directions() []Direction {
	return []Direction{DirLeft, DirRight, DirUp, DirDown}
}

func (d Direction) valid() bool {
	return d >= 0 && int(d) < len(directionInfo)
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return directionInfo[d].opposite
}

// Offset returns the unit step of d. Screen coordinates grow downward,
// so Up is y-1 and Down is y+1.
func (d Direction) Offset() (dx, dy int) {
	info := directionInfo[d]
	return info.dx, info.dy
}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	if !d.valid() {
		return "unknown"
	}
	return directionInfo[d].name
}

// IsOpposite reports whether a and b point in reverse directions.
func IsOpposite(a, b Direction) bool {
	return a.valid() && b.valid() && directionInfo[a].opposite == b
}

// ParseDirection is the inverse of Direction.String. Matching ignores case.
func ParseDirection(s string) (Direction, error) {
	s = config.NormalizeDirection(s)
	for i, info := range directionInfo {
		if info.name == s {
			return Direction(i), nil
		}
	}
	return DirRight, fmt.Errorf("snake: unknown direction %q", s)
}

// Button returns the movement button that selects d.
func (d Direction) Button() core.Button {
	for b, dir := range buttonDirections {
		if dir == d {
			return b
		}
	}
	return core.ButtonNone
}

// DirectionFor maps a button to a direction. The second result is false
// for every non-movement button.
func DirectionFor(b core.Button) (Direction, bool) {
	d, ok := buttonDirections[b]
	return d, ok
}
