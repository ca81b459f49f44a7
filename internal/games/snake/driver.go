package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Driver is the surface hosts drive once per event. *Game implements it,
// and so do the wrappers that record, replay or steer a game.
type Driver interface {
	Update() StepResult
	Pressed(b core.Button)
	Render(c core.Canvas)
	Snapshot() Snapshot
}

var _ Driver = (*Game)(nil)
