package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ErrDiverged is returned when a replay does not end in the recorded state.
var ErrDiverged = errors.New("replay: final state diverged")

// Player re-executes a recorded run. It is a snake.Driver, so any host can
// show a replay; live input is ignored.
type Player struct {
	game    *snake.Game
	presses []storage.Press
	next    int
	end     uint64
}

// NewPlayer rebuilds the game a run was recorded from.
func NewPlayer(run *storage.Run) (*Player, error) {
	cfg, err := config.Parse(run.Config)
	if err != nil {
		return nil, fmt.Errorf("replay: run %s: %w", run.ID, err)
	}
	game, err := snake.New(cfg, snake.NewRandomSource(run.Seed))
	if err != nil {
		return nil, fmt.Errorf("replay: run %s: %w", run.ID, err)
	}
	for i, p := range run.Presses {
		if _, err := core.ParseButton(p.Button); err != nil {
			return nil, fmt.Errorf("replay: run %s press %d: %w", run.ID, i, err)
		}
	}
	return &Player{game: game, presses: run.Presses, end: run.Final.Tick}, nil
}

// applyDue feeds every press recorded before the current tick's update.
func (p *Player) applyDue() {
	for p.next < len(p.presses) && p.presses[p.next].Tick <= p.game.Tick() {
		b, _ := core.ParseButton(p.presses[p.next].Button)
		p.game.Pressed(b)
		p.next++
	}
}

// Update applies the presses due before this tick, then advances the game.
func (p *Player) Update() snake.StepResult {
	p.applyDue()
	return p.game.Update()
}

// Pressed ignores live input.
func (p *Player) Pressed(core.Button) {}

// Render draws the replayed game.
func (p *Player) Render(c core.Canvas) {
	p.game.Render(c)
}

// Snapshot returns the replayed game state.
func (p *Player) Snapshot() snake.Snapshot {
	return p.game.Snapshot()
}

// Done reports whether the recorded number of ticks has been replayed.
func (p *Player) Done() bool {
	return p.game.Tick() >= p.end
}

// Finish applies the presses that arrived after the last recorded update
// and returns the final state.
func (p *Player) Finish() snake.Snapshot {
	p.applyDue()
	return p.game.Snapshot()
}

// Execute replays a run to its end without rendering.
func Execute(run *storage.Run) (snake.Snapshot, error) {
	p, err := NewPlayer(run)
	if err != nil {
		return snake.Snapshot{}, err
	}
	for !p.Done() {
		p.Update()
	}
	return p.Finish(), nil
}

// Verify replays a run and checks it ends in the recorded state.
func Verify(run *storage.Run) (snake.Snapshot, error) {
	got, err := Execute(run)
	if err != nil {
		return got, err
	}
	if !got.Equal(run.Final) {
		return got, fmt.Errorf("%w: run %s: head %v len %d food %v, recorded head %v len %d food %v",
			ErrDiverged, run.ID,
			got.Head(), len(got.Body), got.Food,
			run.Final.Head(), len(run.Final.Body), run.Final.Food)
	}
	return got, nil
}
