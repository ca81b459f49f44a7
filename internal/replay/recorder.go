// Package replay records the inputs of a session and re-executes them.
//
// A run is reproducible from three things: the configuration, the random
// seed and the ordered presses, each tagged with the number of updates
// that had completed when it arrived.
package replay

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Recorder wraps a driver and keeps every movement press it forwards.
type Recorder struct {
	driver  snake.Driver
	cfg     config.Config
	seed    int64
	host    string
	ticks   uint64
	presses []storage.Press
}

// NewRecorder wraps d. cfg and seed must be the ones d's game was built
// from, or the recording will not replay.
func NewRecorder(d snake.Driver, cfg config.Config, seed int64, host string) *Recorder {
	return &Recorder{driver: d, cfg: cfg, seed: seed, host: host}
}

// Update forwards to the wrapped driver.
func (r *Recorder) Update() snake.StepResult {
	res := r.driver.Update()
	r.ticks = res.Tick
	return res
}

// Pressed records movement buttons and forwards every button. Other
// buttons cannot change the simulation and are not kept.
func (r *Recorder) Pressed(b core.Button) {
	if b.IsArrow() {
		r.presses = append(r.presses, storage.Press{Tick: r.ticks, Button: b.String()})
	}
	r.driver.Pressed(b)
}

// Render forwards to the wrapped driver.
func (r *Recorder) Render(c core.Canvas) {
	r.driver.Render(c)
}

// Snapshot forwards to the wrapped driver.
func (r *Recorder) Snapshot() snake.Snapshot {
	return r.driver.Snapshot()
}

// Presses returns the number of presses recorded so far.
func (r *Recorder) Presses() int {
	return len(r.presses)
}

// Run packages the recording for storage.
func (r *Recorder) Run() (storage.Run, error) {
	data, err := config.Marshal(r.cfg)
	if err != nil {
		return storage.Run{}, err
	}
	presses := make([]storage.Press, len(r.presses))
	copy(presses, r.presses)
	return storage.Run{
		Host:    r.host,
		Seed:    r.seed,
		Config:  data,
		Final:   r.driver.Snapshot(),
		Presses: presses,
	}, nil
}

// Save stores the recording and returns its ID.
func (r *Recorder) Save(store *storage.Store) (string, error) {
	run, err := r.Run()
	if err != nil {
		return "", err
	}
	return store.SaveRun(run)
}
