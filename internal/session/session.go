// Package session assembles the driver a host runs: the game, optionally
// wrapped by a recorder and an autopilot.
package session

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/autopilot"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options selects how a session is built.
type Options struct {
	Config    config.Config
	Seed      int64  // 0 picks a time-based seed
	Host      string // Recorded with the run
	Record    bool
	Autopilot bool
}

// Session is a driver plus the bookkeeping hosts need at exit.
type Session struct {
	snake.Driver

	Seed   int64
	Config config.Config

	recorder *replay.Recorder
	done     func() bool

	mu      sync.Mutex
	savedID string
}

// New builds a fresh game session.
func New(opts Options) (*Session, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game, err := snake.New(opts.Config, snake.NewRandomSource(seed))
	if err != nil {
		return nil, err
	}

	s := &Session{Seed: seed, Config: opts.Config}
	var d snake.Driver = game
	if opts.Record {
		s.recorder = replay.NewRecorder(game, opts.Config, seed, opts.Host)
		d = s.recorder
	}
	if opts.Autopilot {
		d = autopilot.Wrap(d)
	}
	s.Driver = d
	return s, nil
}

// NewReplay builds a session that plays a recorded run back.
func NewReplay(run *storage.Run) (*Session, error) {
	p, err := replay.NewPlayer(run)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Parse(run.Config)
	if err != nil {
		return nil, err
	}
	return &Session{Driver: p, Seed: run.Seed, Config: cfg, done: p.Done}, nil
}

// Done reports whether a replay has reached its recorded end. Live
// sessions never finish by themselves.
func (s *Session) Done() bool {
	return s.done != nil && s.done()
}

// Recording reports whether presses are being recorded.
func (s *Session) Recording() bool {
	return s.recorder != nil
}

// Save stores the recording once; later calls return the same ID. It
// returns an empty ID when the session is not recording or store is nil.
func (s *Session) Save(store *storage.Store) (string, error) {
	if s.recorder == nil || store == nil {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savedID != "" {
		return s.savedID, nil
	}
	id, err := s.recorder.Save(store)
	if err != nil {
		return "", err
	}
	s.savedID = id
	return id, nil
}
