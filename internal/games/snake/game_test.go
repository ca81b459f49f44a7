package snake

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// scriptedSource returns queued values in order and counts the draws.
type scriptedSource struct {
	values []int
	draws  int
}

func (s *scriptedSource) IntRange(lo, hi int) int {
	s.draws++
	if len(s.values) == 0 {
		return lo
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func newTestGame(t *testing.T, body []core.Cell, dir string, food core.Cell, rng RandomSource) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Snake.Body = body
	cfg.Snake.Direction = dir
	cfg.Food.Position = food
	if rng == nil {
		rng = &scriptedSource{}
	}
	g, err := New(cfg, rng)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func TestStartScenario(t *testing.T) {
	g, err := New(config.DefaultConfig(), &scriptedSource{values: []int{17, 4}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	result := g.Update()

	if result.Ate {
		t.Error("Update() reported food eaten, expected none")
	}
	if result.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", result.Tick)
	}
	want := []core.Cell{{X: 1, Y: 0}, {X: 0, Y: 0}}
	if got := g.Snake().Body(); !slices.Equal(got, want) {
		t.Errorf("Body() = %v, expected %v", got, want)
	}
	if got := g.Food().Position(); got != (core.Cell{X: 0, Y: 0}) {
		t.Errorf("Food = %v, expected unchanged (0,0)", got)
	}
}

func TestUpdateGrowsAndRelocatesFood(t *testing.T) {
	rng := &scriptedSource{values: []int{7, 9}}
	g := newTestGame(t, []core.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}}, "right", core.Cell{X: 1, Y: 0}, rng)

	result := g.Update()

	if !result.Ate {
		t.Fatal("Update() should report food eaten when the head lands on it")
	}
	want := []core.Cell{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 0}}
	if got := g.Snake().Body(); !slices.Equal(got, want) {
		t.Errorf("Body() = %v, expected %v", got, want)
	}
	if got := g.Food().Position(); got != (core.Cell{X: 7, Y: 9}) {
		t.Errorf("Food = %v, expected (7,9)", got)
	}
}

func TestUpdateDrawsEveryTick(t *testing.T) {
	rng := &scriptedSource{}
	g := newTestGame(t, []core.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}}, "right", core.Cell{X: 100, Y: 100}, rng)

	for range 5 {
		g.Update()
	}

	if rng.draws != 10 {
		t.Errorf("draws = %d, expected 2 per tick (10)", rng.draws)
	}
	if got := g.Food().Position(); got != (core.Cell{X: 100, Y: 100}) {
		t.Errorf("Food moved to %v without being eaten", got)
	}
}

func TestPressed(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		button   core.Button
		expected Direction
	}{
		{"opposite rejected", "up", core.ButtonDown, DirUp},
		{"turn left", "up", core.ButtonLeft, DirLeft},
		{"turn right", "up", core.ButtonRight, DirRight},
		{"same direction", "up", core.ButtonUp, DirUp},
		{"reverse right rejected", "right", core.ButtonLeft, DirRight},
		{"reverse left rejected", "left", core.ButtonRight, DirLeft},
		{"reverse down rejected", "down", core.ButtonUp, DirDown},
		{"escape ignored", "right", core.ButtonEscape, DirRight},
		{"space ignored", "down", core.ButtonSpace, DirDown},
		{"none ignored", "left", core.ButtonNone, DirLeft},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, []core.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}}, tc.start, core.Cell{}, nil)
			g.Pressed(tc.button)
			if got := g.Snake().Direction(); got != tc.expected {
				t.Errorf("Direction() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPressedSequence(t *testing.T) {
	g := newTestGame(t, []core.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}}, "up", core.Cell{}, nil)

	g.Pressed(core.ButtonDown)
	if got := g.Snake().Direction(); got != DirUp {
		t.Fatalf("after Down: Direction() = %v, expected up", got)
	}
	g.Pressed(core.ButtonLeft)
	if got := g.Snake().Direction(); got != DirLeft {
		t.Fatalf("after Left: Direction() = %v, expected left", got)
	}
}

func TestDirectionAppliesOnNextUpdate(t *testing.T) {
	g := newTestGame(t, []core.Cell{{X: 0, Y: 0}, {X: -1, Y: 0}}, "right", core.Cell{X: 50, Y: 50}, nil)

	g.Pressed(core.ButtonDown)
	if got := g.Snake().Head(); got != (core.Cell{X: 0, Y: 0}) {
		t.Fatalf("Pressed moved the head to %v", got)
	}

	g.Update()
	if got := g.Snake().Head(); got != (core.Cell{X: 0, Y: 1}) {
		t.Errorf("Head() = %v, expected (0,1)", got)
	}
}

func TestRender(t *testing.T) {
	g, err := New(config.DefaultConfig(), &scriptedSource{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	dl := core.NewDrawList()
	g.Render(dl)

	if dl.BackgroundColor() != core.ColorGreen {
		t.Errorf("background = %v, expected green", dl.BackgroundColor())
	}
	want := []core.Square{
		{X: 0, Y: 0, Size: 20, Color: core.ColorRed},
		{X: 0, Y: 20, Size: 20, Color: core.ColorRed},
		{X: 0, Y: 0, Size: 20, Color: core.ColorBlack},
	}
	if len(dl.Squares) != len(want) {
		t.Fatalf("got %d squares, expected %d", len(dl.Squares), len(want))
	}
	for i, sq := range dl.Squares {
		w := want[i]
		if sq.X != w.X || sq.Y != w.Y || sq.Size != w.Size || sq.Color != w.Color {
			t.Errorf("square %d = %+v, expected %+v", i, sq, w)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty body", func(c *config.Config) { c.Snake.Body = nil }},
		{"bad direction", func(c *config.Config) { c.Snake.Direction = "north" }},
		{"empty spawn range", func(c *config.Config) { c.Spawn.Max = c.Spawn.Min }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg, &scriptedSource{}); !errors.Is(err, config.ErrInvalid) {
				t.Errorf("New() error = %v, expected ErrInvalid", err)
			}
		})
	}

	cfg := config.DefaultConfig()
	cfg.Snake.Direction = "Down"
	g, err := New(cfg, &scriptedSource{})
	if err != nil {
		t.Fatalf("New() with direction Down failed: %v", err)
	}
	if g.Snake().Direction() != DirDown {
		t.Errorf("Direction() = %v, expected down", g.Snake().Direction())
	}

	if _, err := New(config.DefaultConfig(), nil); err == nil {
		t.Error("New() with nil random source should fail")
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	cfg := config.DefaultConfig()
	cfg.Spawn = config.SpawnRange{Min: 0, Max: 4}
	cfg.Food.Position = core.Cell{X: 2, Y: 0}

	g1, err := New(cfg, NewRandomSource(12345))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g2, err := New(cfg, NewRandomSource(12345))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	presses := map[int]core.Button{
		3:  core.ButtonDown,
		6:  core.ButtonLeft,
		9:  core.ButtonUp,
		12: core.ButtonRight,
	}
	for i := range 200 {
		if b, ok := presses[i%16]; ok {
			g1.Pressed(b)
			g2.Pressed(b)
		}
		g1.Update()
		g2.Update()
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); !s1.Equal(s2) {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}
