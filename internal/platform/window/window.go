// Package window hosts a snake session in a desktop window through Ebiten.
package window

import (
	"errors"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// keyButtons maps physical keys to game buttons.
var keyButtons = []struct {
	key    ebiten.Key
	button core.Button
}{
	{ebiten.KeyArrowUp, core.ButtonUp},
	{ebiten.KeyArrowDown, core.ButtonDown},
	{ebiten.KeyArrowLeft, core.ButtonLeft},
	{ebiten.KeyArrowRight, core.ButtonRight},
	{ebiten.KeyW, core.ButtonUp},
	{ebiten.KeyS, core.ButtonDown},
	{ebiten.KeyA, core.ButtonLeft},
	{ebiten.KeyD, core.ButtonRight},
	{ebiten.KeyEscape, core.ButtonEscape},
	{ebiten.KeySpace, core.ButtonSpace},
	{ebiten.KeyEnter, core.ButtonEnter},
}

// Game adapts a session to ebiten.Game. Ebiten runs at its own TPS so
// input is polled every frame; the session advances tick_rate times per
// second on an accumulator.
type Game struct {
	session     *session.Session
	logger      *log.Logger
	justPressed func(ebiten.Key) bool
	tps         int
	budget      int
	finished    bool
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates an Ebiten game for the session.
func NewGame(sess *session.Session, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		session:     sess,
		logger:      logger,
		justPressed: inpututil.IsKeyJustPressed,
	}
	g.setTPS(ebiten.DefaultTPS)
	return g
}

// setTPS sets the frame rate the accumulator divides. The first frame
// always advances the session.
func (g *Game) setTPS(tps int) {
	g.tps = max(tps, g.session.Config.TickRate)
	g.budget = g.tps - g.session.Config.TickRate
}

// Update forwards this frame's key presses, then advances the simulation
// when a full step has accumulated. Keys that become pressed in the same
// frame are applied in keyButtons order.
func (g *Game) Update() error {
	for _, kb := range keyButtons {
		if !g.justPressed(kb.key) {
			continue
		}
		if kb.button == core.ButtonEscape && g.session.Config.Window.ExitOnEsc {
			return ebiten.Termination
		}
		g.session.Pressed(kb.button)
	}

	if g.finished {
		return nil
	}
	g.budget += g.session.Config.TickRate
	if g.budget < g.tps {
		return nil
	}
	g.budget -= g.tps
	if g.session.Done() {
		g.finished = true
		g.logger.Info("replay finished", "tick", g.session.Snapshot().Tick)
		return nil
	}

	if result := g.session.Update(); result.Ate {
		g.logger.Debug("food eaten", "tick", result.Tick, "length", len(g.session.Snapshot().Body))
	}
	return nil
}

// Draw renders the session onto the window.
func (g *Game) Draw(screen *ebiten.Image) {
	g.session.Render(imageCanvas{dst: screen})
}

// Layout keeps the logical screen at the configured window size.
func (g *Game) Layout(_, _ int) (int, int) {
	w := g.session.Config.Window
	return w.Width, w.Height
}

// imageCanvas draws onto an Ebiten image.
type imageCanvas struct {
	dst *ebiten.Image
}

func (c imageCanvas) Clear(clr color.RGBA) {
	c.dst.Fill(clr)
}

func (c imageCanvas) FillSquare(x, y, size float64, clr color.RGBA) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(size), float32(size), clr, false)
}

// Run opens the window and blocks until it is closed. The recording, if
// any, is saved to store afterwards and its ID returned.
func Run(sess *session.Session, store *storage.Store, logger *log.Logger) (string, error) {
	if logger == nil {
		logger = log.Default()
	}
	w := sess.Config.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)

	logger.Info("opening window", "width", w.Width, "height", w.Height, "tick_rate", sess.Config.TickRate)
	err := ebiten.RunGame(NewGame(sess, logger))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return "", err
	}

	id, err := sess.Save(store)
	if err != nil {
		return "", err
	}
	if id != "" {
		logger.Info("run saved", "id", id, "ticks", sess.Snapshot().Tick)
	}
	return id, nil
}
