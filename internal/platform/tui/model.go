package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options configures a Model beyond its session.
type Options struct {
	Store         *storage.Store     // Where recordings are saved; may be nil
	Renderer      *lipgloss.Renderer // nil uses the default renderer
	Logger        *log.Logger        // nil uses log.Default()
	ScreenshotDir string             // Empty means ~/.snake/screenshots
}

// Model is the Bubble Tea model running one snake session.
type Model struct {
	session  *session.Session
	opts     Options
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	status   string // Last one-off message, such as a screenshot path
	runID    string
	finished bool // Replay reached its end
	quitting bool
}

// NewModel creates a model for the session sized to the terminal.
func NewModel(sess *session.Session, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	m := Model{
		session: sess,
		opts:    opts,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
	cell := sess.Config.CellSize
	m.screen.SetScale(cell/2, cell)
	m.layout()
	return m
}

// layout fits the game area above the status and help lines.
func (m *Model) layout() {
	m.help.Width = m.width
	rows := m.height - 1 - lipgloss.Height(m.help.View(m.keys))
	m.screen.Resize(max(m.width, 0), max(rows, 0))
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.session.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board is unbounded, so a resize only changes the view.
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.save()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
			m.status = "screenshot failed"
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
			m.status = "saved " + filepath.Base(path)
		}
		return m, nil
	}

	if b := m.keys.Button(msg); b != core.ButtonNone {
		m.session.Pressed(b)
	}
	return m, nil
}

// handleTick advances the simulation once and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished || m.quitting {
		return m, nil
	}
	if m.session.Done() {
		m.finished = true
		m.opts.Logger.Info("replay finished", "tick", m.session.Snapshot().Tick)
		return m, nil
	}

	result := m.session.Update()
	if result.Ate {
		m.opts.Logger.Debug("food eaten", "tick", result.Tick, "length", len(m.session.Snapshot().Body))
	}
	return m, tickCmd(m.session.Config.TickRate)
}

// save stores the recording, if any. It runs once, when quitting.
func (m *Model) save() {
	if !m.session.Recording() || m.opts.Store == nil || m.runID != "" {
		return
	}
	id, err := m.session.Save(m.opts.Store)
	if err != nil {
		m.opts.Logger.Error("could not save run", "error", err)
		return
	}
	m.runID = id
	m.opts.Logger.Info("run saved", "id", id, "ticks", m.session.Snapshot().Tick)
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.session.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".snake", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	// Nanoseconds keep two shots within a second apart.
	name := fmt.Sprintf("snake_%s_%d.txt", time.Now().Format("20060102_150405"), time.Now().Nanosecond())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen, m.opts.Renderer),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	recStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// statusLine shows the length, the tick and the recording state.
func (m Model) statusLine() string {
	snap := m.session.Snapshot()
	line := statusStyle.Render(fmt.Sprintf("length %d  tick %d  seed %d", len(snap.Body), snap.Tick, m.session.Seed))
	if m.session.Recording() {
		line += "  " + recStyle.Render("● rec")
	}
	if m.finished {
		line += "  " + statusStyle.Render("replay finished")
	}
	if m.status != "" {
		line += "  " + statusStyle.Render(m.status)
	}
	return line
}

// RunID returns the ID of the saved recording, or "" if nothing was saved.
func (m Model) RunID() string {
	return m.runID
}

// Run starts a Bubble Tea program for the session and blocks until the
// player quits. It returns the ID of the saved run, if any.
func Run(sess *session.Session, cfg core.RuntimeConfig, opts Options) (string, error) {
	p := tea.NewProgram(
		NewModel(sess, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.RunID(), nil
	}
	return "", nil
}
