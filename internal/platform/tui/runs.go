package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// RunsKeyMap defines the key bindings for the runs browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Watch, k.Delete, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model listing recorded runs.
type RunsModel struct {
	store    *storage.Store
	runs     []storage.Run
	limit    int
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	err      error
	selected string // Run chosen for watching
	quitting bool
}

// NewRunsModel creates a runs browser showing up to limit runs.
func NewRunsModel(store *storage.Store, limit, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		limit:  limit,
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// RunColumns are the column titles shared by the table and the plain listing.
var RunColumns = []string{"ID", "Host", "Ticks", "Length", "Presses", "Date"}

// RunRow formats one run for display.
func RunRow(r storage.Run) []string {
	return []string{
		shortID(r.ID),
		r.Host,
		fmt.Sprintf("%d", r.Final.Tick),
		fmt.Sprintf("%d", len(r.Final.Body)),
		fmt.Sprintf("%d", r.PressCount),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// shortID keeps the first UUID group, which is enough to tell runs apart.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// createTable creates a new table sized to the terminal.
func (m *RunsModel) createTable() table.Model {
	widths := []int{10, 7, 8, 8, 8, 14}
	columns := make([]table.Column, len(RunColumns))
	for i, title := range RunColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)), // Leave room for title and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the run list from the store.
func (m *RunsModel) loadRuns() {
	m.runs, m.err = nil, nil
	if m.store != nil {
		m.runs, m.err = m.store.RecentRuns(m.limit)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row(RunRow(r))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the runs model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteRun(r.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.loadRuns()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadRuns()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// current returns the run under the cursor.
func (m RunsModel) current() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// View renders the runs browser.
func (m RunsModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var content string
	switch {
	case m.err != nil:
		content = dimStyle.Render("Could not load runs: " + m.err.Error())
	case len(m.runs) == 0:
		content = dimStyle.Italic(true).Padding(1, 2).
			Render("No runs recorded yet.\nPlay with --record to keep one.")
	default:
		content = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("RECORDED RUNS"),
		boxStyle.Render(content),
		dimStyle.Render(m.help.View(m.keys)),
	)
}

// Selected returns the full ID of the run chosen for watching, or "".
func (m RunsModel) Selected() string {
	return m.selected
}

// BrowseRuns runs the runs browser and returns the run chosen for watching.
func BrowseRuns(store *storage.Store, limit, width, height int) (string, error) {
	p := tea.NewProgram(
		NewRunsModel(store, limit, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(RunsModel); ok {
		return m.Selected(), nil
	}
	return "", nil
}
