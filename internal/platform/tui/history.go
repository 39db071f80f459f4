package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-battleship/internal/storage"
)

// History layout constants
const (
	minWidthForStats = 90  // Minimum width to show the stats box beside the table
	statsWidth       = 24  // Width of the stats box
	maxRounds        = 100 // Max rounds to load
)

// HistoryColumns are the round table headers, shared with the CLI listing.
var HistoryColumns = []string{"Result", "Board", "Boats", "Guesses", "Time", "Player", "Date"}

// HistoryRow formats a round for the round table.
func HistoryRow(r storage.Round) []string {
	date := "-"
	if !r.CreatedAt.IsZero() {
		date = r.CreatedAt.Local().Format("Jan 02 15:04")
	}
	return []string{
		string(r.Outcome),
		fmt.Sprintf("%dx%d", r.Width, r.Height),
		fmt.Sprintf("%d", r.Boats),
		fmt.Sprintf("%d", r.Guesses),
		formatDuration(r.Duration),
		r.Player,
		date,
	}
}

// formatDuration renders a round duration as m:ss.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "all/mine"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the round history screen.
type HistoryModel struct {
	store     *storage.Store
	player    string // Rounds shown when onlyMine is set
	onlyMine  bool
	rounds    []storage.Round
	stats     *storage.RoundStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewHistoryModel creates a new history model for the given player.
func NewHistoryModel(store *storage.Store, player string, width, height int) HistoryModel {
	if player == "" {
		player = "local"
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := HistoryModel{
		store:  store,
		player: player,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table sized to the screen.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: HistoryColumns[0], Width: 9},
		{Title: HistoryColumns[1], Width: 6},
		{Title: HistoryColumns[2], Width: 5},
		{Title: HistoryColumns[3], Width: 7},
		{Title: HistoryColumns[4], Width: 6},
		{Title: HistoryColumns[5], Width: 10},
		{Title: HistoryColumns[6], Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, help, and margins
	)

	// Table styles
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

// load reads rounds and stats for the current filter.
func (m *HistoryModel) load() {
	m.rounds, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		if m.onlyMine {
			m.rounds, m.loadErr = m.store.PlayerRounds(m.player, maxRounds)
		} else {
			m.rounds, m.loadErr = m.store.RecentRounds(maxRounds)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats()
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rounds.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row(HistoryRow(r))
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.onlyMine = !m.onlyMine
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "ROUND HISTORY - all players"
	if m.onlyMine {
		title = fmt.Sprintf("ROUND HISTORY - %s", m.player)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableBox := boxStyle.Render(m.renderTableContent())
	if m.width >= minWidthForStats {
		statsBox := boxStyle.Width(statsWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableBox, "  ", statsBox))
	} else {
		b.WriteString(centerText(m.renderStatsLine(), m.width))
		b.WriteString("\n")
		b.WriteString(tableBox)
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the aggregated stats for the stats box.
func (m HistoryModel) renderStats() string {
	if m.stats == nil {
		return "No stats"
	}
	s := m.stats

	var b strings.Builder
	b.WriteString("Stats\n")
	b.WriteString(strings.Repeat("-", statsWidth-4))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Rounds     %d\n", s.Rounds)
	fmt.Fprintf(&b, "Found      %d\n", s.Found)
	fmt.Fprintf(&b, "Abandoned  %d\n", s.Abandoned)
	if s.Found > 0 {
		fmt.Fprintf(&b, "Best       %d\n", s.BestGuesses)
		fmt.Fprintf(&b, "Average    %.1f\n", s.AvgGuesses)
	}
	if !s.LastPlayed.IsZero() {
		fmt.Fprintf(&b, "Last       %s", s.LastPlayed.Local().Format("Jan 02"))
	}
	return b.String()
}

// renderStatsLine renders the stats on one line for narrow screens.
func (m HistoryModel) renderStatsLine() string {
	if m.stats == nil {
		return ""
	}
	s := m.stats
	line := fmt.Sprintf("%d rounds, %d found", s.Rounds, s.Found)
	if s.Found > 0 {
		line += fmt.Sprintf(", best %d guesses", s.BestGuesses)
	}
	return line
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Round history is unavailable.\nThe database could not be opened.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load rounds:\n" + m.loadErr.Error())
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nStart a round to fill the log!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
