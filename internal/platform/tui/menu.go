package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
)

// MenuItemKind says what selecting a menu item does.
type MenuItemKind int

const (
	MenuItemPlay MenuItemKind = iota
	MenuItemHistory
	MenuItemQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Kind   MenuItemKind
	Title  string
	Preset config.SizePreset // Empty plays the configured size
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a board
	openHistory bool      // True if user asked for the round history
}

// NewMenuModel creates a new menu model. The first entry plays the board
// size from the loaded configuration.
func NewMenuModel(game config.BattleshipConfig, cfg core.RuntimeConfig) MenuModel {
	items := []MenuItem{{
		Kind:  MenuItemPlay,
		Title: fmt.Sprintf("Play %dx%d", game.Board.Width, game.Board.Height),
	}}
	for _, p := range config.SizePresets {
		w, h := p.Dimensions()
		if w == game.Board.Width && h == game.Board.Height {
			continue
		}
		items = append(items, MenuItem{
			Kind:   MenuItemPlay,
			Title:  fmt.Sprintf("Play %s (%dx%d)", p, w, h),
			Preset: p,
		})
	}
	items = append(items,
		MenuItem{Kind: MenuItemHistory, Title: "Round history"},
		MenuItem{Kind: MenuItemQuit, Title: "Quit"},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.choose(m.items[m.cursor])

	case MenuActionHistory:
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// choose acts on a selected item.
func (m MenuModel) choose(item MenuItem) (tea.Model, tea.Cmd) {
	switch item.Kind {
	case MenuItemHistory:
		m.openHistory = true
	case MenuItemQuit:
		m.quitting = true
	default:
		m.selected = &item
	}
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  B A T T L E S H I P  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Hide a fleet, then find it", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the round history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Play         bool
	Preset       config.SizePreset // Empty keeps the configured size
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// GameConfig returns the game configuration for the chosen board.
func (r MenuResult) GameConfig(base config.BattleshipConfig) config.BattleshipConfig {
	if r.Preset != "" {
		config.ApplySizePreset(&base, r.Preset)
	}
	return base
}

// result converts the final menu state.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.openHistory:
		res.WantsHistory = true
	case m.selected != nil:
		res.Play = true
		res.Preset = m.selected.Preset
	default:
		res.Quit = true
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(game config.BattleshipConfig, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(game, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.result(), nil
}
