package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

// Model is the Bubble Tea model running one battleship game.
// Standalone it quits the program when the player leaves; inside an SSH
// session it hands control back to the session menu instead.
type Model struct {
	game       *battleship.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	player     string
	dataDir    string
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	phase      battleship.Phase
	playStart  time.Time
	inSession  bool
	quitting   bool
	backToMenu bool
}

// ModelOptions carries the collaborators of a game model. All fields are optional.
type ModelOptions struct {
	Store     *storage.Store
	Logger    *log.Logger
	Player    string // Recorded with each round, "local" when empty
	DataDir   string // Root for dumps and screenshots, config.DataDir() when empty
	InSession bool   // Leaving returns to the menu instead of quitting
}

// NewModel creates a Bubble Tea model for the given game and starts a round.
func NewModel(game *battleship.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.DataDir == "" {
		opts.DataDir = config.DataDir()
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     opts.Logger,
		config:     cfg,
		player:     opts.Player,
		dataDir:    opts.DataDir,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gameState:  game.State(),
		phase:      game.Phase(),
		inSession:  opts.InSession,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, hardQuit := m.keyMapper.MapKey(msg)
	switch {
	case hardQuit:
		m.abandonRound()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionQuit:
		return m.leave()

	case action == core.ActionBack:
		// Esc cancels a drag first and only leaves an idle game
		if m.phase == battleship.PhaseSetup && m.game.Snapshot().Anchored {
			m.inputFrame.Set(action)
			return m, nil
		}
		return m.leave()
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// leave ends the game, returning to the menu when running inside a session.
func (m Model) leave() (tea.Model, tea.Cmd) {
	m.abandonRound()
	if m.inSession {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// handleResize keeps the round and only moves it on screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Err != nil {
		m.logger.Debug("step failed", "player", m.player, "error", result.Err)
	}
	if result.Dump != "" {
		m.writeDump(result.Dump)
	}

	phase := m.game.Phase()
	if phase != m.phase {
		m.logger.Debug("phase changed", "player", m.player, "from", m.phase, "to", phase)
		if phase == battleship.PhasePlaying {
			m.playStart = time.Now()
		}
	}
	if result.Finished {
		m.recordRound(storage.OutcomeFound)
	}
	m.phase = phase

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// abandonRound logs a round left before the fleet was found.
func (m *Model) abandonRound() {
	if m.phase == battleship.PhasePlaying {
		m.recordRound(storage.OutcomeAbandoned)
		// Leaving twice must not log twice
		m.phase = battleship.PhaseFinished
	}
}

// recordRound writes the current round to the round log.
func (m *Model) recordRound(outcome storage.Outcome) {
	snap := m.game.Snapshot()
	round := storage.Round{
		Outcome: outcome,
		Width:   snap.Width,
		Height:  snap.Height,
		Boats:   snap.Boats,
		Guesses: snap.Guesses,
		Player:  m.player,
	}
	if !m.playStart.IsZero() {
		round.Duration = time.Since(m.playStart).Round(time.Millisecond)
	}

	m.logger.Info("round over",
		"player", m.player,
		"outcome", outcome,
		"size", fmt.Sprintf("%dx%d", snap.Width, snap.Height),
		"boats", snap.Boats,
		"guesses", snap.Guesses,
		"duration", round.Duration,
	)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRound(round); err != nil {
		m.logger.Warn("could not save round", "player", m.player, "error", err)
	}
}

// writeDump saves a board debug string under the data directory.
func (m *Model) writeDump(dump string) {
	path, err := writeTimestamped(filepath.Join(m.dataDir, "dumps"), "board", dump)
	if err != nil {
		m.logger.Warn("could not write board dump", "error", err)
		return
	}
	m.logger.Info("board dumped", "path", path)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	path, err := writeTimestamped(filepath.Join(m.dataDir, "screenshots"), m.game.ID(), m.screen.String())
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// writeTimestamped writes content to dir/<prefix>_<timestamp>.txt.
func writeTimestamped(dir, prefix, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", prefix, timestamp))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the given game.
func Run(game *battleship.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	opts.InSession = false
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag reports motion while a button is held
	)

	_, err := p.Run()
	return err
}
