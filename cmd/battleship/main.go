// battleship is a single-player battleship game for the terminal: hide a
// fleet on a resizable sea, then find it again.
//
// Usage:
//
//	battleship play          - Play a round
//	battleship menu          - Start menu to pick a board size interactively
//	battleship serve         - Start SSH server for remote play
//	battleship history       - Show the round history
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--db <path>          - Set database path (default: ~/.battleship/rounds.db)
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log file for local play (default: ~/.battleship/battleship.log)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battleship",
	Short: "Battleship - hide a fleet, then find it",
	Long: `Battleship is a single-player terminal game.

Drag boats onto a sea you can grow and shrink, start the round, and
guess tiles until every boat is found.

Available commands:
  play     - Play a round directly
  menu     - Interactive board size menu
  serve    - Start SSH server for remote play
  history  - View the round history

Examples:
  battleship play
  battleship play --size large
  battleship menu
  battleship serve --ssh :2222
  battleship history --limit 50`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.battleship/rounds.db", "Path to round history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom battleship config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.battleship/battleship.log", "Log file for local play")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// loadConfig loads the game config, exiting on a broken custom file.
func loadConfig() config.BattleshipConfig {
	cfg, err := config.LoadBattleship(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the round log. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open round database: %v\n", err)
		return nil
	}
	return store
}

// fileLogger creates the local play logger. The terminal is busy drawing the
// game, so logs go to the log file, or nowhere when it cannot be opened.
func fileLogger() (logger *log.Logger, closeLog func()) {
	f, err := tui.OpenLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger, err = tui.NewLogger(f, "battleship", flagLogLevel)
	if err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, func() { f.Close() }
}
