package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start battleship with a board size menu",
	Long: `Start battleship in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board.
When you leave a round, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Round history
  Q            - Quit

Examples:
  battleship menu
  battleship menu --fps 60
  battleship menu --db ./rounds.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg := loadConfig()

	logger, closeLog := fileLogger()
	defer closeLog()

	// Open round storage
	store := openStore()

	cfg := runtimeConfig()

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(gameCfg, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the history
		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, "local", cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		roundCfg := menuResult.GameConfig(gameCfg)
		game := battleship.New(roundCfg.GameOptions())
		logger.Info("round started", "size", fmt.Sprintf("%dx%d", roundCfg.Board.Width, roundCfg.Board.Height))

		// Run the game
		if err := tui.Run(game, cfg, tui.ModelOptions{Store: store, Logger: logger}); err != nil {
			logger.Error("game failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
