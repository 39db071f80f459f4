package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
)

var (
	flagSize   string
	flagWidth  int
	flagHeight int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of battleship.

Setup:
  Mouse drag        - Place a boat from press to release
  Click a boat      - Remove it
  Arrows/hjkl       - Move the cursor
  Space/Enter       - Anchor, then place (or remove a boat)
  X/Delete          - Remove the boat under the cursor
  +/- and ]/[       - Add/remove a row or column
  S                 - Start guessing

Playing:
  Click/Space/Enter - Guess a tile
  V                 - Peek at the fleet
  R                 - New round (after the fleet is found)

Always:
  P                 - Dump the board to ~/.battleship/dumps
  Ctrl+S            - Save a screenshot
  Esc/Q             - Quit (Ctrl+C always quits)

Size options:
  small  - 6x6
  normal - 8x8
  large  - 10x10

Explicit --width and --height override the size preset.

Examples:
  battleship play
  battleship play --size small
  battleship play --width 12 --height 6
  battleship play --config ./my-battleship.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSize, "size", "", "Board size preset: small, normal, large")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width (overrides --size)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height (overrides --size)")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg := loadConfig()

	if flagSize != "" {
		preset, err := config.ParseSizePreset(flagSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.ApplySizePreset(&gameCfg, preset)
	}
	config.ApplySize(&gameCfg, flagWidth, flagHeight)

	if err := gameCfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	// Open round storage
	store := openStore()

	game := battleship.New(gameCfg.GameOptions())
	logger.Info("round started", "size", fmt.Sprintf("%dx%d", gameCfg.Board.Width, gameCfg.Board.Height))

	// Run the game
	runErr := tui.Run(game, runtimeConfig(), tui.ModelOptions{
		Store:  store,
		Logger: logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
