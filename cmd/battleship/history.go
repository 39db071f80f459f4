package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var (
	flagLimit  int
	flagPlayer string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the round history",
	Long: `Display the most recent rounds and overall statistics.

Examples:
  battleship history
  battleship history --limit 50
  battleship history --player alice`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of rounds to show")
	historyCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show rounds of this player")
}

// historyWidths are the column widths of the printed round table.
var historyWidths = []int{9, 6, 5, 7, 6, 12, 12}

func runHistory(_ *cobra.Command, _ []string) {
	// Open round storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening round database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var rounds []storage.Round
	if flagPlayer != "" {
		rounds, err = store.PlayerRounds(flagPlayer, flagLimit)
	} else {
		rounds, err = store.RecentRounds(flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Round History")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'battleship play' to log the first round!")
		return
	}

	// Print header
	printRow(tui.HistoryColumns)
	dashes := make([]string, len(tui.HistoryColumns))
	for i, col := range tui.HistoryColumns {
		dashes[i] = strings.Repeat("-", len(col))
	}
	printRow(dashes)

	// Print rounds
	for _, r := range rounds {
		printRow(tui.HistoryRow(r))
	}

	// Show overall stats
	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Rounds: %d  Found: %d  Abandoned: %d\n", stats.Rounds, stats.Found, stats.Abandoned)
	if stats.Found > 0 {
		fmt.Printf("Best: %d guesses  Average: %.1f guesses\n", stats.BestGuesses, stats.AvgGuesses)
	}
}

// printRow prints one padded table row.
func printRow(cells []string) {
	var b strings.Builder
	b.WriteString(" ")
	for i, cell := range cells {
		fmt.Fprintf(&b, " %-*s", historyWidths[i], cell)
	}
	fmt.Println(strings.TrimRight(b.String(), " "))
}
