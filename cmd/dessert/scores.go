package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dessert-clicker/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
	flagScoresID     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the most profitable recorded runs and overall totals.

A run is recorded when a bakery with at least one sale is started over,
quit, or disconnected.

Examples:
  dessert scores
  dessert scores --limit 20
  dessert scores --player alice
  dessert scores --id 5f1c...
  dessert scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs by this player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
	scoresCmd.Flags().StringVar(&flagScoresID, "id", "", "Show a single run by ID")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs deleted.")
		return
	}

	if flagScoresID != "" {
		run, err := store.RunByID(flagScoresID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
			os.Exit(1)
		}
		if run == nil {
			fmt.Fprintf(os.Stderr, "Error: no run with ID %q\n", flagScoresID)
			os.Exit(1)
		}
		printRun(run)
		return
	}

	// Get top runs
	var runs []storage.Run
	if flagScoresPlayer != "" {
		runs, err = store.PlayerRuns(flagScoresPlayer, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Bakeries")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dessert play' and start over or quit to record one!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %8s  %12s  %-18s  %s\n", "Rank", "Player", "Sold", "Revenue", "Dessert", "When")
	fmt.Printf("  %-4s  %-12s  %8s  %12s  %-18s  %s\n", "----", "------", "----", "-------", "-------", "----")

	// Print runs
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %8s  %12s  %-18s  %s\n",
			i+1,
			r.Player,
			humanize.Comma(int64(r.UnitsSold)),
			"$"+humanize.Comma(int64(r.Revenue)),
			r.TopTier,
			humanize.Time(r.CreatedAt),
		)
	}

	// Show totals
	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Runs: %s  Desserts sold: %s  Revenue: $%s\n",
			humanize.Comma(int64(stats.Runs)),
			humanize.Comma(stats.TotalSold),
			humanize.Comma(stats.TotalRevenue),
		)
	}
	if best, err := store.BestRun(); err == nil && best != nil {
		fmt.Printf("Best: $%s by %s (%s)\n", humanize.Comma(int64(best.Revenue)), best.Player, best.TopTier)
	}
}

func printRun(r *storage.Run) {
	fmt.Printf("Run %s\n\n", r.ID)
	fmt.Printf("  Player:   %s\n", r.Player)
	fmt.Printf("  Sold:     %s\n", humanize.Comma(int64(r.UnitsSold)))
	fmt.Printf("  Revenue:  $%s\n", humanize.Comma(int64(r.Revenue)))
	fmt.Printf("  Dessert:  %s\n", r.TopTier)
	fmt.Printf("  Ended by: %s after %s\n", r.EndReason, time.Duration(r.Duration)*time.Second)
	fmt.Printf("  When:     %s (%s)\n", r.CreatedAt.Format("2006-01-02 15:04"), humanize.Time(r.CreatedAt))
}
