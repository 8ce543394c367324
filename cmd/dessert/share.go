package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dessert-clicker/internal/share"
)

var (
	flagShareSold    int
	flagShareRevenue int
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share a summary from the command line",
	Long: `Format the share summary for the given totals and send it through the
configured share targets, without opening the bakery.

Examples:
  dessert share --sold 12 --revenue 120
  dessert share --sold 3 --revenue 15 --config ./my-desserts.yaml`,
	Args: cobra.NoArgs,
	Run:  runShare,
}

func init() {
	shareCmd.Flags().IntVar(&flagShareSold, "sold", 0, "Desserts sold")
	shareCmd.Flags().IntVar(&flagShareRevenue, "revenue", 0, "Total revenue")
}

func runShare(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	summary, err := cfg.Summary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	text := summary.Format(flagShareSold, flagShareRevenue)

	sharer, err := localSharer(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println(text)
	switch err := sharer.ShareText(ctx, text); {
	case err == nil:
		fmt.Println(cfg.Share.Shared)
	case errors.Is(err, share.ErrUnavailable):
		fmt.Println(cfg.Share.Unavailable)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
