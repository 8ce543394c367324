package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the dessert tiers",
	Long:  `Shows every dessert in the loaded config with its price and unlock threshold.`,
	Args:  cobra.NoArgs,
	Run:   runTiers,
}

func runTiers(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	table, err := cfg.Table()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tiers := table.Tiers()
	fmt.Println("Dessert tiers:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, t := range tiers {
		if len(t.Name) > maxNameLen {
			maxNameLen = len(t.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %8s  %10s\n", maxNameLen, "Name", "Price", "Unlocks at")
	fmt.Printf("  %-*s  %8s  %10s\n", maxNameLen, "----", "-----", "----------")

	// Print tiers
	for _, t := range tiers {
		fmt.Printf("  %-*s  %8s  %10s\n", maxNameLen, t.Name,
			"$"+humanize.Comma(int64(t.Price)),
			humanize.Comma(int64(t.Threshold)))
	}

	fmt.Println()
	fmt.Println("Run 'dessert play' to open the bakery.")
}
