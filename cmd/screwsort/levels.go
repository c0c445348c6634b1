package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the builtin levels plus any found in the --levels directory.

A level file in the --levels directory with the same ID as a builtin
replaces it.`,
	Run: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-24s  %6s  %5s  %6s\n", maxIDLen, "ID", "Name", "Screws", "Trays", "Boards")
	fmt.Printf("  %-*s  %-24s  %6s  %5s  %6s\n", maxIDLen, "--", "----", "------", "-----", "------")

	for _, l := range lvls {
		fmt.Printf("  %-*s  %-24s  %6d  %5d  %6d\n",
			maxIDLen, l.ID, l.Name, l.TotalScrews(), len(l.Trays), len(l.Parts))
	}

	fmt.Println()
	fmt.Println("Run 'screwsort play <id>' or 'screwsort watch <id>' to run a level.")
}
