package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vforge/screwsort/internal/platform/tui"
	"github.com/vforge/screwsort/internal/storage"
)

var flagStatsTUI bool

var statsCmd = &cobra.Command{
	Use:   "stats [level]",
	Short: "Show recorded session results",
	Long: `Without an argument, prints the per-level aggregates: plays, wins,
stuck runs and the fastest winning run. With a level ID, prints that
level's recent sessions.

Examples:
  screwsort stats
  screwsort stats 001-intro
  screwsort stats --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Browse sessions interactively")
}

func runStats(cmd *cobra.Command, args []string) {
	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsTUI {
		lvls, err := levelLoader().LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}

		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = h
		}

		if err := tui.RunStats(store, lvls, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 1 {
		printLevelSessions(store, args[0])
		return
	}
	printAggregates(store)
}

// printLevelSessions prints the recent session history of one level.
func printLevelSessions(store *storage.Store, levelID string) {
	sessions, err := store.SessionsForLevel(levelID, 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sessions - %s\n", levelID)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'screwsort play %s' to record the first one.\n", levelID)
		return
	}

	fmt.Printf("  %-8s  %-7s  %-7s  %-12s  %s\n", "Outcome", "Screws", "Ticks", "Seed", "Date")
	fmt.Printf("  %-8s  %-7s  %-7s  %-12s  %s\n", "-------", "------", "-----", "----", "----")

	for _, s := range sessions {
		screws := fmt.Sprintf("%d/%d", s.ScrewsRemoved, s.ScrewsTotal)
		dateStr := s.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-8s  %-7s  %-7d  %-12d  %s\n", s.Outcome, screws, s.DurationTicks, s.Seed, dateStr)
	}
}

// printAggregates prints the per-level summary table.
func printAggregates(store *storage.Store) {
	all, err := store.GetAllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'screwsort play <level>' to record the first one.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	maxIDLen := 5 // "Level" header
	for _, id := range ids {
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}

	fmt.Printf("  %-*s  %5s  %4s  %5s  %10s  %s\n", maxIDLen, "Level", "Plays", "Wins", "Stuck", "Best ticks", "Last played")
	fmt.Printf("  %-*s  %5s  %4s  %5s  %10s  %s\n", maxIDLen, "-----", "-----", "----", "-----", "----------", "-----------")

	for _, id := range ids {
		ls := all[id]
		best := "-"
		if ls.BestTicks > 0 {
			best = fmt.Sprintf("%d", ls.BestTicks)
		}
		fmt.Printf("  %-*s  %5d  %4d  %5d  %10s  %s\n",
			maxIDLen, id, ls.Plays, ls.Wins, ls.Stucks, best, ls.LastPlayed.Format("2006-01-02 15:04"))
	}
}
