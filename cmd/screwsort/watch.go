package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vforge/screwsort/internal/platform/tui"
)

var flagFPS int

var watchCmd = &cobra.Command{
	Use:   "watch [level]",
	Short: "Watch the autoplayer solve levels in the terminal",
	Long: `Watch the autoplayer work through a level tick by tick.

Without an argument you get a level picker; selecting a level starts
the watch screen and Esc returns to the picker. With a level ID the
watch screen opens directly.

Controls:
  Space        - Pause/resume
  R            - Restart with a fresh seed
  +/-          - Speed up / slow down
  Esc/B        - Back to picker
  Q            - Quit

Examples:
  screwsort watch
  screwsort watch 002-layers
  screwsort watch 003-carousel --strategy random --fps 60`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagFPS, "fps", 0, "Tick rate; overrides config")
	watchCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Autoplay strategy (eager, random); overrides config")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagFPS > 0 {
		cfg.UI.TickRate = flagFPS
	}
	if flagStrategy != "" {
		cfg.Autoplay.Strategy = flagStrategy
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	// Terminal size for the initial layout; resizes arrive as messages.
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	if len(args) == 1 {
		lvl, err := levelLoader().LoadByID(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'screwsort levels' to see available levels.")
			os.Exit(1)
		}
		if err := tui.RunWatch(lvl, cfg, store, flagSeed, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	lvls, err := levelLoader().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if err := tui.RunSession(store, cfg, lvls, width, height, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
