package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vforge/screwsort/internal/puzzle"
	"github.com/vforge/screwsort/internal/sim"
	"github.com/vforge/screwsort/internal/storage"
)

var (
	flagStrategy string
	flagMaxTicks int
	flagRuns     int
	flagVerbose  bool
	flagNoSave   bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Run a level headlessly and print the result",
	Long: `Run the autoplayer on a level without a UI and print a one-line
verdict per run. Results are recorded in the sessions database unless
--no-save is given.

With --runs N the level is played N times; run i uses seed+i so the
batch is reproducible from the base seed.

Examples:
  screwsort play 001-intro
  screwsort play 003-carousel --strategy random --seed 7
  screwsort play 004-squeeze --runs 100 --strategy random`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Autoplay strategy (eager, random); overrides config")
	playCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Tick budget per run; overrides config")
	playCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs")
	playCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log engine events")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results")
}

func runPlay(cmd *cobra.Command, args []string) {
	lvl, err := levelLoader().LoadByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'screwsort levels' to see available levels.")
		os.Exit(1)
	}

	cfg := loadConfig()
	if flagStrategy != "" {
		cfg.Autoplay.Strategy = flagStrategy
	}
	if flagMaxTicks > 0 {
		cfg.Autoplay.MaxTicks = flagMaxTicks
	}

	var logger *log.Logger
	if flagVerbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
			Level:           log.DebugLevel,
		})
	}

	var store *storage.Store
	if !flagNoSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	wins := 0
	for i := 0; i < flagRuns; i++ {
		res, err := sim.RunLevel(lvl, cfg, seed+int64(i), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(sim.Describe(res))
		if res.Outcome == puzzle.PhaseWon {
			wins++
		}

		if store != nil {
			if _, err := store.SaveSession(sessionRecord(res)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save session: %v\n", err)
			}
		}
	}

	if flagRuns > 1 {
		fmt.Println()
		fmt.Printf("%d/%d runs won (strategy %s, base seed %d)\n", wins, flagRuns, cfg.Autoplay.Strategy, seed)
	}
}

// sessionRecord converts a run result to its storage form.
func sessionRecord(res sim.Result) storage.SessionRecord {
	outcome := storage.OutcomeAborted
	switch res.Outcome {
	case puzzle.PhaseWon:
		outcome = storage.OutcomeWon
	case puzzle.PhaseStuck:
		outcome = storage.OutcomeStuck
	}

	return storage.SessionRecord{
		LevelID:       res.LevelID,
		Outcome:       outcome,
		ScrewsRemoved: res.RemovedScrews,
		ScrewsTotal:   res.TotalScrews,
		Transfers:     res.Transfers,
		Advances:      res.Advances,
		DurationTicks: int64(res.Ticks),
		Seed:          res.Seed,
	}
}
