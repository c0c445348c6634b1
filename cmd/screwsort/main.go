// screwsort is a terminal sandbox for the screw-sorting puzzle engine.
//
// Usage:
//
//	screwsort levels            - List available levels
//	screwsort play <level>      - Run a level headlessly and print the result
//	screwsort watch [level]     - Watch the autoplayer solve levels in the TUI
//	screwsort serve             - Start SSH server for remote watching
//	screwsort stats [level]     - Show recorded session results
//
// Global flags:
//
//	--config <path>  - Custom config file
//	--levels <dir>   - Extra directory of level files
//	--seed <value>   - RNG seed for the autoplayer (0 = time-based)
//	--db <path>      - Sessions database path (default: ~/.screwsort/sessions.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vforge/screwsort/internal/config"
	"github.com/vforge/screwsort/internal/levels"
	"github.com/vforge/screwsort/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagSeed      int64
	flagDBPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "screwsort",
	Short: "Screw-sorting puzzle engine and autoplayer",
	Long: `screwsort drives a screw-sorting puzzle: screws come off stacked
boards into color-matched trays on a rotating carousel, with a small
overflow buffer in between.

Available commands:
  levels   - Show all available levels
  play     - Run a level headlessly and print the result
  watch    - Watch the autoplayer in the terminal
  serve    - Start SSH server for remote watching
  stats    - View recorded session results

Examples:
  screwsort levels
  screwsort play 001-intro
  screwsort play 003-carousel --seed 7 --strategy random
  screwsort watch
  screwsort serve --ssh :2222
  screwsort stats 001-intro`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Extra directory of level files")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.screwsort/sessions.db", "Path to sessions database")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig loads the app config, falling back to defaults with a
// warning when no file could be read.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// levelLoader returns the loader over builtins plus the --levels dir.
func levelLoader() *levels.Loader {
	return levels.NewLoader(flagLevelsDir)
}

// openStore opens the sessions database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		return nil
	}
	return store
}
