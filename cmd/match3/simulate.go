package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagVariant  string
	flagGames    int
	flagSwaps    int
	flagWorkers  int
	flagProgress bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let a bot play many games and report score statistics",
	Long: `Play games headlessly with a bot that picks a random valid swap each turn.
Every game checks that the board stays full and stable after each turn.
Results only depend on --seed, not on the number of workers.

Examples:
  match3 simulate
  match3 simulate --variant grand --games 500 --swaps 100
  match3 simulate --seed 7 --workers 1 --progress=false`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagVariant, "variant", "classic", "Variant to simulate")
	simulateCmd.Flags().IntVar(&flagGames, "games", 1000, "Number of games")
	simulateCmd.Flags().IntVar(&flagSwaps, "swaps", 50, "Maximum swaps per game")
	simulateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	simulateCmd.Flags().BoolVar(&flagProgress, "progress", true, "Show a progress bar on stderr")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	settings := match3.Settings()
	variant, ok := settings.Variant(flagVariant)
	if !ok {
		return fmt.Errorf("unknown variant %q, run 'match3 list' to see available variants", flagVariant)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var progress io.Writer = io.Discard
	if flagProgress {
		progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := sim.Run(ctx, sim.Options{
		Engine:   match3.EngineConfig(settings, variant, seed),
		Games:    flagGames,
		MaxSwaps: flagSwaps,
		Workers:  flagWorkers,
		Seed:     seed,
		Progress: progress,
		Logger:   logger.With("variant", variant.ID),
	})
	if err != nil {
		return err
	}
	return rep.Write(os.Stdout)
}
