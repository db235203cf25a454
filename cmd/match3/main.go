// match3 is a terminal match-3 game built on a deterministic rules engine.
//
// Usage:
//
//	match3 list                - List available board variants
//	match3 play <variant>      - Play a variant
//	match3 menu                - Pick variants interactively
//	match3 serve               - Start SSH server for remote play
//	match3 scores <variant>    - Show high scores and statistics
//	match3 simulate            - Run bot games and report score statistics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/scores.db)
//	--config <path>       - Load a custom match3.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Mirror logs to a rotated file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/logging"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger    = log.New(io.Discard)
	logCloser io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap tiles and chain cascades in your terminal",
	Long: `Match-3 is a terminal puzzle game: swap two neighbouring tiles to line
up three or more of a kind, then watch the board collapse and refill.

Available commands:
  list      - Show all board variants
  play      - Play a specific variant directly
  menu      - Interactive variant picker
  serve     - Start SSH server for remote play
  scores    - View high scores and statistics
  simulate  - Let a bot play many games and report the score distribution

Examples:
  match3 list
  match3 play classic
  match3 play mini --difficulty easy
  match3 menu
  match3 serve --ssh :2222
  match3 simulate --games 1000 --variant grand`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Mirror logs to a rotated file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup loads the configuration, applies the difficulty preset and installs
// the logger shared by every command. Interactive commands own the terminal,
// so their logs only go to --log-file.
func setup(cmd *cobra.Command, _ []string) error {
	var console io.Writer = os.Stderr
	switch cmd.Name() {
	case "play", "menu":
		console = io.Discard
	}

	opts := logging.DefaultOptions()
	opts.Level = flagLogLevel
	opts.FilePath = flagLogFile
	logger, logCloser = logging.New(console, opts)

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyMatch3Preset(&cfg, preset)

	match3.Configure(cfg)
	match3.SetLogger(logger)
	logger.Debug("configuration loaded", "variants", len(cfg.Variants), "difficulty", preset)
	return nil
}
