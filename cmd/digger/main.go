// digger is a terminal digging game: tunnel through the earth, collect
// gold, drop sacks on monsters.
//
// Usage:
//
//	digger play [level]      - Play the campaign, a campaign level, or a level file
//	digger menu              - Pick a starting level interactively
//	digger levels [dir]      - List levels with your attempt stats
//	digger scores [level]    - Show high scores or a level's fastest clears
//	digger serve             - Start SSH server for remote play
//	digger replay <file>     - Re-run a recorded game headless
//	digger validate <file>   - Check level files
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-digger/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	logger  = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "digger",
	Short: "Digger - dig for gold in your terminal",
	Long: `Digger is a terminal grid game. Tunnel through the earth, collect
every piece of gold and stay away from the monsters. Sacks fall when the
ground under them is dug away and turn into gold when they land.

Available commands:
  play      - Play the campaign or a single level
  menu      - Interactive level picker
  levels    - List levels
  scores    - View high scores and fastest clears
  serve     - Start SSH server for remote play
  replay    - Verify and summarize a recorded game
  validate  - Check level files

Examples:
  digger play
  digger play 02-sacks
  digger play ./my-level.yaml --watch
  digger menu
  digger serve --ssh :2222
  digger replay run.jsonl.zst`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return nil
}

func closeLogFile() {
	if logFile != nil {
		//nolint:errcheck // Exiting anyway
		logFile.Close()
	}
}

// screenLogger returns the logger for commands that take over the terminal.
// Without --log-file, logs would draw over the game, so they are dropped.
func screenLogger() *log.Logger {
	if logFile == nil {
		return log.New(io.Discard)
	}
	return logger
}

// openStore opens the scores database, continuing without one on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		//nolint:errcheck // Best-effort close on exit
		store.Close()
	}
}
