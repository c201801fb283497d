package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-digger/internal/core"
	"github.com/vovakirdan/tui-digger/internal/games/digger"
	"github.com/vovakirdan/tui-digger/internal/games/digger/levels"
	"github.com/vovakirdan/tui-digger/internal/games/digger/replay"
	"github.com/vovakirdan/tui-digger/internal/platform/tui"
	"github.com/vovakirdan/tui-digger/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagWatch      bool
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play Digger",
	Long: `Start playing the campaign.

With a level argument the run starts there: either a campaign level id
(see 'digger levels') or the path to a level file. A level file is played
on its own.

Controls:
  Arrows/WASD  - Dig
  P/Esc        - Pause
  R            - Restart the level (the whole run after game over)
  B            - Back to the menu (while paused or after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow start, speeds up gently
  normal - Default pace, speeds up as you score
  hard   - Fast start
  fixed  - Never speeds up

Examples:
  digger play
  digger play 03-monsters
  digger play ./levels/mine.yaml --watch
  digger play --levels ./levels
  digger play --difficulty hard --record run.jsonl.zst`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().StringVar(&flagLevelsDir, "levels", "", "Play the levels in this directory instead of the campaign")
	}
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level file when it changes on disk")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the run to a replay file")
}

// configureGame applies the flags shared by play and menu. It returns the
// levels the run will use.
func configureGame() ([]levels.Level, error) {
	digger.SetConfigPath(flagConfig)
	digger.SetDifficultyPreset(flagDifficulty)
	digger.SetLogger(screenLogger())

	if flagLevelsDir == "" {
		digger.SetLevels(nil)
		return levels.Campaign().LoadAll()
	}

	lvls, err := levels.NewLoader(flagLevelsDir).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no valid levels in %s", flagLevelsDir)
	}
	digger.SetLevels(lvls)
	return lvls, nil
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func runPlay(_ *cobra.Command, args []string) {
	if _, err := configureGame(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	watchPath := ""
	digger.SetStartLevel("")
	if len(args) == 1 {
		ref := args[0]
		var lvl levels.Level
		var err error
		if flagLevelsDir != "" && !isFile(ref) {
			lvl, err = levels.NewLoader(flagLevelsDir).LoadByID(ref)
		} else {
			lvl, err = levels.Resolve(ref)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, levels.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(os.Stderr, "Run 'digger levels' to see available levels.")
			}
			os.Exit(1)
		}

		if isFile(ref) {
			digger.SetLevels([]levels.Level{lvl})
			if flagWatch {
				watchPath = ref
			}
		} else {
			digger.SetStartLevel(lvl.ID)
		}
	}
	if flagWatch && watchPath == "" {
		fmt.Fprintln(os.Stderr, "Warning: --watch needs a level file argument, ignoring it")
	}

	game, err := registry.Create(digger.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var rec *replay.Writer
	if flagRecord != "" {
		rec, err = replay.Create(flagRecord)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		game.(*digger.Game).SetRecorder(rec)
	}

	store := openStore()

	_, runErr := tui.Run(game, store, terminalConfig(), tui.Options{
		Player:    tui.DefaultPlayer(),
		WatchPath: watchPath,
		Logger:    screenLogger(),
	})

	closeStore(store)
	if rec != nil {
		if err := rec.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error finishing recording: %v\n", err)
		} else {
			fmt.Printf("Recorded to %s\n", flagRecord)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
