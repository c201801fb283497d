package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-digger/internal/games/digger"
	"github.com/vovakirdan/tui-digger/internal/platform/tui"
	"github.com/vovakirdan/tui-digger/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a starting level from a menu",
	Long: `Start Digger in interactive menu mode.

Use arrow keys or j/k to choose a level and Enter to play from it.
Quitting a game brings you back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play from the selected level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  digger menu
  digger menu --fps 30
  digger menu --levels ./levels`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	lvls, err := configureGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer closeStore(store)

	cfg := terminalConfig()

	for {
		res, err := tui.RunMenu(lvls, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		if res.Quit {
			return
		}

		if res.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, lvls, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		digger.SetStartLevel(res.LevelID)
		game, err := registry.Create(digger.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			return
		}

		_, err = tui.Run(game, store, cfg, tui.Options{
			Player: tui.DefaultPlayer(),
			Logger: screenLogger(),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		// Back to the menu whether the game ended by quit or by B.
	}
}
