package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-digger/internal/core"
	"github.com/vovakirdan/tui-digger/internal/games/digger"
	"github.com/vovakirdan/tui-digger/internal/games/digger/levels"
	"github.com/vovakirdan/tui-digger/internal/storage"
)

const fastConfig = `pacing:
  step_every_ticks: 1
  min_step_every_ticks: 1
display:
  show_hud: true
campaign:
  banner_ticks: 2
difficulty:
  enabled: false
`

var testCfg = core.RuntimeConfig{ScreenW: 50, ScreenH: 12, TickRate: 60, Seed: 1}

// newTestModel builds a model over a one-level campaign and a fresh store.
func newTestModel(t *testing.T, maps ...string) (Model, *digger.Game, *storage.Store) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "digger.yaml")
	if err := os.WriteFile(cfgPath, []byte(fastConfig), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	digger.SetConfigPath(cfgPath)

	var lvls []levels.Level
	for i, m := range maps {
		id := string(rune('a' + i))
		lvls = append(lvls, levels.Level{ID: id, Name: id, Map: m})
	}
	digger.SetLevels(lvls)
	t.Cleanup(func() {
		digger.SetConfigPath("")
		digger.SetLevels(nil)
	})

	store, err := storage.Open(filepath.Join(dir, "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game := digger.New()
	m := NewModel(game, store, testCfg, Options{Player: "ann"})
	m.Init()
	return m, game, store
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelSavesScoreAndRunsOnce(t *testing.T) {
	m, game, store := newTestModel(t, "PG")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 10; i++ {
		m = send(t, m, TickMsg{})
	}
	if !game.State().Won {
		t.Fatalf("expected the run to be won, got %+v", game.State())
	}

	scores, err := store.TopScores(digger.GameID, 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Player != "ann" || scores[0].Score != 10 {
		t.Errorf("unexpected scores %+v", scores)
	}

	runs, err := store.FastestClears("a", 10)
	if err != nil {
		t.Fatalf("FastestClears failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Ticks != 1 || runs[0].Player != "ann" {
		t.Errorf("unexpected runs %+v", runs)
	}
}

func TestModelReloadsLevel(t *testing.T) {
	m, game, _ := newTestModel(t, "PG")

	m = send(t, m, LevelReloadMsg{Level: levels.Level{ID: "z", Name: "Z", Map: "P.G"}})
	if snap := game.Snapshot(); snap.LevelID != "z" || snap.Board != "P.G" {
		t.Errorf("level not reloaded: %+v", snap)
	}
	if !strings.Contains(m.View(), "Reloaded z") {
		t.Error("expected a reload notice")
	}

	m = send(t, m, LevelReloadMsg{Err: errors.New("bad map")})
	if !strings.Contains(m.View(), "Reload failed: bad map") {
		t.Error("expected a failure notice")
	}
	if snap := game.Snapshot(); snap.LevelID != "z" {
		t.Errorf("failed reload should keep the level, got %+v", snap)
	}
}

func TestModelBackToMenuOnlyWhenPaused(t *testing.T) {
	m, _, _ := newTestModel(t, "P.G")

	m = send(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = send(t, m, TickMsg{})
	m = send(t, m, runeKey("p"))
	m = send(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatalf("expected paused state, got %+v", m.gameState)
	}

	m = send(t, m, runeKey("b"))
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t, "PG")

	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, game, _ := newTestModel(t, "P.G")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, TickMsg{})
	before := game.Snapshot()

	m = send(t, m, tea.WindowSizeMsg{Width: 70, Height: 20})
	if after := game.Snapshot(); after.Board != before.Board || after.SimTicks != before.SimTicks {
		t.Errorf("resize changed the run: %+v -> %+v", before, after)
	}
	if m.screen.Width() != 70 || m.screen.Height() != 20 {
		t.Errorf("screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, '*', core.ColorBrightYellow)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "*") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestMenuSelectsLevel(t *testing.T) {
	lvls := []levels.Level{{ID: "a", Name: "First"}, {ID: "b", Name: "Second"}}
	m := NewMenuModel(lvls, nil, testCfg)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)

	if cmd == nil {
		t.Error("selecting should end the menu")
	}
	res := resultFrom(menu)
	if res.Quit || res.LevelID != "b" {
		t.Errorf("unexpected result %+v", res)
	}
	if !strings.Contains(NewMenuModel(lvls, nil, testCfg).View(), "Second") {
		t.Error("menu should list level names")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	lvls := []levels.Level{{ID: "a", Name: "First"}}

	next, _ := NewMenuModel(lvls, nil, testCfg).Update(tea.KeyMsg{Type: tea.KeyTab})
	if res := resultFrom(next.(MenuModel)); !res.WantsScoreboard {
		t.Errorf("tab should open the scoreboard, got %+v", res)
	}

	next, _ = NewMenuModel(lvls, nil, testCfg).Update(runeKey("q"))
	if res := resultFrom(next.(MenuModel)); !res.Quit {
		t.Errorf("q should quit, got %+v", res)
	}
}

func TestStatsLabel(t *testing.T) {
	tests := []struct {
		stats *storage.LevelStats
		want  string
	}{
		{nil, "new"},
		{&storage.LevelStats{}, "new"},
		{&storage.LevelStats{Attempts: 3}, "3 tries"},
		{&storage.LevelStats{Attempts: 4, Clears: 2, BestTicks: 17}, "cleared 2/4, best 17 steps"},
	}
	for _, tc := range tests {
		if got := statsLabel(tc.stats); got != tc.want {
			t.Errorf("statsLabel(%+v) = %q, expected %q", tc.stats, got, tc.want)
		}
	}
}

func TestScoreboardPages(t *testing.T) {
	_, _, store := newTestModel(t, "PG")
	if _, err := store.SaveScore(digger.GameID, "ann", 40); err != nil {
		t.Fatalf("SaveScore failed: %v", err)
	}
	if _, err := store.SaveRun(storage.RunEntry{LevelID: "a", Player: "bob", Score: 10, Ticks: 7, Outcome: storage.OutcomeCleared}); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	lvls := []levels.Level{{ID: "a", Name: "First"}}
	sb := NewScoreboardModel(store, lvls, 100, 30)
	if len(sb.rows) != 1 || sb.rows[0][1] != "ann" {
		t.Fatalf("high score page rows = %v", sb.rows)
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if sb.current().LevelID != "a" {
		t.Fatalf("expected level page, got %+v", sb.current())
	}
	if len(sb.rows) != 1 || sb.rows[0][1] != "bob" || sb.rows[0][2] != "7" {
		t.Errorf("level page rows = %v", sb.rows)
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	if next.(ScoreboardModel).current().LevelID != "" {
		t.Error("pages should wrap around")
	}
}
