package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-digger/internal/core"
	"github.com/vovakirdan/tui-digger/internal/games/digger"
	"github.com/vovakirdan/tui-digger/internal/games/digger/levels"
	"github.com/vovakirdan/tui-digger/internal/registry"
	"github.com/vovakirdan/tui-digger/internal/storage"
)

// noticeTicks is how many frames a status notice stays on screen.
const noticeTicks = 180

// LevelReloadMsg carries a level file that changed on disk.
type LevelReloadMsg struct {
	Level levels.Level
	Err   error
}

// levelReloader is implemented by games that can swap the running level.
type levelReloader interface {
	ReloadLevel(lvl levels.Level)
}

// levelEndNotifier is implemented by games that report finished attempts.
type levelEndNotifier interface {
	OnLevelEnd(fn func(digger.LevelResult))
}

// Options tune a single game session.
type Options struct {
	Player    string      // Name stored with scores and runs
	WatchPath string      // Level file to reload on change, empty to disable
	Logger    *log.Logger // Defaults to a discarding logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	logger     *log.Logger

	notice      string
	noticeColor core.Color
	noticeLeft  int

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for the current run end
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = DefaultPlayer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		player:     opts.Player,
		logger:     opts.Logger,
	}

	if n, ok := game.(levelEndNotifier); ok && store != nil {
		n.OnLevelEnd(recordRun(store, opts.Player, opts.Logger))
	}

	return m
}

// recordRun returns a callback that stores each finished level attempt.
func recordRun(store *storage.Store, player string, logger *log.Logger) func(digger.LevelResult) {
	return func(r digger.LevelResult) {
		_, err := store.SaveRun(storage.RunEntry{
			LevelID: r.LevelID,
			Player:  player,
			Score:   r.Score,
			Ticks:   r.Ticks,
			Outcome: storage.Outcome(r.Outcome),
		})
		if err != nil {
			logger.Warn("run not saved", "level", r.LevelID, "error", err)
		}
	}
}

// DefaultPlayer returns the local user name, or "local" when unknown.
func DefaultPlayer() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}
	return "local"
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case LevelReloadMsg:
		return m.handleReload(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the run going; the game re-centers itself on the new
// screen size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleReload swaps in a level that changed on disk.
func (m Model) handleReload(msg LevelReloadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setNotice("Reload failed: "+msg.Err.Error(), core.ColorBrightRed)
		return m, nil
	}

	r, ok := m.game.(levelReloader)
	if !ok {
		return m, nil
	}
	r.ReloadLevel(msg.Level)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.setNotice("Reloaded "+msg.Level.ID, core.ColorGreen)
	return m, nil
}

func (m *Model) setNotice(text string, c core.Color) {
	m.notice = text
	m.noticeColor = c
	m.noticeLeft = noticeTicks
}

// handleTick advances the game by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	if m.noticeLeft > 0 {
		m.noticeLeft--
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore stores the final score of a finished run.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.player, m.gameState.Score); err != nil {
		m.logger.Warn("score not saved", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setNotice("Screenshot failed", core.ColorBrightRed)
		return
	}
	m.setNotice("Saved "+path, core.ColorGreen)
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.noticeLeft > 0 && m.screen.Height() > 0 {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.notice, m.noticeColor)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for the given game and blocks until the
// player quits or asks for the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if opts.WatchPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := levels.Watch(ctx, opts.WatchPath, opts.Logger, func(lvl levels.Level, err error) {
			p.Send(LevelReloadMsg{Level: lvl, Err: err})
		})
		if err != nil {
			return false, err
		}
	}

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
