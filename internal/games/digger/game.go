// Package digger implements the Digger campaign on top of the simulation
// core: frame pacing, input latching, level progression and rendering.
package digger

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-digger/internal/config"
	"github.com/vovakirdan/tui-digger/internal/core"
	dcore "github.com/vovakirdan/tui-digger/internal/games/digger/core"
	"github.com/vovakirdan/tui-digger/internal/games/digger/levels"
	"github.com/vovakirdan/tui-digger/internal/games/digger/replay"
	"github.com/vovakirdan/tui-digger/internal/registry"
)

// GameID is the registry identifier.
const GameID = "digger"

// Recorder receives the replay stream of a run. *replay.Writer satisfies it.
type Recorder interface {
	Write(e replay.Entry) error
}

// LevelOutcome is how an attempt at a level ended.
type LevelOutcome string

const (
	OutcomeCleared   LevelOutcome = "cleared"
	OutcomeDied      LevelOutcome = "died"
	OutcomeAbandoned LevelOutcome = "abandoned"
)

// LevelResult describes one finished attempt at a level.
type LevelResult struct {
	LevelID string
	Score   int
	Ticks   uint64
	Outcome LevelOutcome
}

// Settings chosen on the command line before the game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       string
	levelOverride    []levels.Level
	defaultLogger    = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset by name ("easy", "normal",
// "hard", "fixed"). Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel sets the id of the level a run starts from. Empty means the
// first level.
func SetStartLevel(id string) {
	startLevel = id
}

// SetLevels replaces the built-in campaign with the given levels.
// Nil restores the campaign.
func SetLevels(lvls []levels.Level) {
	levelOverride = lvls
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements the Digger campaign.
type Game struct {
	cfg        config.DiggerConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger
	recorder   Recorder
	onLevelEnd func(LevelResult)

	start      string // Level id a run starts from
	campaign   []levels.Level
	levelIndex int
	startIndex int
	loadErr    error

	sim             *dcore.State
	levelStartScore int
	frame           uint64 // Frames since Reset
	simTicks        uint64 // Simulation steps since Reset, across levels
	stepTicker      int
	latched         dcore.Dir
	lastCollect     uint64 // Frame of the most recent gold pickup

	screenW int
	screenH int

	gameOver     bool
	won          bool
	paused       bool
	levelCleared bool
	bannerTicks  int
}

// New creates a Digger game using the package-level settings.
func New() *Game {
	return &Game{logger: defaultLogger, start: startLevel}
}

// StartAt sets the level id this game's runs start from, overriding the
// package-level setting. Takes effect on the next Reset.
func (g *Game) StartAt(id string) {
	g.start = id
}

// UseLogger replaces this game's logger. Nil discards logs.
func (g *Game) UseLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// SetRecorder attaches a replay recorder. Level starts and simulation steps
// are written to it from the next Reset or level load on.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// OnLevelEnd registers a callback run whenever an attempt at a level ends:
// cleared, died, or abandoned by a mid-level restart.
func (g *Game) OnLevelEnd(fn func(LevelResult)) {
	g.onLevelEnd = fn
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Digger"
}

// Reset initializes/restarts the run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.frame = 0
	g.simTicks = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.loadErr = nil

	g.loadConfig()
	g.loadCampaign()
	if g.loadErr != nil {
		return
	}

	g.levelIndex = g.startIndex
	g.loadLevel(0)
}

func (g *Game) loadConfig() {
	cfg, err := config.LoadDigger(configPath)
	if err != nil {
		g.logger.Warn("using default config", "error", err)
		cfg = config.DefaultDiggerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyDiggerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
}

func (g *Game) loadCampaign() {
	if levelOverride != nil {
		g.campaign = append([]levels.Level(nil), levelOverride...)
	} else {
		lvls, err := levels.Campaign().LoadAll()
		if err != nil {
			g.loadErr = err
			return
		}
		g.campaign = lvls
	}
	if len(g.campaign) == 0 {
		g.loadErr = levels.ErrNotFound
		return
	}

	g.startIndex = 0
	if g.start != "" {
		for i, lvl := range g.campaign {
			if lvl.ID == g.start {
				g.startIndex = i
				break
			}
		}
	}
}

// loadLevel starts the current level with the given carried score.
func (g *Game) loadLevel(score int) {
	lvl := g.campaign[g.levelIndex]
	sim, err := lvl.NewState()
	if err != nil {
		g.loadErr = err
		g.logger.Error("level failed to load", "id", lvl.ID, "error", err)
		return
	}
	sim.Score = score

	g.sim = sim
	g.levelStartScore = score
	g.stepTicker = 0
	g.latched = dcore.DirNone
	g.levelCleared = false
	g.bannerTicks = 0
	g.loadErr = nil

	g.logger.Debug("level start", "id", lvl.ID, "index", g.levelIndex, "score", score)
	g.record(replay.LevelEntry(lvl.ID, lvl.Name, lvl.Map, score))
}

// ReloadLevel replaces the current level definition and restarts it.
// Used when a watched level file changes on disk.
func (g *Game) ReloadLevel(lvl levels.Level) {
	if len(g.campaign) == 0 {
		g.campaign = []levels.Level{lvl}
		g.levelIndex = 0
	} else {
		g.campaign[g.levelIndex] = lvl
	}
	g.gameOver = false
	g.won = false
	g.loadLevel(g.levelStartScore)
}

// Step advances the game by one frame. The simulation advances once every
// step interval frames.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.frame++

	if input.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.loadErr != nil || g.gameOver || g.won || g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.bannerTicks++
		if g.bannerTicks >= g.cfg.Campaign.BannerTicks {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if d := directionFrom(input); d != dcore.DirNone {
		g.latched = d
	}

	g.stepTicker++
	if g.stepTicker < g.StepInterval() {
		return core.StepResult{State: g.State()}
	}
	g.stepTicker = 0
	g.stepSimulation()

	return core.StepResult{State: g.State(), Simulated: true}
}

// restart replays the current level, or the whole run once it has ended.
func (g *Game) restart() {
	if g.gameOver || g.won || g.loadErr != nil {
		g.Reset(core.RuntimeConfig{ScreenW: g.screenW, ScreenH: g.screenH})
		return
	}
	g.paused = false
	if !g.levelCleared && g.LevelTicks() > 0 {
		g.endLevel(OutcomeAbandoned)
	}
	g.loadLevel(g.levelStartScore)
}

func (g *Game) stepSimulation() {
	pressed := g.latched
	g.sim.Pressed = pressed
	res := g.sim.Step()
	g.latched = dcore.DirNone
	g.simTicks++
	g.record(replay.StepEntry(g.sim, pressed))

	for _, e := range res.Events {
		switch e.Kind {
		case dcore.EventCollected:
			g.lastCollect = g.frame
		case dcore.EventRemoved:
			if e.Who == dcore.KindPlayer {
				g.logger.Debug("player removed", "by", e.By, "x", e.X, "y", e.Y, "tick", res.Tick)
			}
		}
	}

	switch {
	case !g.sim.PlayerAlive():
		g.gameOver = true
		g.endLevel(OutcomeDied)
		g.logger.Info("game over", "level", g.currentLevel().ID, "score", g.sim.Score)
	case g.sim.Settled():
		g.levelCleared = true
		g.bannerTicks = 0
		g.endLevel(OutcomeCleared)
		g.logger.Info("level cleared", "level", g.currentLevel().ID, "score", g.sim.Score)
	}
}

// advanceLevel moves to the next level, or ends the run as won.
func (g *Game) advanceLevel() {
	score := g.sim.Score
	if g.levelIndex+1 >= len(g.campaign) {
		g.levelCleared = false
		g.won = true
		g.logger.Info("campaign complete", "score", score)
		return
	}
	g.levelIndex++
	g.loadLevel(score)
}

func (g *Game) endLevel(outcome LevelOutcome) {
	if g.onLevelEnd == nil || g.sim == nil {
		return
	}
	g.onLevelEnd(LevelResult{
		LevelID: g.currentLevel().ID,
		Score:   g.sim.Score,
		Ticks:   g.sim.Tick,
		Outcome: outcome,
	})
}

func (g *Game) record(e replay.Entry) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.Write(e); err != nil {
		g.logger.Warn("recording stopped", "error", err)
		g.recorder = nil
	}
}

// StepInterval returns the current number of frames between simulation steps.
func (g *Game) StepInterval() int {
	score := 0
	if g.sim != nil {
		score = g.sim.Score
	}
	return g.difficulty.StepInterval(
		g.cfg.Pacing.StepEveryTicks,
		g.cfg.Pacing.MinStepEveryTicks,
		score,
		int(g.simTicks),
	)
}

// directionFrom picks the direction for this frame. The most recent
// directional action wins when several arrive together.
func directionFrom(input core.InputFrame) dcore.Dir {
	if d := dirForAction(input.Last); d != dcore.DirNone && input.Has(input.Last) {
		return d
	}
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if input.Has(a) {
			return dirForAction(a)
		}
	}
	return dcore.DirNone
}

func dirForAction(a core.Action) dcore.Dir {
	switch a {
	case core.ActionUp:
		return dcore.DirUp
	case core.ActionDown:
		return dcore.DirDown
	case core.ActionLeft:
		return dcore.DirLeft
	case core.ActionRight:
		return dcore.DirRight
	default:
		return dcore.DirNone
	}
}

func (g *Game) currentLevel() levels.Level {
	if g.levelIndex < 0 || g.levelIndex >= len(g.campaign) {
		return levels.Level{}
	}
	return g.campaign[g.levelIndex]
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.sim != nil {
		score = g.sim.Score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused,
		Level:    g.currentLevel().ID,
	}
}

// LevelTicks returns the simulation ticks spent on the current level.
func (g *Game) LevelTicks() uint64 {
	if g.sim == nil {
		return 0
	}
	return g.sim.Tick
}
