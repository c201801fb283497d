package digger

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StateError        GameStateType = "error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Frame        uint64
	SimTicks     uint64
	LevelTicks   uint64
	Level        int // Current level (1-indexed for display)
	LevelID      string
	Score        int
	Board        string // Map text of the current board
	Latched      string // Direction waiting for the next step
	StepInterval int
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.loadErr != nil:
		state = StateError
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Frame:      g.frame,
		SimTicks:   g.simTicks,
		LevelTicks: g.LevelTicks(),
		Level:      g.levelIndex + 1,
		LevelID:    g.currentLevel().ID,
		Latched:    g.latched.String(),
		State:      state,
	}
	if g.sim != nil {
		snap.Score = g.sim.Score
		snap.Board = g.sim.Board.String()
	}
	if g.difficulty != nil {
		snap.StepInterval = g.StepInterval()
	}
	return snap
}
