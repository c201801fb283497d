package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-digger/internal/games/digger/core"
)

// Outcome of the last level attempt in a replay.
type Outcome string

const (
	OutcomeCleared    Outcome = "cleared"
	OutcomeDead       Outcome = "dead"
	OutcomeIncomplete Outcome = "incomplete"
)

// ErrDiverged is returned when playback does not reproduce a recorded step.
var ErrDiverged = errors.New("replay: playback diverged")

// Result summarizes a playback.
type Result struct {
	Levels  int // Level attempts started
	Cleared int // Level attempts that ended settled with the player alive
	Steps   int
	Score   int
	LevelID string
	Board   string
	Outcome Outcome
}

// Source yields replay entries; *Reader satisfies it.
type Source interface {
	Next() (Entry, error)
}

// Play re-runs a recorded stream and verifies each step against its
// recorded score and digest.
func Play(src Source, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default().WithPrefix("digger-replay")
	}

	var res Result
	var s *core.State

	finish := func() {
		if s == nil {
			return
		}
		res.Score = s.Score
		res.Board = s.Board.String()
		switch {
		case !s.PlayerAlive():
			res.Outcome = OutcomeDead
		case s.Settled():
			res.Outcome = OutcomeCleared
			res.Cleared++
		default:
			res.Outcome = OutcomeIncomplete
		}
	}

	for {
		e, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		switch e.Type {
		case TypeLevel:
			if e.Version > FormatVersion {
				return res, fmt.Errorf("replay: unsupported version %d", e.Version)
			}
			finish()
			b, err := core.ParseMapText(e.Map)
			if err != nil {
				return res, fmt.Errorf("replay: level %s: %w", e.LevelID, err)
			}
			s = core.NewState(b)
			s.Score = e.Score
			res.Levels++
			res.LevelID = e.LevelID
			logger.Debug("level start", "id", e.LevelID, "score", e.Score)

		case TypeStep:
			if s == nil {
				return res, fmt.Errorf("replay: step before any level")
			}
			pressed := core.ParseDir(e.Pressed)
			s.Pressed = pressed
			s.Step()
			res.Steps++

			got := StepEntry(s, pressed)
			if got.Tick != e.Tick || got.Score != e.Score || got.Digest != e.Digest {
				finish()
				return res, fmt.Errorf("%w at level %s tick %d: score %d/%d digest %s/%s",
					ErrDiverged, res.LevelID, e.Tick, got.Score, e.Score, got.Digest, e.Digest)
			}

		default:
			logger.Warn("skipping unknown entry", "type", e.Type)
		}
	}

	finish()
	if res.Levels == 0 {
		return res, fmt.Errorf("replay: no level entries")
	}
	logger.Info("replay finished", "levels", res.Levels, "steps", res.Steps, "score", res.Score, "outcome", res.Outcome)
	return res, nil
}
