// Package replay records Digger runs as zstd-compressed JSON lines and
// plays them back headless.
//
// A replay is a sequence of entries. A level entry starts (or restarts) a
// level from its inline map; each following step entry carries the
// direction pressed for one simulation tick plus the score and state digest
// observed after it, so playback can verify determinism.
package replay

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/vovakirdan/tui-digger/internal/games/digger/core"
)

// FormatVersion is written into every level entry.
const FormatVersion = 1

// Entry types.
const (
	TypeLevel = "level"
	TypeStep  = "step"
)

// Entry is one line of a replay file.
type Entry struct {
	Type string `json:"type"`

	// Level entries
	Version int    `json:"version,omitempty"`
	LevelID string `json:"level_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Map     string `json:"map,omitempty"`

	// Step entries
	Tick    uint64 `json:"tick,omitempty"`
	Pressed string `json:"pressed,omitempty"`
	Digest  string `json:"digest,omitempty"`

	// Score at level start, or after the step
	Score int `json:"score"`
}

// LevelEntry records the start of a level attempt.
func LevelEntry(id, name, mapText string, score int) Entry {
	return Entry{
		Type:    TypeLevel,
		Version: FormatVersion,
		LevelID: id,
		Name:    name,
		Map:     mapText,
		Score:   score,
	}
}

// StepEntry records a simulation step that has just been applied to s
// with the given pressed direction.
func StepEntry(s *core.State, pressed core.Dir) Entry {
	return Entry{
		Type:    TypeStep,
		Tick:    s.Tick,
		Pressed: pressed.String(),
		Digest:  Digest(s),
		Score:   s.Score,
	}
}

// Digest returns a stable hash of the simulation state: tick, score and
// every cell including sack fall state.
func Digest(s *core.State) string {
	h := sha256.New()
	var tmp [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(tmp[:], v)
		h.Write(tmp[:])
	}

	writeU64(s.Tick)
	writeU64(uint64(int64(s.Score)))
	writeU64(uint64(s.Board.W))
	writeU64(uint64(s.Board.H))

	for x := 0; x < s.Board.W; x++ {
		for y := 0; y < s.Board.H; y++ {
			c := s.Board.At(x, y)
			h.Write([]byte{byte(core.KindOf(c))})
			if sk, ok := c.(*core.Sack); ok {
				falling := byte(0)
				if sk.Falling() {
					falling = 1
				}
				h.Write([]byte{falling})
				writeU64(uint64(sk.FallCount()))
			}
		}
	}

	return hex.EncodeToString(h.Sum(nil))[:16]
}
