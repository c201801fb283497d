package core

import "fmt"

// EventKind identifies what happened to a creature during a step.
type EventKind int

const (
	EventMoved       EventKind = iota // Creature entered an empty cell or won a conflict
	EventBlocked                      // Neither side died; the mover stayed put
	EventRemoved                      // Creature died in a conflict
	EventTransformed                  // Creature was replaced in place
	EventCollected                    // Player picked up gold
)

// String returns a human-readable name for the event kind.
func (e EventKind) String() string {
	switch e {
	case EventMoved:
		return "moved"
	case EventBlocked:
		return "blocked"
	case EventRemoved:
		return "removed"
	case EventTransformed:
		return "transformed"
	case EventCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// Event records one observable change during a step.
type Event struct {
	Kind   EventKind
	Who    Kind // Creature the event is about
	By     Kind // Other party for conflicts, new kind for transforms
	FromX  int
	FromY  int
	X      int // Cell where the event ended
	Y      int
	Reward int // Score gained, EventCollected only
}

// StepResult contains information about what happened during a tick.
type StepResult struct {
	Tick   uint64
	Events []Event
}

// State is the simulation context: the board, the directional input for
// the current tick and the running score.
type State struct {
	Board   *Board
	Pressed Dir
	Score   int
	Tick    uint64

	acted []bool // Per-cell marker: the creature there already acted this tick
}

// NewState creates a simulation state around an existing board.
func NewState(b *Board) *State {
	return &State{
		Board: b,
		acted: make([]bool, len(b.cells)),
	}
}

// Step advances the simulation by one tick.
//
// Cells are visited x outer, y inner. Each creature acts once; its command
// is applied to the board immediately, so later creatures see earlier moves.
// A move into an occupied cell asks both sides DeadInConflict:
//   - only the occupant dies: the mover takes the cell
//   - only the mover dies: the mover is removed, the occupant stays
//   - both die: the cell and the mover's origin are emptied
//   - neither dies: the move is rejected
func (s *State) Step() StepResult {
	if len(s.acted) != len(s.Board.cells) {
		s.acted = make([]bool, len(s.Board.cells))
	}
	for i := range s.acted {
		s.acted[i] = false
	}

	result := StepResult{Events: make([]Event, 0)}

	for x := 0; x < s.Board.W; x++ {
		for y := 0; y < s.Board.H; y++ {
			c := s.Board.At(x, y)
			if c == nil || s.acted[s.Board.index(x, y)] {
				continue
			}
			cmd := c.Act(s, x, y)
			s.apply(c, x, y, cmd, &result)
		}
	}

	s.Tick++
	result.Tick = s.Tick
	return result
}

// apply carries out one creature's command.
func (s *State) apply(c Creature, x, y int, cmd Command, result *StepResult) {
	tx, ty := x+cmd.DeltaX, y+cmd.DeltaY
	if !s.Board.InBounds(tx, ty) {
		panic(fmt.Sprintf("digger: %s at (%d,%d) moved off the board by (%d,%d)",
			c.Kind(), x, y, cmd.DeltaX, cmd.DeltaY))
	}

	arriving := c
	if cmd.TransformTo != nil {
		arriving = cmd.TransformTo
	}

	if tx == x && ty == y {
		if arriving != c {
			s.Board.Set(x, y, arriving)
			result.Events = append(result.Events, Event{
				Kind: EventTransformed, Who: c.Kind(), By: arriving.Kind(),
				FromX: x, FromY: y, X: x, Y: y,
			})
		}
		s.markActed(x, y)
		return
	}

	occupant := s.Board.At(tx, ty)
	if occupant == nil {
		s.move(c, arriving, x, y, tx, ty, result)
		return
	}

	scoreBefore := s.Score
	moverDies := c.DeadInConflict(s, occupant)
	occupantDies := occupant.DeadInConflict(s, c)
	if gained := s.Score - scoreBefore; gained > 0 {
		result.Events = append(result.Events, Event{
			Kind: EventCollected, Who: occupant.Kind(), By: c.Kind(),
			FromX: tx, FromY: ty, X: tx, Y: ty, Reward: gained,
		})
	}

	switch {
	case occupantDies && !moverDies:
		result.Events = append(result.Events, removed(occupant, c, tx, ty))
		s.move(c, arriving, x, y, tx, ty, result)
	case moverDies && !occupantDies:
		s.Board.Clear(x, y)
		result.Events = append(result.Events, removed(c, occupant, x, y))
	case moverDies && occupantDies:
		s.Board.Clear(x, y)
		s.Board.Clear(tx, ty)
		result.Events = append(result.Events, removed(occupant, c, tx, ty), removed(c, occupant, x, y))
	default:
		s.markActed(x, y)
		result.Events = append(result.Events, Event{
			Kind: EventBlocked, Who: c.Kind(), By: occupant.Kind(),
			FromX: x, FromY: y, X: x, Y: y,
		})
	}
}

func (s *State) move(c, arriving Creature, x, y, tx, ty int, result *StepResult) {
	s.Board.Clear(x, y)
	s.Board.Set(tx, ty, arriving)
	s.markActed(tx, ty)
	result.Events = append(result.Events, Event{
		Kind: EventMoved, Who: c.Kind(), By: arriving.Kind(),
		FromX: x, FromY: y, X: tx, Y: ty,
	})
}

func (s *State) markActed(x, y int) {
	s.acted[s.Board.index(x, y)] = true
}

func removed(victim, by Creature, x, y int) Event {
	return Event{
		Kind: EventRemoved, Who: victim.Kind(), By: by.Kind(),
		FromX: x, FromY: y, X: x, Y: y,
	}
}

// PlayerAlive reports whether a player is still on the board.
func (s *State) PlayerAlive() bool {
	_, _, ok := s.Board.FindFirst(KindPlayer)
	return ok
}

// Settled reports whether no gold is left and no sack is mid-fall.
func (s *State) Settled() bool {
	if s.Board.Count(KindGold) > 0 {
		return false
	}
	return !s.Board.Any(func(c Creature) bool {
		sk, ok := c.(*Sack)
		return ok && sk.Falling()
	})
}
