package core

// GoldReward is the score awarded when the player picks up gold.
const GoldReward = 10

// Creature is the behavior contract shared by every board occupant.
// The set of implementations is closed: Terrain, Player, Sack, Gold, Monster.
type Creature interface {
	// Kind returns the variant tag.
	Kind() Kind

	// ImageName identifies the sprite used by renderers.
	ImageName() string

	// DrawingPriority ranks sprites contesting a cell; higher is drawn on top.
	DrawingPriority() int

	// Act computes this tick's move for the creature standing at (x, y).
	// It reads the board through s and may only mutate its own state
	// (and, for Gold, the score).
	Act(s *State, x, y int) Command

	// DeadInConflict reports whether this creature is removed when it
	// contests a cell with other.
	DeadInConflict(s *State, other Creature) bool

	sealed()
}

// New returns a fresh creature of the given kind, or nil for KindNone.
func New(k Kind) Creature {
	switch k {
	case KindTerrain:
		return &Terrain{}
	case KindPlayer:
		return &Player{}
	case KindSack:
		return &Sack{}
	case KindGold:
		return &Gold{}
	case KindMonster:
		return &Monster{}
	default:
		return nil
	}
}

// KindOf returns the kind of c, or KindNone for an empty cell.
func KindOf(c Creature) Kind {
	if c == nil {
		return KindNone
	}
	return c.Kind()
}

// Terrain is diggable ground. It never moves and is removed by anything
// that enters its cell.
type Terrain struct{}

func (*Terrain) Kind() Kind           { return KindTerrain }
func (*Terrain) ImageName() string    { return "Terrain.png" }
func (*Terrain) DrawingPriority() int { return 5 }
func (*Terrain) sealed()              {}

func (*Terrain) Act(*State, int, int) Command { return Stay() }

func (*Terrain) DeadInConflict(*State, Creature) bool { return true }

// Player is the digger, steered by the pressed direction.
type Player struct{}

func (*Player) Kind() Kind           { return KindPlayer }
func (*Player) ImageName() string    { return "Digger.png" }
func (*Player) DrawingPriority() int { return 3 }
func (*Player) sealed()              {}

// Act steps one cell toward the pressed direction unless the destination is
// off the board or holds a sack.
func (*Player) Act(s *State, x, y int) Command {
	dx, dy := s.Pressed.Delta()
	if dx == 0 && dy == 0 {
		return Stay()
	}
	nx, ny := x+dx, y+dy
	if !s.Board.InBounds(nx, ny) || s.Board.Occupied(nx, ny, KindSack) {
		return Stay()
	}
	return Command{DeltaX: dx, DeltaY: dy}
}

func (*Player) DeadInConflict(_ *State, other Creature) bool {
	switch KindOf(other) {
	case KindSack, KindMonster:
		return true
	default:
		return false
	}
}

// Sack falls when nothing solid is below it and turns into gold after
// landing from a fall.
type Sack struct {
	falling        bool
	fallingCounter int
}

func (*Sack) Kind() Kind           { return KindSack }
func (*Sack) ImageName() string    { return "Sack.png" }
func (*Sack) DrawingPriority() int { return 1 }
func (*Sack) sealed()              {}

// Falling reports whether the sack moved down on its last act.
func (sk *Sack) Falling() bool { return sk.falling }

// FallCount returns the number of ticks the sack has spent falling.
func (sk *Sack) FallCount() int { return sk.fallingCounter }

func (sk *Sack) Act(s *State, x, y int) Command {
	cmd := Stay()
	if sk.canFall(s, x, y) {
		sk.falling = true
		sk.fallingCounter++
		cmd.DeltaY = 1
	} else {
		sk.falling = false
	}
	if !sk.falling && sk.fallingCounter >= 1 {
		cmd.TransformTo = &Gold{}
	}
	return cmd
}

// canFall checks the cell below: in bounds, no landing surface, and not
// propped up by a creature while the sack is still at rest.
func (sk *Sack) canFall(s *State, x, y int) bool {
	below := y + 1
	if below >= s.Board.H {
		return false
	}
	if s.Board.Occupied(x, below, KindSack, KindTerrain, KindGold) {
		return false
	}
	return !sk.proppedUp(s, x, below)
}

func (sk *Sack) proppedUp(s *State, x, below int) bool {
	return !sk.falling && s.Board.Occupied(x, below, KindPlayer, KindMonster)
}

func (*Sack) DeadInConflict(*State, Creature) bool { return false }

// Gold is picked up by the player for GoldReward points.
type Gold struct{}

func (*Gold) Kind() Kind           { return KindGold }
func (*Gold) ImageName() string    { return "Gold.png" }
func (*Gold) DrawingPriority() int { return 4 }
func (*Gold) sealed()              {}

func (*Gold) Act(*State, int, int) Command { return Stay() }

func (*Gold) DeadInConflict(s *State, other Creature) bool {
	switch KindOf(other) {
	case KindPlayer:
		s.Score += GoldReward
		return true
	case KindMonster:
		return true
	default:
		return false
	}
}

// Monster chases the player one greedy step per tick.
type Monster struct{}

func (*Monster) Kind() Kind           { return KindMonster }
func (*Monster) ImageName() string    { return "Monster.png" }
func (*Monster) DrawingPriority() int { return 2 }
func (*Monster) sealed()              {}

// Act tries, in order: left, up, right, down, taking the first step that
// brings it closer to the player and is not blocked.
func (m *Monster) Act(s *State, x, y int) Command {
	px, py, ok := s.Board.FindFirst(KindPlayer)
	if !ok {
		return Stay()
	}
	switch {
	case px < x && m.canEnter(s, x-1, y):
		return Command{DeltaX: -1}
	case py < y && m.canEnter(s, x, y-1):
		return Command{DeltaY: -1}
	case px > x && m.canEnter(s, x+1, y):
		return Command{DeltaX: 1}
	case py > y && m.canEnter(s, x, y+1):
		return Command{DeltaY: 1}
	default:
		return Stay()
	}
}

func (*Monster) canEnter(s *State, x, y int) bool {
	return !s.Board.Occupied(x, y, KindMonster, KindSack, KindTerrain)
}

func (*Monster) DeadInConflict(_ *State, other Creature) bool {
	switch KindOf(other) {
	case KindMonster, KindSack:
		return true
	default:
		return false
	}
}
