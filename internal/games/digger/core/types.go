// Package core implements the Digger simulation: a fixed-size board of
// creatures that each decide a move every tick and resolve collisions with
// pairwise "who dies" rules.
// This package is UI-agnostic, deterministic and single-threaded.
package core

// Kind tags the creature variant occupying a cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindTerrain
	KindPlayer
	KindSack
	KindGold
	KindMonster
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindTerrain:
		return "Terrain"
	case KindPlayer:
		return "Player"
	case KindSack:
		return "Sack"
	case KindGold:
		return "Gold"
	case KindMonster:
		return "Monster"
	default:
		return "Unknown"
	}
}

// Glyph returns the map-text character for the kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindTerrain:
		return 'T'
	case KindPlayer:
		return 'P'
	case KindSack:
		return 'S'
	case KindGold:
		return 'G'
	case KindMonster:
		return 'M'
	default:
		return ' '
	}
}

// Dir is a directional input.
type Dir uint8

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// ParseDir is the inverse of Dir.String. Unknown names map to DirNone.
func ParseDir(name string) Dir {
	for d := DirNone; d <= DirRight; d++ {
		if d.String() == name {
			return d
		}
	}
	return DirNone
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Command is a creature's decision for the current tick.
// DeltaX and DeltaY are each in {-1, 0, 1}; TransformTo, when set,
// replaces the creature at its destination cell.
type Command struct {
	DeltaX      int
	DeltaY      int
	TransformTo Creature
}

// Stay is the zero move.
func Stay() Command {
	return Command{}
}

// IsZero reports whether the command neither moves nor transforms.
func (c Command) IsZero() bool {
	return c.DeltaX == 0 && c.DeltaY == 0 && c.TransformTo == nil
}
