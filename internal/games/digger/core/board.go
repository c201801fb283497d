package core

import (
	"errors"
	"fmt"
	"strings"
)

// Map parsing errors.
var (
	ErrEmptyMap  = errors.New("digger: map has no cells")
	ErrRaggedMap = errors.New("digger: map rows differ in length")
	ErrBadGlyph  = errors.New("digger: unknown map glyph")
)

// Board is the game field. Each cell holds at most one creature.
// Cells are stored column-major (index = x*H + y) so that a linear walk
// visits them in simulation scan order.
type Board struct {
	W     int
	H     int
	cells []Creature
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(w, h int) *Board {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("digger: invalid board size %dx%d", w, h))
	}
	return &Board{
		W:     w,
		H:     h,
		cells: make([]Creature, w*h),
	}
}

// InBounds returns true if (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// index converts a coordinate to a flat index. Out-of-range coordinates are
// a caller bug and panic.
func (b *Board) index(x, y int) int {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("digger: cell (%d,%d) outside %dx%d board", x, y, b.W, b.H))
	}
	return x*b.H + y
}

// At returns the creature at (x, y), or nil if the cell is empty.
func (b *Board) At(x, y int) Creature {
	return b.cells[b.index(x, y)]
}

// Set places c at (x, y), replacing whatever was there. A nil c empties the cell.
func (b *Board) Set(x, y int, c Creature) {
	b.cells[b.index(x, y)] = c
}

// Clear empties the cell at (x, y).
func (b *Board) Clear(x, y int) {
	b.Set(x, y, nil)
}

// Occupied reports whether (x, y) holds a creature of one of the given kinds.
// Callers bounds-check first.
func (b *Board) Occupied(x, y int, kinds ...Kind) bool {
	k := KindOf(b.At(x, y))
	if k == KindNone {
		return false
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// FindFirst returns the first cell holding the given kind, scanning x outer
// and y inner.
func (b *Board) FindFirst(k Kind) (x, y int, ok bool) {
	for i, c := range b.cells {
		if KindOf(c) == k {
			return i / b.H, i % b.H, true
		}
	}
	return 0, 0, false
}

// Count returns the number of creatures of the given kind.
func (b *Board) Count(k Kind) int {
	n := 0
	for _, c := range b.cells {
		if KindOf(c) == k {
			n++
		}
	}
	return n
}

// Any reports whether some creature satisfies pred.
func (b *Board) Any(pred func(c Creature) bool) bool {
	for _, c := range b.cells {
		if c != nil && pred(c) {
			return true
		}
	}
	return false
}

// ParseMap builds a board from map text rows, top row first.
// Glyphs: T terrain, P player, S sack, G gold, M monster, space or '.' empty.
func ParseMap(rows []string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	w := len([]rune(rows[0]))
	for i, row := range rows {
		if n := len([]rune(row)); n != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedMap, i, n, w)
		}
	}

	b := NewBoard(w, len(rows))
	for y, row := range rows {
		for x, r := range []rune(row) {
			k, ok := kindForGlyph(r)
			if !ok {
				return nil, fmt.Errorf("%w %q at (%d,%d)", ErrBadGlyph, r, x, y)
			}
			b.Set(x, y, New(k))
		}
	}
	return b, nil
}

// ParseMapText splits text into lines and parses it. Trailing empty lines
// are ignored.
func ParseMapText(text string) (*Board, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return ParseMap(strings.Split(strings.TrimRight(text, "\n"), "\n"))
}

func kindForGlyph(r rune) (Kind, bool) {
	switch r {
	case ' ', '.':
		return KindNone, true
	case 'T':
		return KindTerrain, true
	case 'P':
		return KindPlayer, true
	case 'S':
		return KindSack, true
	case 'G':
		return KindGold, true
	case 'M':
		return KindMonster, true
	default:
		return KindNone, false
	}
}

// String renders the board as map text, empty cells as '.'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.W + 1) * b.H)
	for y := 0; y < b.H; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < b.W; x++ {
			k := KindOf(b.At(x, y))
			if k == KindNone {
				sb.WriteRune('.')
				continue
			}
			sb.WriteRune(k.Glyph())
		}
	}
	return sb.String()
}
