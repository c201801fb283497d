package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-digger/internal/games/digger/core"
)

func TestParseMapRoundTrip(t *testing.T) {
	text := "TTT.T\nTTP.T\nT.MTT\nTSTGT"

	b, err := core.ParseMapText(text + "\n\n")
	if err != nil {
		t.Fatalf("ParseMapText failed: %v", err)
	}
	if b.W != 5 || b.H != 4 {
		t.Errorf("expected 5x4, got %dx%d", b.W, b.H)
	}
	if got := b.String(); got != text {
		t.Errorf("String() = %q, expected %q", got, text)
	}
}

func TestParseMapSpacesAreEmpty(t *testing.T) {
	b, err := core.ParseMap([]string{"P G"})
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if b.At(1, 0) != nil {
		t.Error("space should parse to an empty cell")
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"no rows", nil, core.ErrEmptyMap},
		{"empty row", []string{""}, core.ErrEmptyMap},
		{"ragged", []string{"TTT", "TT"}, core.ErrRaggedMap},
		{"unknown glyph", []string{"TXT"}, core.ErrBadGlyph},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.ParseMap(tc.rows)
			if !errors.Is(err, tc.want) {
				t.Errorf("ParseMap() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestOccupied(t *testing.T) {
	b, err := core.ParseMap([]string{"PS.", "MGT"})
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	tests := []struct {
		x, y  int
		kinds []core.Kind
		want  bool
	}{
		{0, 0, []core.Kind{core.KindPlayer}, true},
		{0, 0, []core.Kind{core.KindSack, core.KindMonster}, false},
		{1, 0, []core.Kind{core.KindTerrain, core.KindSack}, true},
		{2, 0, []core.Kind{core.KindTerrain, core.KindSack, core.KindGold}, false},
		{0, 1, []core.Kind{core.KindMonster}, true},
		{1, 1, nil, false},
		{2, 1, []core.Kind{core.KindTerrain}, true},
	}

	for _, tc := range tests {
		if got := b.Occupied(tc.x, tc.y, tc.kinds...); got != tc.want {
			t.Errorf("Occupied(%d, %d, %v) = %v, expected %v", tc.x, tc.y, tc.kinds, got, tc.want)
		}
	}
}

func TestOccupiedPanicsOutOfRange(t *testing.T) {
	b := core.NewBoard(2, 2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range coordinates")
		}
	}()
	b.Occupied(2, 0, core.KindTerrain)
}

func TestFindFirstScansColumnsFirst(t *testing.T) {
	// Row-major search would find (2,0); column-major finds (0,2).
	b, err := core.ParseMap([]string{
		"..P",
		"...",
		"P..",
	})
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	x, y, ok := b.FindFirst(core.KindPlayer)
	if !ok {
		t.Fatal("expected to find a player")
	}
	if x != 0 || y != 2 {
		t.Errorf("FindFirst() = (%d,%d), expected (0,2)", x, y)
	}

	if _, _, ok := b.FindFirst(core.KindMonster); ok {
		t.Error("FindFirst should report no monster")
	}
}

func TestBoardCount(t *testing.T) {
	b, err := core.ParseMap([]string{"GGS", "TGM"})
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if n := b.Count(core.KindGold); n != 3 {
		t.Errorf("Count(Gold) = %d, expected 3", n)
	}
	if n := b.Count(core.KindPlayer); n != 0 {
		t.Errorf("Count(Player) = %d, expected 0", n)
	}
}
