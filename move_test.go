package gocube

import (
	"errors"
	"testing"
)

func TestParseMoveTable(t *testing.T) {
	tests := []struct {
		token     string
		axis      Axis
		layers    []int
		direction int
		degrees   int
		middle    bool
		whole     bool
	}{
		{"R", AxisX, []int{1}, -1, 90, false, false},
		{"L", AxisX, []int{-1}, 1, 90, false, false},
		{"U", AxisY, []int{1}, -1, 90, false, false},
		{"D", AxisY, []int{-1}, 1, 90, false, false},
		{"F", AxisZ, []int{1}, -1, 90, false, false},
		{"B", AxisZ, []int{-1}, 1, 90, false, false},
		{"r", AxisX, []int{0, 1}, -1, 90, false, false},
		{"l", AxisX, []int{-1, 0}, 1, 90, false, false},
		{"u2", AxisY, []int{0, 1}, -1, 180, false, false},
		{"M", AxisX, []int{0}, 1, 90, true, false},
		{"E", AxisY, []int{0}, 1, 90, true, false},
		{"S2", AxisZ, []int{0}, -1, 180, true, false},
		{"X", AxisX, []int{0}, -1, 90, false, true},
		{"Y2", AxisY, []int{0}, -1, 180, false, true},
		{"Z", AxisZ, []int{0}, -1, 90, false, true},
	}

	for _, tt := range tests {
		m, ok := ParseMove(tt.token, false, 1)
		if !ok {
			t.Errorf("%s: expected a move", tt.token)
			continue
		}
		if m.Axis != tt.axis {
			t.Errorf("%s: axis = %v, want %v", tt.token, m.Axis, tt.axis)
		}
		got := m.Layers.Values()
		if len(got) != len(tt.layers) {
			t.Errorf("%s: layers = %v, want %v", tt.token, got, tt.layers)
		} else {
			for i := range got {
				if got[i] != tt.layers[i] {
					t.Errorf("%s: layers = %v, want %v", tt.token, got, tt.layers)
					break
				}
			}
		}
		if m.Direction != tt.direction {
			t.Errorf("%s: direction = %d, want %d", tt.token, m.Direction, tt.direction)
		}
		if m.Degrees != tt.degrees {
			t.Errorf("%s: degrees = %d, want %d", tt.token, m.Degrees, tt.degrees)
		}
		if m.MiddleLayer != tt.middle || m.WholeCube != tt.whole {
			t.Errorf("%s: middle=%v whole=%v, want %v %v", tt.token, m.MiddleLayer, m.WholeCube, tt.middle, tt.whole)
		}
	}
}

func TestParseMoveReverseFlipsDirection(t *testing.T) {
	for _, token := range []string{"R", "l", "M", "X", "U2"} {
		m, _ := ParseMove(token, false, 1)
		p, _ := ParseMove(token, true, 1)
		if p.Direction != -m.Direction {
			t.Errorf("%s: reverse direction = %d, want %d", token, p.Direction, -m.Direction)
		}
		if p.Inverse() != m {
			t.Errorf("%s: inverse of prime should equal the plain move", token)
		}
	}
}

func TestParseMoveIsPure(t *testing.T) {
	a, _ := ParseMove("r2", true, 1.5)
	b, _ := ParseMove("r2", true, 1.5)
	if a != b {
		t.Errorf("same input gave different moves: %+v vs %+v", a, b)
	}
}

func TestParseMoveRejectsUnknown(t *testing.T) {
	for _, token := range []string{"", "Q", "R3", "x", "RR", "R2'", "m"} {
		if _, ok := ParseMove(token, false, 1); ok {
			t.Errorf("%q should not parse", token)
		}
	}
}

func TestParseMoveSpeed(t *testing.T) {
	m, _ := ParseMove("F", false, 2.5)
	if m.Speed != 2.5 {
		t.Errorf("speed = %v, want 2.5", m.Speed)
	}

	m, _ = ParseMove("F", false, 0)
	if m.Speed != 1 {
		t.Errorf("zero speed should default to 1, got %v", m.Speed)
	}

	m, _ = ParseMove("F", false, -3)
	if m.Speed != 1 {
		t.Errorf("negative speed should default to 1, got %v", m.Speed)
	}
}

func TestNotation(t *testing.T) {
	tests := []struct {
		token   string
		reverse bool
		want    string
	}{
		{"R", false, "R"},
		{"R", true, "R'"},
		{"r2", false, "r2"},
		{"M", true, "M'"},
		{"X", false, "X"},
	}
	for _, tt := range tests {
		m, _ := ParseMove(tt.token, tt.reverse, 1)
		if got := m.Notation(); got != tt.want {
			t.Errorf("Notation(%s, %v) = %s, want %s", tt.token, tt.reverse, got, tt.want)
		}
	}
}

func TestParseMoves(t *testing.T) {
	moves := ParseMoves("R U R' U' bogus M2 x X`", 1)
	if got := FormatMoves(moves); got != "R U R' U' M2 X'" {
		t.Errorf("FormatMoves = %q", got)
	}
	if len(moves) != 6 {
		t.Errorf("expected 6 moves, got %d", len(moves))
	}
}

func TestValidateMoves(t *testing.T) {
	if err := ValidateMoves("R U2 r' M E S X Y Z"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateMoves("R Q U")
	if !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}
}

func TestLayers(t *testing.T) {
	l := LayersOf(1, 0, 5)
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
	if !l.Has(0) || !l.Has(1) || l.Has(-1) {
		t.Errorf("unexpected membership: %v", l.Values())
	}
}

func TestPredefinedMoves(t *testing.T) {
	if RPrime.Notation() != "R'" || R2.Degrees != 180 || !M.MiddleLayer || !Y.WholeCube {
		t.Error("predefined moves are wrong")
	}
	if FormatMoves(SexyMove) != "R U R' U'" {
		t.Errorf("SexyMove = %s", FormatMoves(SexyMove))
	}
}
