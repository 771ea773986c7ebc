package gocube

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
)

// Axis names one of the three rotation axes of the cube.
// X points right, Y points up and Z points out of the front face.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Layers is an ordered set of slice coordinates drawn from {-1, 0, 1}.
type Layers uint8

// LayersOf builds a Layers set. Values outside {-1, 0, 1} are ignored.
func LayersOf(values ...int) Layers {
	var l Layers
	for _, v := range values {
		if v >= -1 && v <= 1 {
			l |= 1 << uint(v+1)
		}
	}
	return l
}

// Has reports whether v is a member of the set.
func (l Layers) Has(v int) bool {
	if v < -1 || v > 1 {
		return false
	}
	return l&(1<<uint(v+1)) != 0
}

// Len returns the number of slices in the set.
func (l Layers) Len() int {
	return bits.OnesCount8(uint8(l))
}

// Values returns the members in ascending order.
func (l Layers) Values() []int {
	values := make([]int, 0, 3)
	for v := -1; v <= 1; v++ {
		if l.Has(v) {
			values = append(values, v)
		}
	}
	return values
}

// Move describes one animated rotation: which axis, which slices, which
// way, how far and how fast. A Move is a plain value and is never modified
// once ParseMove has built it.
type Move struct {
	Token       string  // Notation token without prime, e.g. "R", "r2", "M"
	Axis        Axis    // Rotation axis
	Layers      Layers  // Slice coordinates on Axis
	Direction   int     // +1 counter-clockwise or -1 clockwise, viewed from +Axis
	Degrees     int     // 90 or 180
	MiddleLayer bool    // E, M or S
	WholeCube   bool    // X, Y or Z
	Speed       float64 // Multiplier on the base angular rate
}

// turn is one row of the notation table. Directions are right-hand turns
// about the positive axis, so a clockwise R (viewed from the right) is -1.
type turn struct {
	axis      Axis
	layers    Layers
	direction int
	middle    bool
	whole     bool
}

var turnTable = map[byte]turn{
	// Single outer layer
	'R': {axis: AxisX, layers: LayersOf(1), direction: -1},
	'L': {axis: AxisX, layers: LayersOf(-1), direction: 1},
	'U': {axis: AxisY, layers: LayersOf(1), direction: -1},
	'D': {axis: AxisY, layers: LayersOf(-1), direction: 1},
	'F': {axis: AxisZ, layers: LayersOf(1), direction: -1},
	'B': {axis: AxisZ, layers: LayersOf(-1), direction: 1},

	// Wide: outer layer plus the middle layer next to it
	'r': {axis: AxisX, layers: LayersOf(1, 0), direction: -1},
	'l': {axis: AxisX, layers: LayersOf(-1, 0), direction: 1},
	'u': {axis: AxisY, layers: LayersOf(1, 0), direction: -1},
	'd': {axis: AxisY, layers: LayersOf(-1, 0), direction: 1},
	'f': {axis: AxisZ, layers: LayersOf(1, 0), direction: -1},
	'b': {axis: AxisZ, layers: LayersOf(-1, 0), direction: 1},

	// Middle slices follow L, D and F respectively
	'M': {axis: AxisX, layers: LayersOf(0), direction: 1, middle: true},
	'E': {axis: AxisY, layers: LayersOf(0), direction: 1, middle: true},
	'S': {axis: AxisZ, layers: LayersOf(0), direction: -1, middle: true},

	// Whole cube follows R, U and F respectively
	'X': {axis: AxisX, layers: LayersOf(0), direction: -1, whole: true},
	'Y': {axis: AxisY, layers: LayersOf(0), direction: -1, whole: true},
	'Z': {axis: AxisZ, layers: LayersOf(0), direction: -1, whole: true},
}

// FaceTokens are the six single-layer face letters, in scramble draw order.
var FaceTokens = [6]string{"R", "L", "U", "D", "F", "B"}

// ParseMove turns a notation token into a Move.
//
// Recognised tokens are R L U D F B (outer layer), r l u d f b (wide),
// E M S (middle slice) and X Y Z (whole cube), each optionally followed by
// "2" for a half turn. reverse flips the direction, giving the prime move.
// A non-positive speed is treated as 1.
//
// ParseMove returns false for anything else; callers drop such tokens.
func ParseMove(token string, reverse bool, speed float64) (Move, bool) {
	token = strings.TrimSpace(token)
	if len(token) == 0 || len(token) > 2 {
		return Move{}, false
	}

	t, ok := turnTable[token[0]]
	if !ok {
		return Move{}, false
	}

	degrees := 90
	if len(token) == 2 {
		if token[1] != '2' {
			return Move{}, false
		}
		degrees = 180
	}

	direction := t.direction
	if reverse {
		direction = -direction
	}

	if !(speed > 0) || math.IsInf(speed, 1) {
		speed = 1
	}

	return Move{
		Token:       token,
		Axis:        t.axis,
		Layers:      t.layers,
		Direction:   direction,
		Degrees:     degrees,
		MiddleLayer: t.middle,
		WholeCube:   t.whole,
		Speed:       speed,
	}, true
}

// Validate reports why m cannot be animated, or nil. ParseMove only builds
// valid moves; hand-built ones need checking before they are queued.
func (m Move) Validate() error {
	switch {
	case m.Axis < AxisX || m.Axis > AxisZ:
		return fmt.Errorf("%w: axis %d", ErrMalformedMove, m.Axis)
	case m.Direction != 1 && m.Direction != -1:
		return fmt.Errorf("%w: direction %d", ErrMalformedMove, m.Direction)
	case m.Degrees != 90 && m.Degrees != 180:
		return fmt.Errorf("%w: %d degrees", ErrMalformedMove, m.Degrees)
	case !(m.Speed > 0) || math.IsInf(m.Speed, 1):
		return fmt.Errorf("%w: speed %v", ErrMalformedMove, m.Speed)
	case m.WholeCube:
		return nil
	case m.Layers.Len() == 0:
		return fmt.Errorf("%w: no layers", ErrMalformedMove)
	case m.MiddleLayer && m.Layers != LayersOf(0):
		return fmt.Errorf("%w: middle slice off centre", ErrMalformedMove)
	}
	return nil
}

// IsReverse reports whether the move turns against its token's base direction.
func (m Move) IsReverse() bool {
	if len(m.Token) == 0 {
		return false
	}
	return turnTable[m.Token[0]].direction != m.Direction
}

// Notation returns the standard notation string for this move.
// Examples: R, R', R2, r', M, X2'
func (m Move) Notation() string {
	if m.IsReverse() {
		return m.Token + "'"
	}
	return m.Token
}

// Inverse returns the move that undoes m: same slices, opposite direction.
func (m Move) Inverse() Move {
	inv := m
	inv.Direction = -m.Direction
	return inv
}

// WithSpeed returns a copy of the move with a different speed multiplier.
func (m Move) WithSpeed(speed float64) Move {
	if speed > 0 && !math.IsInf(speed, 1) {
		m.Speed = speed
	}
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// splitPrime separates a trailing prime mark from a sequence token.
func splitPrime(s string) (string, bool) {
	if strings.HasSuffix(s, "'") || strings.HasSuffix(s, "`") {
		return s[:len(s)-1], true
	}
	return s, false
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U' M2 X"
// Invalid moves are skipped.
func ParseMoves(s string, speed float64) []Move {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		token, reverse := splitPrime(part)
		move, ok := ParseMove(token, reverse, speed)
		if !ok {
			continue // Skip invalid moves
		}
		moves = append(moves, move)
	}

	return moves
}

// ValidateMoves reports the first token in s that ParseMoves would skip.
func ValidateMoves(s string) error {
	for _, part := range strings.Fields(s) {
		token, reverse := splitPrime(part)
		if _, ok := ParseMove(token, reverse, 1); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidNotation, part)
		}
	}
	return nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
