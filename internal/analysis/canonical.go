package analysis

import (
	gocube "github.com/SeamusWaldron/gocube_simulator"
)

// NormalizeTurn reduces a signed quarter-turn count to -1, 1 or 2, or 0
// for a full rotation.
// -3 -> 1, -2 -> 2, -1 -> -1, 0 -> 0, 1 -> 1, 2 -> 2, 3 -> -1
func NormalizeTurn(quarters int) int {
	quarters = ((quarters % 4) + 4) % 4
	if quarters == 3 {
		return -1
	}
	return quarters
}

// quarters returns the move as signed quarter turns relative to its
// token's clockwise direction.
func quarters(m gocube.Move) int {
	q := m.Degrees / 90
	if m.IsReverse() {
		q = -q
	}
	return q
}

// Simplify merges runs of moves on the same token letter and drops runs
// that cancel out, so "R R" becomes "R2" and "U U'" disappears. The result
// leaves the cube in the same configuration. Half turns are written
// without a prime.
func Simplify(moves []gocube.Move) []gocube.Move {
	type run struct {
		letter byte
		total  int
		speed  float64
	}

	var stack []run
	for _, m := range moves {
		if len(m.Token) == 0 {
			continue
		}
		letter := m.Token[0]
		if n := len(stack); n > 0 && stack[n-1].letter == letter {
			stack[n-1].total += quarters(m)
			if NormalizeTurn(stack[n-1].total) == 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, run{letter: letter, total: quarters(m), speed: m.Speed})
	}

	out := make([]gocube.Move, 0, len(stack))
	for _, r := range stack {
		token := string(r.letter)
		reverse := false
		switch NormalizeTurn(r.total) {
		case 2:
			token += "2"
		case -1:
			reverse = true
		case 0:
			continue
		}
		if m, ok := gocube.ParseMove(token, reverse, r.speed); ok {
			out = append(out, m)
		}
	}

	return out
}
