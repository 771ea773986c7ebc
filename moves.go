package gocube

// Predefined moves for convenience, all at speed 1.
// Use these instead of parsing notation for fixed sequences.
//
// Example:
//
//	sim.Enqueue(gocube.R, gocube.U, gocube.RPrime, gocube.UPrime)
var (
	// Right face moves
	R      = mustMove("R", false)  // Right clockwise
	RPrime = mustMove("R", true)   // Right counter-clockwise
	R2     = mustMove("R2", false) // Right 180

	// Left face moves
	L      = mustMove("L", false)
	LPrime = mustMove("L", true)
	L2     = mustMove("L2", false)

	// Up face moves
	U      = mustMove("U", false)
	UPrime = mustMove("U", true)
	U2     = mustMove("U2", false)

	// Down face moves
	D      = mustMove("D", false)
	DPrime = mustMove("D", true)
	D2     = mustMove("D2", false)

	// Front face moves
	F      = mustMove("F", false)
	FPrime = mustMove("F", true)
	F2     = mustMove("F2", false)

	// Back face moves
	B      = mustMove("B", false)
	BPrime = mustMove("B", true)
	B2     = mustMove("B2", false)

	// Middle slices
	M = mustMove("M", false)
	E = mustMove("E", false)
	S = mustMove("S", false)

	// Whole cube reorientations
	X = mustMove("X", false)
	Y = mustMove("Y", false)
	Z = mustMove("Z", false)
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}

func mustMove(token string, reverse bool) Move {
	m, ok := ParseMove(token, reverse, 1)
	if !ok {
		panic("gocube: bad predefined move " + token)
	}
	return m
}
