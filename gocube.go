// Package gocube simulates a 3x3x3 twisty puzzle as 27 rigid pieces and
// animates notation moves on it, one move at a time.
//
// # Features
//
//   - Full notation: outer (R L U D F B), wide (r l u d f b), middle
//     slices (E M S) and whole-cube turns (X Y Z), with 2 for half turns
//   - FIFO move queue with a single move in flight
//   - Frame-driven animation at a configurable angular rate
//   - Lattice snapping after every move, so repeated turns never drift
//   - Facelet view of the pieces for text rendering
//
// # Quick Start
//
//	sim := gocube.NewSimulator()
//
//	sim.OnMoveStarted(func(m gocube.Move) {
//	    fmt.Println("Move:", m.Notation())
//	})
//	sim.OnQueueDrained(func() {
//	    fmt.Println("Idle")
//	})
//
//	sim.PerformMove("R", false)
//	sim.PerformMove("U", true) // U'
//	sim.PerformSequence("M2 X r'")
//
//	for sim.IsAnimating() {
//	    sim.Tick(16 * time.Millisecond)
//	}
//	fmt.Print(sim.Facelets())
//
// # Parsing
//
// ParseMove is a pure mapping from a token, a reverse flag and a speed to a
// Move. Unrecognised tokens yield false and are meant to be dropped.
//
//	m, ok := gocube.ParseMove("r2", false, 1)
//
// # Lattice invariant
//
// Whenever nothing is queued or animating, every piece sits on a cell of
// {-1, 0, 1}^3 and its orientation is a multiple of 90 degrees about each
// axis. Reset re-establishes this at any time, even mid-move.
package gocube
