package gocube

import "time"

// Simulator is the entry point for front ends: it owns the 27 pieces and the
// scheduler that animates them.
//
// Create one with NewSimulator and drive it from a frame loop:
//
//	sim := gocube.NewSimulator()
//	sim.OnQueueDrained(func() { fmt.Println("idle") })
//	sim.PerformMove("R", false)
//	for sim.IsAnimating() {
//	    sim.Tick(16 * time.Millisecond)
//	}
//
// Simulator is not safe for concurrent use.
type Simulator struct {
	cfg    *config
	pieces *Ensemble
	sched  *Scheduler
}

// NewSimulator creates a simulator holding a solved cube.
func NewSimulator(opts ...Option) *Simulator {
	cfg := newConfig(opts)
	pieces := NewEnsemble()
	sched := newScheduler(pieces, cfg)
	return &Simulator{
		cfg:    cfg,
		pieces: pieces,
		sched:  sched,
	}
}

// Event callbacks

// OnMoveStarted sets a callback that fires for each move as it starts to
// animate. Front ends use it for feedback such as sound or move counters.
func (s *Simulator) OnMoveStarted(cb func(Move)) {
	s.sched.OnMoveStarted(cb)
}

// OnQueueDrained sets a callback that fires when the last queued move
// commits.
func (s *Simulator) OnQueueDrained(cb func()) {
	s.sched.OnQueueDrained(cb)
}

// PerformMove parses token and queues it. The optional speed overrides the
// configured move speed when it is positive and finite. Unrecognised tokens
// are ignored and PerformMove returns false.
func (s *Simulator) PerformMove(token string, reverse bool, speed ...float64) bool {
	m, ok := ParseMove(token, reverse, s.cfg.moveSpeed)
	if !ok {
		s.cfg.logger.WithField("token", token).Debug("ignoring unrecognised move")
		return false
	}
	if len(speed) > 0 {
		m = m.WithSpeed(speed[0])
	}
	s.sched.Enqueue(m)
	return true
}

// PerformAlgorithm queues predefined moves such as SexyMove at the configured
// move speed and returns what was queued.
func (s *Simulator) PerformAlgorithm(moves ...Move) []Move {
	queued := make([]Move, len(moves))
	for i, m := range moves {
		queued[i] = m.WithSpeed(s.cfg.moveSpeed)
	}
	s.sched.Enqueue(queued...)
	return queued
}

// PerformSequence parses a space-separated sequence such as "R U R' U'" and
// queues every recognised move. It returns the queued moves.
func (s *Simulator) PerformSequence(seq string) []Move {
	moves := ParseMoves(seq, s.cfg.moveSpeed)
	s.sched.Enqueue(moves...)
	return moves
}

// Enqueue queues already-built moves.
func (s *Simulator) Enqueue(moves ...Move) {
	s.sched.Enqueue(moves...)
}

// Scramble queues the configured number of random outer-layer turns and
// returns them.
func (s *Simulator) Scramble() []Move {
	return s.sched.EnqueueScramble(s.cfg.scrambleLength, s.cfg.rng)
}

// Reset cancels all queued and animating moves and snaps the cube to the
// lattice. The configuration reached so far is kept.
func (s *Simulator) Reset() {
	s.sched.Reset()
}

// Remount resets and rebuilds a solved cube.
func (s *Simulator) Remount() {
	s.sched.Reset()
	s.pieces.rebuild()
}

// Tick advances the animation by dt.
func (s *Simulator) Tick(dt time.Duration) {
	s.sched.Tick(dt)
}

// RunUntilIdle ticks with a fixed dt until nothing is animating or maxTicks
// ticks have run. It returns the number of ticks taken.
func (s *Simulator) RunUntilIdle(dt time.Duration, maxTicks int) int {
	n := 0
	for s.sched.IsAnimating() && n < maxTicks {
		s.sched.Tick(dt)
		n++
	}
	return n
}

// IsAnimating reports whether a move is in flight or queued.
func (s *Simulator) IsAnimating() bool {
	return s.sched.IsAnimating()
}

// Scheduler returns the underlying scheduler for inspection.
func (s *Simulator) Scheduler() *Scheduler {
	return s.sched
}

// Ensemble returns the pieces.
func (s *Simulator) Ensemble() *Ensemble {
	return s.pieces
}

// Facelets returns the sticker view of the committed configuration.
func (s *Simulator) Facelets() *Cube {
	return s.pieces.Facelets()
}

// Snapshot captures the committed configuration.
func (s *Simulator) Snapshot() Snapshot {
	return s.pieces.Snapshot()
}
