package gocube

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// completionEpsilon absorbs floating point error in the accumulated angle.
const completionEpsilon = 1e-9

// Pivot is the rotation applied to the pieces of the move in flight.
// It is the identity (zero angle) whenever no move is animating.
type Pivot struct {
	Axis  Axis
	Angle float64 // Radians, right-hand about Axis
}

// Rotation returns the pivot as a unit quaternion.
func (p Pivot) Rotation() quat.Number {
	if p.Angle == 0 {
		return identity
	}
	return axisRotation(p.Axis, p.Angle)
}

// IsIdentity reports whether the pivot applies no rotation.
func (p Pivot) IsIdentity() bool {
	return p.Angle == 0
}

// inFlight is the single move currently animating.
type inFlight struct {
	move     Move
	pieces   []*Piece
	progress float64 // Radians turned so far, signed like target
	target   float64 // Radians, signed by direction
}

func (f *inFlight) done() bool {
	return math.Abs(f.progress) >= math.Abs(f.target)-completionEpsilon
}

func (f *inFlight) contains(p *Piece) bool {
	for _, q := range f.pieces {
		if q == p {
			return true
		}
	}
	return false
}

// Scheduler animates queued moves one at a time against an Ensemble.
//
// A move's pieces keep their committed pose while it animates; the Pivot
// carries the partial rotation and Pose combines the two for display. On
// completion the exact target rotation is applied to each piece and the
// result snapped to the lattice, so no drift survives a move boundary.
//
// Scheduler is not safe for concurrent use. Enqueue, Tick and Reset are
// expected to run on the same goroutine, typically a frame loop.
type Scheduler struct {
	pieces  *Ensemble
	cfg     *config
	log     logrus.FieldLogger
	queue   []Move
	current *inFlight
	pivot   Pivot

	onMoveStarted  func(Move)
	onQueueDrained func()
}

// NewScheduler creates an idle scheduler over pieces.
func NewScheduler(pieces *Ensemble, opts ...Option) *Scheduler {
	return newScheduler(pieces, newConfig(opts))
}

func newScheduler(pieces *Ensemble, cfg *config) *Scheduler {
	return &Scheduler{
		pieces: pieces,
		cfg:    cfg,
		log:    cfg.logger,
	}
}

// OnMoveStarted sets a callback that fires once per dequeued move, after its
// pieces are selected and before it animates.
func (s *Scheduler) OnMoveStarted(cb func(Move)) {
	s.onMoveStarted = cb
}

// OnQueueDrained sets a callback that fires when a move commits and nothing
// is left to animate.
func (s *Scheduler) OnQueueDrained(cb func()) {
	s.onQueueDrained = cb
}

// Enqueue appends moves to the queue in order. A move that fails Validate
// is a caller defect: Enqueue panics with an error wrapping
// ErrMalformedMove and queues none of the batch.
func (s *Scheduler) Enqueue(moves ...Move) {
	for _, m := range moves {
		if err := m.Validate(); err != nil {
			panic(err)
		}
	}
	s.queue = append(s.queue, moves...)
}

// EnqueueScramble appends count random outer-layer quarter turns, drawn
// uniformly from the six faces and both directions, at the scramble speed.
// It returns the generated moves in queue order.
func (s *Scheduler) EnqueueScramble(count int, rng RandSource) []Move {
	if count <= 0 {
		return nil
	}
	if rng == nil {
		rng = s.cfg.rng
	}

	moves := make([]Move, 0, count)
	for i := 0; i < count; i++ {
		token := FaceTokens[rng.IntN(len(FaceTokens))]
		reverse := rng.IntN(2) == 1
		m, _ := ParseMove(token, reverse, s.cfg.scrambleSpeed)
		moves = append(moves, m)
	}

	s.Enqueue(moves...)
	s.log.WithField("moves", FormatMoves(moves)).Debug("scramble enqueued")
	return moves
}

// IsAnimating reports whether a move is in flight or waiting in the queue.
func (s *Scheduler) IsAnimating() bool {
	return s.current != nil || len(s.queue) > 0
}

// Pending returns the number of queued moves, excluding the one in flight.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Current returns the move in flight and the fraction of it completed.
func (s *Scheduler) Current() (Move, float64, bool) {
	if s.current == nil {
		return Move{}, 0, false
	}
	return s.current.move, s.current.progress / s.current.target, true
}

// Pivot returns the current pivot rotation.
func (s *Scheduler) Pivot() Pivot {
	return s.pivot
}

// Pose returns where p is drawn right now: its committed pose, turned by
// the pivot if p belongs to the move in flight.
func (s *Scheduler) Pose(p *Piece) (r3.Vec, quat.Number) {
	if s.current == nil || s.pivot.IsIdentity() || !s.current.contains(p) {
		return p.position, p.orientation
	}
	q := s.pivot.Rotation()
	return rotateVec(q, p.position), quat.Mul(q, p.orientation)
}

// Tick advances the simulation by dt. When idle with moves queued it starts
// the head move; it then turns the move in flight by at most the remaining
// angle and commits it once the target is reached. Negative dt counts as 0.
func (s *Scheduler) Tick(dt time.Duration) {
	if s.current == nil {
		if len(s.queue) == 0 {
			return
		}
		s.start()
		// The started callback may have reset the scheduler.
		if s.current == nil {
			return
		}
	}

	s.advance(dt)
	if s.current.done() {
		s.commit()
	}
}

func (s *Scheduler) start() {
	m := s.queue[0]
	s.queue = s.queue[1:]
	if len(s.queue) == 0 {
		s.queue = nil
	}

	s.pivot = Pivot{Axis: m.Axis}
	pieces := s.pieces.Select(m)
	s.current = &inFlight{
		move:   m,
		pieces: pieces,
		target: float64(m.Degrees) * math.Pi / 180 * float64(m.Direction),
	}

	s.log.WithFields(logrus.Fields{
		"move":    m.Notation(),
		"axis":    m.Axis.String(),
		"pieces":  len(pieces),
		"pending": len(s.queue),
	}).Debug("move started")

	if s.onMoveStarted != nil {
		s.onMoveStarted(m)
	}
}

func (s *Scheduler) advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}

	c := s.current
	step := s.cfg.angularRate * c.move.Speed * float64(c.move.Direction) * dt.Seconds()
	if remaining := c.target - c.progress; math.Abs(step) > math.Abs(remaining) {
		step = remaining
	}

	c.progress += step
	s.pivot.Angle = c.progress
}

func (s *Scheduler) commit() {
	c := s.current

	s.pivot.Angle = c.target
	q := s.pivot.Rotation()
	for _, p := range c.pieces {
		p.rotate(q)
		p.snap()
	}

	s.pivot = Pivot{}
	s.current = nil

	if err := s.pieces.CheckLattice(); err != nil {
		panic(err)
	}

	s.log.WithFields(logrus.Fields{
		"move":    c.move.Notation(),
		"pending": len(s.queue),
	}).Debug("move committed")

	if len(s.queue) == 0 && s.onQueueDrained != nil {
		s.onQueueDrained()
	}
}

// Reset drops every queued move and the move in flight without committing
// it, snaps all pieces to the lattice and returns the pivot to identity.
// It is safe to call at any time, including from a callback.
func (s *Scheduler) Reset() {
	dropped := len(s.queue)
	if s.current != nil {
		dropped++
	}

	s.queue = nil
	s.current = nil
	s.pivot = Pivot{}
	s.pieces.Snap()

	s.log.WithField("dropped", dropped).Debug("scheduler reset")
}
