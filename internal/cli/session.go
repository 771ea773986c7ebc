package cli

import (
	"github.com/sirupsen/logrus"

	gocube "github.com/SeamusWaldron/gocube_simulator"
	"github.com/SeamusWaldron/gocube_simulator/internal/journal"
)

// session couples a simulator with an optional journal recorder. Every move
// is stamped when it starts animating, tagged with the source it was queued
// from, and written later by flush so no database work runs inside a tick.
type session struct {
	sim *gocube.Simulator
	db  *journal.DB
	rec *journal.Recorder
	log logrus.FieldLogger

	// sources mirrors the scheduler queue: one entry per queued move, in
	// start order.
	sources []string

	// pending holds started moves not yet written to the journal.
	pending []journal.Entry

	// recent holds the last few started moves, oldest first.
	recent  []gocube.Move
	started int
}

const (
	recentMoves = 12

	// flushThreshold forces a flush mid-animation on long queues.
	flushThreshold = 32
)

// newSession wires a simulator to the journal unless --no-journal is set.
// A journal that fails to open is logged and skipped.
func newSession(log logrus.FieldLogger, opts ...gocube.Option) *session {
	s := &session{
		sim: gocube.NewSimulator(simulatorOptions(log, opts...)...),
		log: log,
	}
	s.sim.OnMoveStarted(s.moveStarted)

	if noJournal {
		return s
	}

	db, err := openJournal()
	if err != nil {
		log.WithError(err).Warn("journal disabled")
		return s
	}

	rec := journal.NewRecorder(db)
	if _, err := rec.Start(version, ""); err != nil {
		log.WithError(err).Warn("journal disabled")
		db.Close()
		return s
	}

	s.db = db
	s.rec = rec
	return s
}

// perform queues a single player move.
func (s *session) perform(token string, reverse bool) bool {
	if !s.sim.PerformMove(token, reverse) {
		return false
	}
	s.sources = append(s.sources, journal.SourceInput)
	return true
}

// performSequence queues a notation sequence.
func (s *session) performSequence(seq string) []gocube.Move {
	moves := s.sim.PerformSequence(seq)
	for range moves {
		s.sources = append(s.sources, journal.SourceInput)
	}
	return moves
}

// scramble queues a random scramble.
func (s *session) scramble() []gocube.Move {
	moves := s.sim.Scramble()
	for range moves {
		s.sources = append(s.sources, journal.SourceScramble)
	}
	return moves
}

// reset cancels queued moves; they will never start, so their sources go too.
func (s *session) reset() {
	s.sim.Reset()
	s.sources = s.sources[:0]
}

func (s *session) remount() {
	s.sim.Remount()
	s.sources = s.sources[:0]
}

func (s *session) moveStarted(m gocube.Move) {
	source := journal.SourceInput
	if len(s.sources) > 0 {
		source = s.sources[0]
		s.sources = s.sources[1:]
	}

	s.started++
	s.recent = append(s.recent, m)
	if len(s.recent) > recentMoves {
		s.recent = s.recent[len(s.recent)-recentMoves:]
	}

	if s.rec == nil {
		return
	}
	s.pending = append(s.pending, journal.Entry{Move: m, Source: source, TsMs: s.rec.Elapsed()})
}

// flush writes pending moves to the journal in one batch. It must be called
// outside Simulator.Tick.
func (s *session) flush() {
	if s.rec == nil || len(s.pending) == 0 {
		return
	}
	if err := s.rec.RecordAll(s.pending); err != nil {
		s.log.WithError(err).WithField("moves", len(s.pending)).Warn("failed to journal moves")
	}
	s.pending = s.pending[:0]
}

// idleFlush flushes once the queue has drained or the buffer grows long.
func (s *session) idleFlush() {
	if !s.sim.IsAnimating() || len(s.pending) >= flushThreshold {
		s.flush()
	}
}

// sessionID returns the journal session, or "" when not journalling.
func (s *session) sessionID() string {
	if s.rec == nil {
		return ""
	}
	return s.rec.SessionID()
}

// close flushes pending moves and ends the journal session.
func (s *session) close() {
	if s.rec == nil {
		return
	}
	s.flush()
	if err := s.rec.End(); err != nil {
		s.log.WithError(err).Warn("failed to end journal session")
	}
	s.db.Close()
}
