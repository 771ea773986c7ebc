package journal

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// State represents where a recorder is in its session lifecycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	ErrSessionActive   = errors.New("journal: session already in progress")
	ErrNoActiveSession = errors.New("journal: no session in progress")
)

// Recorder writes the moves of one simulator session to the journal.
type Recorder struct {
	mu        sync.Mutex
	state     State
	sessionID string
	startTime time.Time
	moveIndex int

	sessions *SessionRepository
	moves    *MoveRepository

	now func() time.Time
}

// NewRecorder creates an idle recorder backed by db.
func NewRecorder(db *DB) *Recorder {
	return &Recorder{
		state:    StateIdle,
		sessions: NewSessionRepository(db),
		moves:    NewMoveRepository(db),
		now:      time.Now,
	}
}

// State returns the current recorder state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SessionID returns the active or most recent session ID.
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// MoveCount returns the number of moves recorded in this session.
func (r *Recorder) MoveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveIndex
}

// Start opens a new session.
func (r *Recorder) Start(appVersion, notes string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording {
		return "", ErrSessionActive
	}

	id, err := r.sessions.Create(appVersion, notes)
	if err != nil {
		return "", err
	}

	r.sessionID = id
	r.startTime = r.now()
	r.moveIndex = 0
	r.state = StateRecording

	return id, nil
}

// Elapsed returns milliseconds since the session started.
func (r *Recorder) Elapsed() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.now().Sub(r.startTime).Milliseconds()
}

// RecordAll appends entries after the session's last stored move, in one
// transaction.
func (r *Recorder) RecordAll(entries []Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNoActiveSession
	}
	if len(entries) == 0 {
		return nil
	}

	next, err := r.moves.NextIndex(r.sessionID)
	if err != nil {
		return err
	}
	if err := r.moves.CreateBatch(r.sessionID, next, entries); err != nil {
		return fmt.Errorf("failed to record %d moves: %w", len(entries), err)
	}
	r.moveIndex = next + len(entries)

	return nil
}

// End closes the session.
func (r *Recorder) End() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNoActiveSession
	}

	if err := r.sessions.End(r.sessionID); err != nil {
		return err
	}
	r.state = StateEnded

	return nil
}
