package journal

import (
	"database/sql"
	"fmt"

	gocube "github.com/SeamusWaldron/gocube_simulator"
)

// Move sources.
const (
	SourceInput    = "input"
	SourceScramble = "scramble"
)

// MoveRecord represents a move in the database.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Notation  string
	Axis      string
	Direction int
	Degrees   int
	Source    string
}

// Entry is a move waiting to be written, stamped when it started.
type Entry struct {
	Move   gocube.Move
	Source string
	TsMs   int64 // Milliseconds since session start
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, move_index, ts_ms, notation, axis, direction, degrees, source)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// Create stores one move and returns its ID.
func (r *MoveRepository) Create(sessionID string, moveIndex int, tsMs int64, move gocube.Move, source string) (int64, error) {
	result, err := r.db.Exec(insertMove,
		sessionID, moveIndex, tsMs, move.Notation(), move.Axis.String(), move.Direction, move.Degrees, source)
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch stores entries with consecutive indexes in one transaction.
func (r *MoveRepository) CreateBatch(sessionID string, startIndex int, entries []Entry) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, e := range entries {
			m := e.Move
			_, err := tx.Exec(insertMove,
				sessionID, startIndex+i, e.TsMs, m.Notation(), m.Axis.String(), m.Direction, m.Degrees, e.Source)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves for a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, notation, axis, direction, degrees, source
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs, &m.Notation, &m.Axis, &m.Direction, &m.Degrees, &m.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves recorded for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// NextIndex returns the index the next move in a session should use.
func (r *MoveRepository) NextIndex(sessionID string) (int, error) {
	var next int
	err := r.db.QueryRow(
		"SELECT COALESCE(MAX(move_index) + 1, 0) FROM moves WHERE session_id = ?", sessionID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next move index: %w", err)
	}
	return next, nil
}

// Notations returns the session's moves as a notation sequence that
// gocube.ParseMoves accepts.
func Notations(records []MoveRecord) []string {
	out := make([]string, len(records))
	for i, m := range records {
		out[i] = m.Notation
	}
	return out
}
