package gocube

import (
	"fmt"
	"math"
)

const (
	// PieceCount is the number of pieces in a 3x3x3 cube, core included.
	PieceCount = 27

	// sliceSize is the number of pieces in one layer.
	sliceSize = 9

	// selectTolerance is how close a coordinate must be to a slice value.
	selectTolerance = 0.1
)

// Ensemble is the shared set of 27 pieces. The scheduler is its only writer.
type Ensemble struct {
	pieces []*Piece
}

// NewEnsemble builds the 27 pieces in their home cells, identity oriented.
func NewEnsemble() *Ensemble {
	e := &Ensemble{}
	e.rebuild()
	return e
}

func (e *Ensemble) rebuild() {
	e.pieces = make([]*Piece, 0, PieceCount)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				e.pieces = append(e.pieces, newPiece(len(e.pieces), Cell{X: x, Y: y, Z: z}))
			}
		}
	}
}

// Pieces returns the pieces in ID order.
func (e *Ensemble) Pieces() []*Piece {
	out := make([]*Piece, len(e.pieces))
	copy(out, e.pieces)
	return out
}

// Len returns the number of pieces.
func (e *Ensemble) Len() int {
	return len(e.pieces)
}

// matches is the geometric selection predicate for m.
func matches(p *Piece, m Move) bool {
	if m.WholeCube {
		return true
	}

	c := component(p.position, m.Axis)
	if m.MiddleLayer {
		return math.Abs(c) < selectTolerance
	}

	for _, v := range m.Layers.Values() {
		if math.Abs(c-float64(v)) < selectTolerance {
			return true
		}
	}
	return false
}

// expectedSelection is the piece count a move must select on a sound cube.
func expectedSelection(m Move) int {
	if m.WholeCube {
		return PieceCount
	}
	if m.MiddleLayer {
		return sliceSize
	}
	return sliceSize * m.Layers.Len()
}

// Select returns the pieces m turns. A count other than 27 for whole-cube
// moves or 9 per slice otherwise means the ensemble is corrupt, and Select
// panics with ErrSelection.
func (e *Ensemble) Select(m Move) []*Piece {
	selected := make([]*Piece, 0, PieceCount)
	for _, p := range e.pieces {
		if matches(p, m) {
			selected = append(selected, p)
		}
	}

	if want := expectedSelection(m); want == 0 || len(selected) != want {
		panic(fmt.Errorf("%w: %s on axis %s selected %d pieces, want %d",
			ErrSelection, m.Notation(), m.Axis, len(selected), want))
	}
	return selected
}

// Snap forces every piece onto the nearest lattice cell and the nearest
// axis-aligned orientation.
func (e *Ensemble) Snap() {
	for _, p := range e.pieces {
		p.snap()
	}
}

// CheckLattice returns an error wrapping ErrLatticeViolation for the first
// piece whose committed pose is off the lattice.
func (e *Ensemble) CheckLattice() error {
	for _, p := range e.pieces {
		if !p.onLattice() {
			return fmt.Errorf("%w: piece %d at %+v orientation %v",
				ErrLatticeViolation, p.id, p.position, p.orientation)
		}
	}
	return nil
}

// PieceState is the quiescent state of one piece.
type PieceState struct {
	ID          int
	Cell        Cell
	Orientation int // Index into the 24 axis-aligned rotations
}

// Snapshot is the state of every piece, in ID order.
type Snapshot []PieceState

// Snapshot captures the committed configuration.
func (e *Ensemble) Snapshot() Snapshot {
	s := make(Snapshot, len(e.pieces))
	for i, p := range e.pieces {
		o, _ := OrientationIndex(p.orientation)
		s[i] = PieceState{ID: p.id, Cell: p.Cell(), Orientation: o}
	}
	return s
}

// Equal reports whether two snapshots describe the same configuration.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
