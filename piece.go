package gocube

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Side names one of the six outward directions of a piece, measured in the
// piece's own frame (the frame it had when the cube was built).
type Side int

const (
	SidePosX Side = iota // Right when solved
	SideNegX             // Left when solved
	SidePosY             // Up when solved
	SideNegY             // Down when solved
	SidePosZ             // Front when solved
	SideNegZ             // Back when solved
)

func (s Side) normal() r3.Vec {
	switch s {
	case SidePosX:
		return r3.Vec{X: 1}
	case SideNegX:
		return r3.Vec{X: -1}
	case SidePosY:
		return r3.Vec{Y: 1}
	case SideNegY:
		return r3.Vec{Y: -1}
	case SidePosZ:
		return r3.Vec{Z: 1}
	default:
		return r3.Vec{Z: -1}
	}
}

// Piece is one of the 27 cubies. Its paint is fixed when the piece is built
// from its home cell and travels with the piece; it is never recomputed from
// the current position.
type Piece struct {
	id          int
	home        Cell
	position    r3.Vec
	orientation quat.Number
	paint       [6]Color
}

func newPiece(id int, home Cell) *Piece {
	return &Piece{
		id:          id,
		home:        home,
		position:    home.Vec(),
		orientation: identity,
		paint:       paintFor(home),
	}
}

// paintFor colours the outward faces of a piece at home; inner faces stay blank.
func paintFor(home Cell) [6]Color {
	p := [6]Color{NoColor, NoColor, NoColor, NoColor, NoColor, NoColor}
	if home.X == 1 {
		p[SidePosX] = Red
	}
	if home.X == -1 {
		p[SideNegX] = Orange
	}
	if home.Y == 1 {
		p[SidePosY] = White
	}
	if home.Y == -1 {
		p[SideNegY] = Yellow
	}
	if home.Z == 1 {
		p[SidePosZ] = Green
	}
	if home.Z == -1 {
		p[SideNegZ] = Blue
	}
	return p
}

// ID returns the piece's stable identifier in [0, 27).
func (p *Piece) ID() int { return p.id }

// Home returns the cell the piece occupied when the cube was built.
func (p *Piece) Home() Cell { return p.home }

// Position returns the committed world position.
func (p *Piece) Position() r3.Vec { return p.position }

// Orientation returns the committed world orientation as a unit quaternion.
func (p *Piece) Orientation() quat.Number { return p.orientation }

// Sticker returns the colour painted on side s, or NoColor for inner faces.
func (p *Piece) Sticker(s Side) Color { return p.paint[s] }

// Cell returns the committed position rounded to the lattice.
func (p *Piece) Cell() Cell {
	v := snapPosition(p.position)
	return Cell{X: int(v.X), Y: int(v.Y), Z: int(v.Z)}
}

// rotate applies q about the cube centre to both position and orientation.
func (p *Piece) rotate(q quat.Number) {
	p.position = rotateVec(q, p.position)
	p.orientation = quat.Mul(q, p.orientation)
}

func (p *Piece) snap() {
	p.position = snapPosition(p.position)
	p.orientation = snapOrientation(p.orientation)
}

func (p *Piece) onLattice() bool {
	return onLattice(p.position) && aligned(p.orientation)
}
