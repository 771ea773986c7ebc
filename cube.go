package gocube

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved

	NoColor Color = 0xFF // Inner, unpainted face
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	case NoColor:
		return "."
	default:
		return "?"
	}
}

// CubeFace represents a face of the facelet view.
// This is distinct from the notation letters, which name moves.
type CubeFace int

const (
	CubeFaceU CubeFace = 0 // Up
	CubeFaceD CubeFace = 1 // Down
	CubeFaceF CubeFace = 2 // Front
	CubeFaceB CubeFace = 3 // Back
	CubeFaceR CubeFace = 4 // Right
	CubeFaceL CubeFace = 5 // Left
)

func (f CubeFace) String() string {
	switch f {
	case CubeFaceU:
		return "U"
	case CubeFaceD:
		return "D"
	case CubeFaceF:
		return "F"
	case CubeFaceB:
		return "B"
	case CubeFaceR:
		return "R"
	case CubeFaceL:
		return "L"
	default:
		return "?"
	}
}

// Cube is a flat view of the ensemble: the 54 visible stickers.
// Each face has 9 facelets indexed as seen when looking at that face
// (U with F at the bottom, D with F at the top):
//
//	0 1 2
//	3 4 5
//	6 7 8
type Cube struct {
	// Facelets[face][position] = color
	Facelets [6][9]Color
}

// Facelets projects the committed pose of every piece onto the six faces.
func (e *Ensemble) Facelets() *Cube {
	c := &Cube{}
	for f := range c.Facelets {
		for i := range c.Facelets[f] {
			c.Facelets[f][i] = NoColor
		}
	}

	for _, p := range e.pieces {
		cell := p.Cell()
		for s := SidePosX; s <= SideNegZ; s++ {
			color := p.paint[s]
			if color == NoColor {
				continue
			}
			face, index := facelet(cell, rotateVec(p.orientation, s.normal()))
			c.Facelets[face][index] = color
		}
	}
	return c
}

// facelet maps a sticker at cell with world normal n to its face and index.
func facelet(cell Cell, n r3.Vec) (CubeFace, int) {
	var face CubeFace
	var row, col int

	switch {
	case math.Round(n.Y) == 1:
		face, row, col = CubeFaceU, cell.Z+1, cell.X+1
	case math.Round(n.Y) == -1:
		face, row, col = CubeFaceD, 1-cell.Z, cell.X+1
	case math.Round(n.Z) == 1:
		face, row, col = CubeFaceF, 1-cell.Y, cell.X+1
	case math.Round(n.Z) == -1:
		face, row, col = CubeFaceB, 1-cell.Y, 1-cell.X
	case math.Round(n.X) == 1:
		face, row, col = CubeFaceR, 1-cell.Y, 1-cell.Z
	default:
		face, row, col = CubeFaceL, 1-cell.Y, cell.Z+1
	}

	return face, row*3 + col
}

// Face returns the nine facelets of face f.
func (c *Cube) Face(f CubeFace) [9]Color {
	return c.Facelets[f]
}

// String returns a text representation of the cube.
func (c *Cube) String() string {
	var b strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[CubeFaceU][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []CubeFace{CubeFaceL, CubeFaceF, CubeFaceR, CubeFaceB} {
			for col := 0; col < 3; col++ {
				b.WriteString(c.Facelets[face][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[CubeFaceD][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Debug returns a simple debug string.
func (c *Cube) Debug() string {
	painted := 0
	for f := range c.Facelets {
		for _, color := range c.Facelets[f] {
			if color != NoColor {
				painted++
			}
		}
	}
	return fmt.Sprintf("Facelets: %d/54", painted)
}
