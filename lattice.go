package gocube

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// latticeTolerance bounds how far a committed pose may sit from the lattice
// before it counts as a violation.
const latticeTolerance = 1e-6

var identity = quat.Number{Real: 1}

// Cell is an integer lattice position with coordinates in {-1, 0, 1}.
type Cell struct {
	X, Y, Z int
}

// Coord returns the cell's coordinate on axis a.
func (c Cell) Coord(a Axis) int {
	switch a {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	default:
		return c.Z
	}
}

// Vec returns the cell as a real vector.
func (c Cell) Vec() r3.Vec {
	return r3.Vec{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)}
}

func axisVec(a Axis) r3.Vec {
	switch a {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	default:
		return r3.Vec{Z: 1}
	}
}

func component(v r3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// axisRotation returns the unit quaternion turning angle radians about a,
// counter-clockwise when viewed from the positive end of the axis.
func axisRotation(a Axis, angle float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	v := axisVec(a)
	return quat.Number{Real: c, Imag: s * v.X, Jmag: s * v.Y, Kmag: s * v.Z}
}

// rotateVec applies the unit quaternion q to v.
func rotateVec(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

func dot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// canonical picks the sign of q so that its first non-zero component is
// positive; q and -q describe the same rotation.
func canonical(q quat.Number) quat.Number {
	for _, c := range [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag} {
		if math.Abs(c) < latticeTolerance {
			continue
		}
		if c < 0 {
			return quat.Scale(-1, q)
		}
		return q
	}
	return q
}

// alignedRotations holds the 24 rotations that map the lattice onto itself,
// in canonical sign. Index 0 is the identity.
var alignedRotations = enumerateAligned()

func enumerateAligned() []quat.Number {
	quarter := [3]quat.Number{
		axisRotation(AxisX, math.Pi/2),
		axisRotation(AxisY, math.Pi/2),
		axisRotation(AxisZ, math.Pi/2),
	}

	found := []quat.Number{identity}
	for i := 0; i < len(found); i++ {
		for _, q := range quarter {
			next := canonical(quat.Mul(q, found[i]))
			known := false
			for _, f := range found {
				if math.Abs(dot(f, next)) > 1-latticeTolerance {
					known = true
					break
				}
			}
			if !known {
				found = append(found, next)
			}
		}
	}
	return found
}

// nearestAligned returns the index of the axis-aligned rotation closest to q
// and the absolute cosine-like similarity between them (1 means equal).
func nearestAligned(q quat.Number) (int, float64) {
	n := quat.Abs(q)
	if n == 0 {
		return 0, 0
	}
	q = quat.Scale(1/n, q)

	best, bestDot := 0, -1.0
	for i, a := range alignedRotations {
		if d := math.Abs(dot(q, a)); d > bestDot {
			best, bestDot = i, d
		}
	}
	return best, bestDot
}

// snapOrientation returns the axis-aligned rotation nearest to q.
func snapOrientation(q quat.Number) quat.Number {
	i, _ := nearestAligned(q)
	return alignedRotations[i]
}

// snapPosition rounds every coordinate to the nearest integer.
func snapPosition(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: scalar.Round(v.X, 0),
		Y: scalar.Round(v.Y, 0),
		Z: scalar.Round(v.Z, 0),
	}
}

// onLattice reports whether v sits on a cell of the 3x3x3 grid.
func onLattice(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		r := math.Round(c)
		if r < -1 || r > 1 || !scalar.EqualWithinAbs(c, r, latticeTolerance) {
			return false
		}
	}
	return true
}

// aligned reports whether q is a multiple of 90 degrees on every axis.
func aligned(q quat.Number) bool {
	_, d := nearestAligned(q)
	return d > 1-latticeTolerance
}

// OrientationIndex identifies an axis-aligned orientation as an index in
// [0, 24). The second result is false when q is not axis-aligned.
func OrientationIndex(q quat.Number) (int, bool) {
	i, d := nearestAligned(q)
	return i, d > 1-latticeTolerance
}
