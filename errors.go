package gocube

import "errors"

// Sentinel errors for the gocube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("gocube: invalid move notation")

	// Invariant violations. These indicate a programming defect and are
	// raised as panics by the scheduler; they are exported so callers and
	// tests can recover and match them with errors.Is.
	ErrSelection        = errors.New("gocube: unexpected piece selection")
	ErrLatticeViolation = errors.New("gocube: piece off the lattice")
	ErrMalformedMove    = errors.New("gocube: malformed move")
)
