package gocube

import (
	"io"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultAngularRate turns a quarter turn in 250ms at speed 1.
	DefaultAngularRate = 2 * math.Pi

	// DefaultScrambleLength is the number of turns Scramble enqueues.
	DefaultScrambleLength = 20

	// DefaultScrambleSpeed makes scramble turns faster than interactive ones.
	DefaultScrambleSpeed = 3.0
)

// RandSource supplies uniform integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// globalRand draws from the auto-seeded math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configures Simulator and Scheduler behavior.
type Option func(*config)

type config struct {
	angularRate    float64
	moveSpeed      float64
	scrambleLength int
	scrambleSpeed  float64
	rng            RandSource
	logger         logrus.FieldLogger
}

func defaultConfig() *config {
	return &config{
		angularRate:    DefaultAngularRate,
		moveSpeed:      1,
		scrambleLength: DefaultScrambleLength,
		scrambleSpeed:  DefaultScrambleSpeed,
		rng:            globalRand{},
		logger:         discardLogger(),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithAngularRate sets the base turning rate in radians per second at speed 1.
// Non-positive values are ignored.
func WithAngularRate(radiansPerSecond float64) Option {
	return func(c *config) {
		if radiansPerSecond > 0 {
			c.angularRate = radiansPerSecond
		}
	}
}

// WithMoveSpeed sets the default speed multiplier for PerformMove and
// PerformSequence when the caller passes none.
func WithMoveSpeed(speed float64) Option {
	return func(c *config) {
		if speed > 0 {
			c.moveSpeed = speed
		}
	}
}

// WithScrambleLength sets how many turns Scramble enqueues.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.scrambleLength = n
		}
	}
}

// WithScrambleSpeed sets the speed multiplier of scramble turns.
func WithScrambleSpeed(speed float64) Option {
	return func(c *config) {
		if speed > 0 {
			c.scrambleSpeed = speed
		}
	}
}

// WithRand sets the random source used by Scramble.
// Pass a seeded *rand.Rand for reproducible scrambles.
func WithRand(rng RandSource) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets the logger for move start, commit and reset events.
// Events are logged at Debug level. The default logger discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
