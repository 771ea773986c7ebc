// Package cli implements the command-line interface for gocube-sim.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_simulator"
	"github.com/SeamusWaldron/gocube_simulator/internal/journal"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath    string
	noJournal bool
	verbose   bool
	speed     float64
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube-sim",
	Short: "GoCube Simulator",
	Long: `GoCube Simulator - an animated 3x3x3 cube driven by standard move notation.

Play interactively in the terminal, apply move sequences headlessly, and
browse the journal of moves played in earlier sessions.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (default: ~/.gocube_sim/journal.db)")
	rootCmd.PersistentFlags().BoolVar(&noJournal, "no-journal", false, "Do not record moves to the journal")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Float64Var(&speed, "speed", 1.0, "Move speed multiplier")
}

// newLogger returns the logger handed to the simulator.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// simulatorOptions collects the options implied by the global flags.
func simulatorOptions(log logrus.FieldLogger, extra ...gocube.Option) []gocube.Option {
	opts := []gocube.Option{
		gocube.WithLogger(log),
		gocube.WithMoveSpeed(speed),
	}
	return append(opts, extra...)
}

// openJournal opens the journal database from flag or default.
func openJournal() (*journal.DB, error) {
	if dbPath != "" {
		return journal.Open(dbPath)
	}
	return journal.OpenDefault()
}
