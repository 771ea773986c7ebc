package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_simulator"
)

var applyCmd = &cobra.Command{
	Use:   "apply <sequence>",
	Short: "Apply a move sequence headlessly and print the result",
	Long: `Queue a move sequence, animate it with a fixed frame step until the cube
is idle, then print the facelet net and the lattice check.

Unrecognised tokens are reported and skipped.

Examples:
  gocube-sim apply "R U R' U'"
  gocube-sim apply R U2 F' --dt 5ms`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var (
	applyDt       time.Duration
	applyMaxTicks int
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().DurationVar(&applyDt, "dt", 16*time.Millisecond, "Frame step used to animate")
	applyCmd.Flags().IntVar(&applyMaxTicks, "max-ticks", 1_000_000, "Give up after this many frames")
}

func runApply(cmd *cobra.Command, args []string) error {
	if applyDt <= 0 {
		return fmt.Errorf("--dt must be positive, got %v", applyDt)
	}

	seq := strings.Join(args, " ")
	if err := gocube.ValidateMoves(seq); err != nil {
		fmt.Printf("Warning: %v (skipped)\n", err)
	}

	s := newSession(newLogger())
	defer s.close()

	moves := s.performSequence(seq)
	if len(moves) == 0 {
		return fmt.Errorf("no valid moves in %q", seq)
	}

	return printResult(s, moves)
}

// printResult animates the queued moves to completion and prints the net.
func printResult(s *session, moves []gocube.Move) error {
	ticks := s.sim.RunUntilIdle(applyDt, applyMaxTicks)
	if s.sim.IsAnimating() {
		return fmt.Errorf("still animating after %d frames", ticks)
	}

	fmt.Printf("Moves:  %s (%d)\n", gocube.FormatMoves(moves), len(moves))
	fmt.Printf("Frames: %d at %v (%v simulated)\n", ticks, applyDt, time.Duration(ticks)*applyDt)
	if id := s.sessionID(); id != "" {
		fmt.Printf("Session: %s\n", id)
	}
	fmt.Println()
	fmt.Print(s.sim.Facelets().String())
	fmt.Println()

	if err := s.sim.Ensemble().CheckLattice(); err != nil {
		return err
	}
	fmt.Println("Lattice: ok")
	return nil
}
