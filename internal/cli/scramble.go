package cli

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_simulator"
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Scramble a solved cube and print the result",
	Long: `Queue a random scramble of outer-layer turns, animate it until the cube is
idle and print the sequence and facelet net.

Pass --seed to reproduce a scramble.`,
	Args: cobra.NoArgs,
	RunE: runScramble,
}

var (
	scrambleSeed   uint64
	scrambleLength int
)

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed (default: random)")
	scrambleCmd.Flags().IntVarP(&scrambleLength, "length", "n", gocube.DefaultScrambleLength, "Number of scramble moves")
	scrambleCmd.Flags().DurationVar(&applyDt, "dt", 16*time.Millisecond, "Frame step used to animate")
	scrambleCmd.Flags().IntVar(&applyMaxTicks, "max-ticks", 1_000_000, "Give up after this many frames")
}

func runScramble(cmd *cobra.Command, args []string) error {
	opts := []gocube.Option{gocube.WithScrambleLength(scrambleLength)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, gocube.WithRand(rand.New(rand.NewPCG(scrambleSeed, scrambleSeed))))
	}

	s := newSession(newLogger(), opts...)
	defer s.close()

	return printResult(s, s.scramble())
}
