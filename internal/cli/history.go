package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_simulator"
	"github.com/SeamusWaldron/gocube_simulator/internal/analysis"
	"github.com/SeamusWaldron/gocube_simulator/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List journalled sessions or the moves of one session",
	Long: `Without arguments, list recent sessions from the journal.
With a session ID (or a unique prefix of one), print its moves.
Add --stats for a summary, the simplified sequence and repeated patterns.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLimit int
	historyStats bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of sessions to list")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show session statistics")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openJournal()
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer db.Close()

	sessions := journal.NewSessionRepository(db)

	if len(args) == 0 {
		return listSessions(sessions)
	}

	id, err := resolveSession(sessions, args[0])
	if err != nil {
		return err
	}
	return showSession(db, sessions, id)
}

func listSessions(repo *journal.SessionRepository) error {
	list, err := repo.List(historyLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No sessions recorded")
		return nil
	}

	fmt.Printf("%-8s  %-20s  %8s  %s\n", "ID", "Started", "Moves", "Duration")
	fmt.Println(strings.Repeat("-", 52))
	for _, s := range list {
		duration := "open"
		if s.EndedAt != nil {
			duration = s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
		}
		fmt.Printf("%-8s  %-20s  %8d  %s\n",
			s.SessionID[:8], s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.MoveCount, duration)
	}
	return nil
}

// resolveSession expands an ID prefix against recent sessions.
func resolveSession(repo *journal.SessionRepository, prefix string) (string, error) {
	if s, err := repo.Get(prefix); err != nil {
		return "", err
	} else if s != nil {
		return s.SessionID, nil
	}

	list, err := repo.List(1000)
	if err != nil {
		return "", err
	}

	var match string
	for _, s := range list {
		if strings.HasPrefix(s.SessionID, prefix) {
			if match != "" {
				return "", fmt.Errorf("session prefix %q is ambiguous", prefix)
			}
			match = s.SessionID
		}
	}
	if match == "" {
		return "", fmt.Errorf("session not found: %s", prefix)
	}
	return match, nil
}

func showSession(db *journal.DB, sessions *journal.SessionRepository, id string) error {
	s, err := sessions.Get(id)
	if err != nil {
		return err
	}

	records, err := journal.NewMoveRepository(db).GetBySession(id)
	if err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", s.SessionID)
	fmt.Printf("Started: %s\n", s.StartedAt.Local().Format(time.RFC3339))
	if s.EndedAt != nil {
		fmt.Printf("Ended:   %s\n", s.EndedAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("Moves:   %d\n\n", len(records))

	for _, m := range records {
		fmt.Printf("%4d  %8s  %-4s  %-8s  axis=%s dir=%+d %d°\n",
			m.MoveIndex, formatMs(m.TsMs), m.Notation, m.Source, m.Axis, m.Direction, m.Degrees)
	}

	if len(records) > 0 {
		fmt.Printf("\nSequence: %s\n", strings.Join(journal.Notations(records), " "))
	}

	if historyStats {
		printStats(s.SessionID, records)
	}
	return nil
}

func printStats(id string, records []journal.MoveRecord) {
	sum := analysis.Summarize(id, records)

	fmt.Println()
	fmt.Println("Statistics")
	fmt.Println("----------")
	fmt.Printf("Moves:         %d (%d input, %d scramble)\n", sum.TotalMoves, sum.InputMoves, sum.ScrambleMoves)
	fmt.Printf("Quarter turns: %d\n", sum.QuarterTurns)
	fmt.Printf("Axes:          x=%d y=%d z=%d\n", sum.AxisCounts["x"], sum.AxisCounts["y"], sum.AxisCounts["z"])
	if sum.InputMoves > 1 {
		fmt.Printf("Input time:    %s (%.2f TPS)\n", formatMs(sum.DurationMs), sum.TPS)
		fmt.Printf("Longest pause: %s\n", formatMs(sum.LongestPauseMs))
	}
	if len(sum.MostUsed) > 0 {
		fmt.Printf("Most used:     %s\n", strings.Join(sum.MostUsed, " "))
	}

	notations := journal.Notations(records)
	simplified := analysis.Simplify(gocube.ParseMoves(strings.Join(notations, " "), 1))
	fmt.Printf("Simplified:    %s (%d moves)\n", gocube.FormatMoves(simplified), len(simplified))

	ts := make([]int64, len(records))
	for i, r := range records {
		ts[i] = r.TsMs
	}
	report := analysis.MineNGrams(notations, ts, 3, 6, 3)
	for n := 6; n >= 3; n-- {
		for _, ng := range report.TopNGrams[n] {
			fmt.Printf("Repeated x%-3d %s\n", ng.Count, strings.Join(ng.Sequence, " "))
		}
	}
}

// formatMs formats milliseconds as m:ss.mmm.
func formatMs(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d.%03d", int(d.Minutes()), int(d.Seconds())%60, ms%1000)
}
