// Package analysis derives statistics from journalled sessions.
package analysis

import (
	"sort"

	"github.com/SeamusWaldron/gocube_simulator/internal/journal"
)

// SessionSummary contains statistics for a single session.
type SessionSummary struct {
	SessionID      string         `json:"session_id"`
	DurationMs     int64          `json:"duration_ms"`
	TotalMoves     int            `json:"total_moves"`
	InputMoves     int            `json:"input_moves"`
	ScrambleMoves  int            `json:"scramble_moves"`
	QuarterTurns   int            `json:"quarter_turns"`
	TPS            float64        `json:"tps"`
	LongestPauseMs int64          `json:"longest_pause_ms"`
	AxisCounts     map[string]int `json:"axis_counts"`
	MostUsed       []string       `json:"most_used"`
}

// Summarize computes a session summary. Only input moves count towards
// timing; scramble moves are queued in one burst.
func Summarize(sessionID string, moves []journal.MoveRecord) *SessionSummary {
	s := &SessionSummary{
		SessionID:  sessionID,
		TotalMoves: len(moves),
		AxisCounts: make(map[string]int),
	}

	var input []journal.MoveRecord
	counts := make(map[string]int)
	for _, m := range moves {
		s.AxisCounts[m.Axis]++
		s.QuarterTurns += m.Degrees / 90
		if m.Source == journal.SourceScramble {
			s.ScrambleMoves++
			continue
		}
		s.InputMoves++
		input = append(input, m)
		counts[m.Notation]++
	}

	if len(input) > 0 {
		s.DurationMs = input[len(input)-1].TsMs - input[0].TsMs
	}
	s.TPS = CalculateTPS(len(input), s.DurationMs)
	s.LongestPauseMs = FindLongestPause(input)
	s.MostUsed = mostUsed(counts, 3)

	return s
}

// CalculateTPS calculates turns per second.
func CalculateTPS(moves int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moves) / (float64(durationMs) / 1000.0)
}

// FindLongestPause finds the longest gap between consecutive moves.
func FindLongestPause(moves []journal.MoveRecord) int64 {
	var longest int64

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// mostUsed returns up to k notations by descending count, ties by name.
func mostUsed(counts map[string]int, k int) []string {
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > k {
		names = names[:k]
	}
	return names
}
