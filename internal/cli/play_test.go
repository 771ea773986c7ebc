package cli

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_simulator/internal/journal"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestKeyToken(t *testing.T) {
	tests := []struct {
		key     string
		token   string
		reverse bool
		ok      bool
	}{
		{"r", "R", false, true},
		{"R", "R", true, true},
		{"alt+r", "r", false, true},
		{"alt+R", "r", true, true},
		{"b", "B", false, true},
		{"m", "M", false, true},
		{"S", "S", true, true},
		{"x", "X", false, true},
		{"Z", "Z", true, true},
		{"alt+x", "", false, false},
		{"k", "", false, false},
		{"enter", "", false, false},
		{"1", "", false, false},
	}

	for _, tt := range tests {
		token, reverse, ok := keyToken(tt.key)
		if token != tt.token || reverse != tt.reverse || ok != tt.ok {
			t.Errorf("keyToken(%q) = %q, %v, %v; want %q, %v, %v",
				tt.key, token, reverse, ok, tt.token, tt.reverse, tt.ok)
		}
	}
}

func TestSessionJournalsSources(t *testing.T) {
	dbPath = filepath.Join(t.TempDir(), "journal.db")
	noJournal = false
	t.Cleanup(func() { dbPath = "" })

	s := newSession(quietLogger())
	if s.rec == nil {
		t.Fatal("journal not opened")
	}
	id := s.sessionID()

	s.perform("R", false)
	scramble := s.scramble()
	s.performSequence("U2 M'")
	s.sim.RunUntilIdle(16*time.Millisecond, 100000)
	s.close()

	db, err := journal.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	records, err := journal.NewMoveRepository(db).GetBySession(id)
	if err != nil {
		t.Fatal(err)
	}
	if want := 1 + len(scramble) + 2; len(records) != want {
		t.Fatalf("journalled %d moves, want %d", len(records), want)
	}

	if records[0].Notation != "R" || records[0].Source != journal.SourceInput {
		t.Errorf("first record = %+v", records[0])
	}
	for i, m := range scramble {
		r := records[1+i]
		if r.Notation != m.Notation() || r.Source != journal.SourceScramble {
			t.Errorf("scramble record %d = %+v, want %s", i, r, m.Notation())
		}
	}
	last := records[len(records)-1]
	if last.Notation != "M'" || last.Source != journal.SourceInput {
		t.Errorf("last record = %+v", last)
	}

	sess, _ := journal.NewSessionRepository(db).Get(id)
	if sess == nil || sess.EndedAt == nil {
		t.Error("session not ended on close")
	}
}

func TestJournalWritesWaitUntilIdle(t *testing.T) {
	dbPath = filepath.Join(t.TempDir(), "journal.db")
	noJournal = false
	t.Cleanup(func() { dbPath = "" })

	s := newSession(quietLogger())
	defer s.close()
	moves := journal.NewMoveRepository(s.db)
	id := s.sessionID()

	m := newPlayModel(s, 60)
	start := time.Now()
	m.Update(tickMsg(start))

	s.perform("R", false)
	s.perform("U", false)
	m.Update(tickMsg(start.Add(10 * time.Millisecond)))

	if !s.sim.IsAnimating() {
		t.Fatal("R did not start")
	}
	if len(s.pending) != 1 {
		t.Errorf("%d pending entries, want 1", len(s.pending))
	}
	if n, _ := moves.Count(id); n != 0 {
		t.Errorf("%d moves written while animating", n)
	}

	now := start.Add(10 * time.Millisecond)
	for i := 0; i < 100 && s.sim.IsAnimating(); i++ {
		now = now.Add(maxFrame)
		m.Update(tickMsg(now))
	}
	if s.sim.IsAnimating() {
		t.Fatal("queue never drained")
	}

	if len(s.pending) != 0 {
		t.Errorf("%d entries left after idle", len(s.pending))
	}
	records, err := moves.GetBySession(id)
	if err != nil {
		t.Fatal(err)
	}
	if got := journal.Notations(records); len(got) != 2 || got[0] != "R" || got[1] != "U" {
		t.Errorf("journalled %v", got)
	}
	if records[1].TsMs < records[0].TsMs {
		t.Errorf("timestamps out of order: %d then %d", records[0].TsMs, records[1].TsMs)
	}
}

func TestResetDropsPendingSources(t *testing.T) {
	noJournal = true
	t.Cleanup(func() { noJournal = false })

	s := newSession(quietLogger())
	s.scramble()
	s.sim.Tick(time.Millisecond) // first scramble move starts
	s.reset()

	s.perform("F", false)
	s.sim.RunUntilIdle(16*time.Millisecond, 10000)

	if len(s.sources) != 0 {
		t.Errorf("%d sources left after idle", len(s.sources))
	}
	if n := len(s.recent); n != 2 || s.recent[n-1].Notation() != "F" {
		t.Errorf("recent = %v", s.recent)
	}
}

func TestProgressBarBounds(t *testing.T) {
	for _, frac := range []float64{0, 0.5, 1} {
		if progressBar(frac, 10) == "" {
			t.Errorf("empty bar at %v", frac)
		}
	}
}
