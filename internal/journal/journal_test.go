package journal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	gocube "github.com/SeamusWaldron/gocube_simulator"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
	if db.Path() != path {
		t.Errorf("Path = %q", db.Path())
	}
	db.Close()

	// Reopening must not reapply the migration.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if v, _ := db.CurrentVersion(); v != 1 {
		t.Errorf("version after reopen = %d", v)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	id, err := repo.Create("0.1.0", "")
	if err != nil {
		t.Fatal(err)
	}

	s, err := repo.Get(id)
	if err != nil || s == nil {
		t.Fatalf("Get: %v %v", s, err)
	}
	if s.EndedAt != nil {
		t.Error("new session already ended")
	}
	if s.AppVersion == nil || *s.AppVersion != "0.1.0" {
		t.Errorf("AppVersion = %v", s.AppVersion)
	}
	if s.Notes != nil {
		t.Errorf("Notes = %v, want nil", *s.Notes)
	}

	if err := repo.End(id); err != nil {
		t.Fatal(err)
	}
	s, _ = repo.Get(id)
	if s.EndedAt == nil {
		t.Error("EndedAt not set")
	}

	missing, err := repo.Get("nope")
	if err != nil || missing != nil {
		t.Errorf("Get(missing) = %v, %v", missing, err)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	first, _ := repo.Create("", "first")
	time.Sleep(2 * time.Millisecond)
	second, _ := repo.Create("", "second")

	sessions, err := repo.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions", len(sessions))
	}
	if sessions[0].SessionID != second || sessions[1].SessionID != first {
		t.Error("sessions not ordered newest first")
	}
}

func TestRecorder(t *testing.T) {
	db := openTestDB(t)
	rec := NewRecorder(db)

	if err := rec.RecordAll([]Entry{{Move: gocube.R, Source: SourceInput}}); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("RecordAll before Start = %v", err)
	}

	id, err := rec.Start("test", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rec.Start("test", ""); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second Start = %v", err)
	}

	var scramble []Entry
	for _, m := range []gocube.Move{gocube.U, gocube.F2, gocube.LPrime} {
		scramble = append(scramble, Entry{Move: m, Source: SourceScramble, TsMs: 5})
	}
	if err := rec.RecordAll(scramble); err != nil {
		t.Fatal(err)
	}
	if err := rec.RecordAll([]Entry{{Move: gocube.RPrime, Source: SourceInput, TsMs: rec.Elapsed()}}); err != nil {
		t.Fatal(err)
	}
	if rec.MoveCount() != 4 {
		t.Errorf("MoveCount = %d", rec.MoveCount())
	}

	if err := rec.End(); err != nil {
		t.Fatal(err)
	}
	if rec.State() != StateEnded {
		t.Errorf("state = %v", rec.State())
	}

	moves := NewMoveRepository(db)
	records, err := moves.GetBySession(id)
	if err != nil {
		t.Fatal(err)
	}
	got := Notations(records)
	want := []string{"U", "F2", "L'", "R'"}
	if len(got) != len(want) {
		t.Fatalf("notations = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %q, want %q", i, got[i], want[i])
		}
		if records[i].MoveIndex != i {
			t.Errorf("move %d has index %d", i, records[i].MoveIndex)
		}
	}
	if records[0].Source != SourceScramble || records[3].Source != SourceInput {
		t.Error("sources not recorded")
	}
	if records[2].TsMs != 5 {
		t.Errorf("entry timestamp = %d, want 5", records[2].TsMs)
	}
	if records[3].Axis != "x" || records[3].Direction != 1 || records[3].Degrees != 90 {
		t.Errorf("R' stored as %+v", records[3])
	}

	next, _ := moves.NextIndex(id)
	if next != 4 {
		t.Errorf("NextIndex = %d", next)
	}

	s, _ := NewSessionRepository(db).Get(id)
	if s.MoveCount != 4 {
		t.Errorf("session MoveCount = %d", s.MoveCount)
	}
}

func TestDeleteCascadesMoves(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	id, _ := sessions.Create("", "")
	if _, err := moves.Create(id, 0, 0, gocube.M, SourceInput); err != nil {
		t.Fatal(err)
	}
	if err := sessions.Delete(id); err != nil {
		t.Fatal(err)
	}
	if n, _ := moves.Count(id); n != 0 {
		t.Errorf("%d moves survived session delete", n)
	}
}
