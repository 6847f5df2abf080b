package store

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/drinktrack.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Records
// ============================================================

func TestGetRecordMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRecord("nope")
	if !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}

func TestSetAndGetRecord(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetRecord(KeyTrackerData, `{"2025-06-03":{"units":1}}`); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetRecord(KeyTrackerData)
	if err != nil {
		t.Fatal(err)
	}
	if v != `{"2025-06-03":{"units":1}}` {
		t.Fatalf("unexpected value %q", v)
	}
}

func TestSetRecordOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.SetRecord(KeySettings, "old")
	if err := s.SetRecord(KeySettings, "new"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetRecord(KeySettings)
	if v != "new" {
		t.Fatalf("expected overwrite, got %q", v)
	}
}

func TestRecordsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	s.SetRecord(KeyTrackerData, "data")
	s.SetRecord(KeySettings, "prefs")

	d, _ := s.GetRecord(KeyTrackerData)
	p, _ := s.GetRecord(KeySettings)
	if d != "data" || p != "prefs" {
		t.Fatalf("got %q and %q", d, p)
	}
}

func TestRecordSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/drinktrack.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.SetRecord(KeyTrackerData, "persisted")
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, err := s2.GetRecord(KeyTrackerData)
	if err != nil {
		t.Fatal(err)
	}
	if v != "persisted" {
		t.Fatalf("expected persisted value, got %q", v)
	}
}
