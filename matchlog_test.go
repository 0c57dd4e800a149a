package main

import (
	"path/filepath"
	"testing"

	"recess-server/protocol"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMatchLogRecordsLifecycle(t *testing.T) {
	db := openTestDB(t)
	mlog := NewMatchLog(db)

	mlog.RecordStart("room1", 2, 1)
	mlog.RecordEnd("room1", protocol.WinnerTeacher, 42.5)
	mlog.RecordEvents("room1", 10, []protocol.Event{
		{Type: protocol.EventThrow, EggID: 1},
		{Type: protocol.EventSplat, X: 900, Y: 100},
	})
	mlog.Close() // flushes the buffer

	n, err := db.CountMatches()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 match, got %d", n)
	}

	batches, err := db.EventsForRoom("room1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("expected one batch of two events, got %+v", batches)
	}
	if batches[0][0].Type != protocol.EventThrow || batches[0][0].EggID != 1 {
		t.Errorf("throw event did not round-trip, got %+v", batches[0][0])
	}
	if batches[0][1].X != 900 || batches[0][1].Y != 100 {
		t.Errorf("splat position did not round-trip, got %+v", batches[0][1])
	}
}

func TestMatchLogEmptyEventBatchesSkipped(t *testing.T) {
	db := openTestDB(t)
	mlog := NewMatchLog(db)

	mlog.RecordEvents("room1", 1, nil)
	mlog.Close()

	batches, err := db.EventsForRoom("room1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(batches) != 0 {
		t.Errorf("tick with no events should not be recorded, got %d batches", len(batches))
	}
}

func TestMatchLogNilIsDisabled(t *testing.T) {
	var mlog *MatchLog

	// Every method must be a safe no-op with logging disabled
	mlog.RecordStart("room1", 1, 1)
	mlog.RecordEnd("room1", protocol.WinnerPupil, 10)
	mlog.RecordAbandon("room1", protocol.RoleTeacher1)
	mlog.RecordEvents("room1", 1, []protocol.Event{{Type: protocol.EventThrow}})
	mlog.Close()

	if NewMatchLog(nil) != nil {
		t.Error("a nil db should disable the log")
	}
}
