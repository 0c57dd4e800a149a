package main

import (
	"database/sql"
	"log"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"recess-server/protocol"
)

// DB wraps the SQLite database used for the optional match log
type DB struct {
	conn *sql.DB
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_code TEXT NOT NULL,
		teacher_count INTEGER NOT NULL DEFAULT 0,
		pupil_count INTEGER NOT NULL DEFAULT 0,
		winner TEXT NOT NULL DEFAULT '',
		duration REAL NOT NULL DEFAULT 0,
		abandoned_role TEXT NOT NULL DEFAULT '',
		finished INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS match_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_code TEXT NOT NULL,
		tick INTEGER NOT NULL,
		payload BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

const logBufSize = 1024

type logEntryKind int

const (
	logMatchStart logEntryKind = iota
	logMatchEnd
	logMatchAbandon
	logEvents
)

type logEntry struct {
	kind     logEntryKind
	room     string
	winner   string
	role     protocol.Role
	teachers int
	pupils   int
	duration float64
	tick     uint64
	payload  []byte
}

// MatchLog records match outcomes and drained simulation events to SQLite
// with a single background writer. All methods are nil-safe and
// fire-and-forget: nothing is ever read back into the simulation, and a full
// buffer drops entries rather than blocking the tick loop.
type MatchLog struct {
	db      *DB
	entries chan logEntry
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewMatchLog creates and starts the background writer. Returns nil when db
// is nil, which disables logging entirely.
func NewMatchLog(db *DB) *MatchLog {
	if db == nil {
		return nil
	}
	l := &MatchLog{
		db:      db,
		entries: make(chan logEntry, logBufSize),
		stop:    make(chan struct{}),
	}
	l.wg.Add(1)
	go l.writer()
	return l
}

// Close flushes pending entries and stops the writer
func (l *MatchLog) Close() {
	if l == nil {
		return
	}
	close(l.stop)
	l.wg.Wait()
}

// RecordStart logs the beginning of a match
func (l *MatchLog) RecordStart(room string, teachers, pupils int) {
	l.enqueue(logEntry{kind: logMatchStart, room: room, teachers: teachers, pupils: pupils})
}

// RecordEnd logs a finished match and its winner
func (l *MatchLog) RecordEnd(room, winner string, duration float64) {
	l.enqueue(logEntry{kind: logMatchEnd, room: room, winner: winner, duration: duration})
}

// RecordAbandon logs a round aborted by a mid-game disconnect
func (l *MatchLog) RecordAbandon(room string, role protocol.Role) {
	l.enqueue(logEntry{kind: logMatchAbandon, room: room, role: role})
}

// RecordEvents logs a tick's drained event list, msgpack-encoded
func (l *MatchLog) RecordEvents(room string, tick uint64, events []protocol.Event) {
	if l == nil || len(events) == 0 {
		return
	}
	payload, err := msgpack.Marshal(events)
	if err != nil {
		return
	}
	l.enqueue(logEntry{kind: logEvents, room: room, tick: tick, payload: payload})
}

func (l *MatchLog) enqueue(e logEntry) {
	if l == nil {
		return
	}
	select {
	case l.entries <- e:
	default:
		// Buffer full; drop rather than stall the game loop
	}
}

func (l *MatchLog) writer() {
	defer l.wg.Done()
	for {
		select {
		case e := <-l.entries:
			l.write(e)
		case <-l.stop:
			for {
				select {
				case e := <-l.entries:
					l.write(e)
				default:
					return
				}
			}
		}
	}
}

func (l *MatchLog) write(e logEntry) {
	var err error
	switch e.kind {
	case logMatchStart:
		_, err = l.db.conn.Exec(
			`INSERT INTO matches (room_code, teacher_count, pupil_count) VALUES (?, ?, ?)`,
			e.room, e.teachers, e.pupils)
	case logMatchEnd:
		_, err = l.db.conn.Exec(
			`UPDATE matches SET winner = ?, duration = ?, finished = 1
			 WHERE id = (SELECT id FROM matches WHERE room_code = ? AND finished = 0
			             ORDER BY id DESC LIMIT 1)`,
			e.winner, e.duration, e.room)
	case logMatchAbandon:
		_, err = l.db.conn.Exec(
			`UPDATE matches SET abandoned_role = ?, finished = 1
			 WHERE id = (SELECT id FROM matches WHERE room_code = ? AND finished = 0
			             ORDER BY id DESC LIMIT 1)`,
			string(e.role), e.room)
	case logEvents:
		_, err = l.db.conn.Exec(
			`INSERT INTO match_events (room_code, tick, payload) VALUES (?, ?, ?)`,
			e.room, e.tick, e.payload)
	}
	if err != nil {
		log.Printf("match log write error: %v", err)
	}
}

// CountMatches returns the number of recorded matches (used by tooling and
// tests; the simulation never reads the log).
func (db *DB) CountMatches() (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&n)
	return n, err
}

// EventsForRoom returns the decoded event batches recorded for a room in
// insertion order.
func (db *DB) EventsForRoom(room string) ([][]protocol.Event, error) {
	rows, err := db.conn.Query(
		`SELECT payload FROM match_events WHERE room_code = ? ORDER BY id`, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches [][]protocol.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var events []protocol.Event
		if err := msgpack.Unmarshal(payload, &events); err != nil {
			return nil, err
		}
		batches = append(batches, events)
	}
	return batches, rows.Err()
}
