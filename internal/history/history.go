// Package history keeps a bounded persistent log of command executions
// for operator diagnosis: what ran, where, and how it ended.
//
// Only outcome metadata is stored. Stdout and stderr may carry cluster
// data and never touch the database.
package history

import (
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

const executionsBucket = "executions"

// Entry records one command execution.
type Entry struct {
	// ID is assigned on append, monotonically increasing.
	ID uint64 `json:"id"`

	// StartedAt is when the execution began.
	StartedAt time.Time `json:"started_at"`

	// Program is the command the caller asked for (kubectl, helm),
	// before any ssh wrapping.
	Program string `json:"program"`

	// CommandLine is the fully resolved invocation as executed,
	// space-joined. In remote mode this is the ssh command line.
	CommandLine string `json:"command_line"`

	// Target is the remote destination ("user@host" or bare host),
	// empty for local executions.
	Target string `json:"target,omitempty"`

	// ExitCode is the process exit code, -1 for timeout or signal death.
	ExitCode int `json:"exit_code"`

	// DurationMs is the execution wall time in milliseconds.
	DurationMs int64 `json:"duration_ms"`

	// TimedOut is true when the execution was killed by its timeout.
	TimedOut bool `json:"timed_out"`
}

// Log is the bbolt-backed execution history.
type Log struct {
	db *bolt.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Log, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(executionsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Log{db: db}, nil
}

// Append stores e with the next sequence ID.
func (l *Log) Append(e Entry) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(executionsBucket))

		id, _ := b.NextSequence()
		e.ID = id

		data, err := json.Marshal(&e)
		if err != nil {
			return err
		}

		return b.Put(itob(id), data)
	})
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	var entries []Entry

	err := l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(executionsBucket))
		c := b.Cursor()

		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})

	return entries, err
}

// Prune deletes the oldest entries until at most max remain.
func (l *Log) Prune(max int) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(executionsBucket))

		excess := b.Stats().KeyN - max
		if excess <= 0 {
			return nil
		}

		c := b.Cursor()
		for k, _ := c.First(); k != nil && excess > 0; k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
			excess--
		}
		return nil
	})
}

// Count returns the number of stored entries.
func (l *Log) Count() (int, error) {
	var count int
	err := l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(executionsBucket))
		count = b.Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the database.
func (l *Log) Close() error {
	return l.db.Close()
}

// itob converts uint64 to big-endian bytes for ordered keys
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
