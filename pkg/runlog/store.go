// Copyright 2023 The Riserctl Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runlog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/boltdb/bolt"
	"github.com/riserctl/riserctl/pkg/log"
)

var (
	// ErrNotFound is returned for lookups of unknown run ids.
	ErrNotFound = errors.New("run not found")
	// ErrIllegalTransition is returned for state changes out of a terminal
	// state.
	ErrIllegalTransition = errors.New("run is already in a terminal state")
)

var (
	runsBucket    = []byte("runs")
	byStartBucket = []byte("runs-by-start")
	authBucket    = []byte("auth")

	tokenHashKey = []byte("token-bcrypt")
)

// Store is the bolt-backed run registry. All riserctl processes sharing a
// database directory share one view of run state; bolt's file lock keeps
// concurrent commands from racing. Holders are expected to be short-lived
// (the agent being the one deliberate exception), and Open gives up on a
// contended lock rather than wait forever.
type Store struct {
	logger *log.Logger
	db     *bolt.DB
}

// DefaultOpenTimeout bounds the wait for the registry's file lock.
const DefaultOpenTimeout = 5 * time.Second

// Open opens (creating if needed) the registry under dir. A registry whose
// lock is held elsewhere past DefaultOpenTimeout is reported as an error
// rather than blocking indefinitely.
func Open(logger *log.Logger, dir string) (*Store, error) {
	return open(logger, dir, DefaultOpenTimeout)
}

func open(logger *log.Logger, dir string, timeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path.Join(dir, "runs.db"), 0600, &bolt.Options{Timeout: timeout})
	if err == bolt.ErrTimeout {
		return nil, fmt.Errorf(
			"registry %s is locked by another riserctl process (an agent, or a command mid-update)", dir)
	}
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{runsBucket, byStartBucket, authBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("create bucket: %s", err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{logger: logger, db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new record. The id must be unused.
func (s *Store) Create(rec *Record) error {
	if rec.ID == "" {
		return errors.New("record has no id")
	}
	if rec.State == "" {
		rec.State = StateRunning
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}

	encoded, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runsBucket)
		if runs.Get([]byte(rec.ID)) != nil {
			return fmt.Errorf("run id %s already registered", rec.ID)
		}
		if err := runs.Put([]byte(rec.ID), encoded); err != nil {
			return err
		}
		return tx.Bucket(byStartBucket).Put(startKey(rec), []byte(rec.ID))
	})
}

// Get returns the record for the given id.
func (s *Store) Get(id string) (*Record, error) {
	var rec *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		encoded := tx.Bucket(runsBucket).Get([]byte(id))
		if encoded == nil {
			return ErrNotFound
		}
		var err error
		rec, err = decodeRecord(encoded)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all records, most recently started first.
func (s *Store) List() ([]*Record, error) {
	var recs []*Record
	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runsBucket)
		c := tx.Bucket(byStartBucket).Cursor()
		for k, id := c.Last(); k != nil; k, id = c.Prev() {
			encoded := runs.Get(id)
			if encoded == nil {
				// Index entry without a record; skip rather than fail the
				// whole listing.
				s.logger.Warnf("dangling start index entry for run %s", string(id))
				continue
			}
			rec, err := decodeRecord(encoded)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Running returns the records still in StateRunning, most recent first.
func (s *Store) Running() ([]*Record, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var recs []*Record
	for _, rec := range all {
		if rec.State == StateRunning {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// Finish moves a running record into a terminal state, recording the exit
// code (use -1 when none was observed) and optional error text.
func (s *Store) Finish(id string, state State, exitCode int, errText string) error {
	if !state.Terminal() {
		return fmt.Errorf("state %q is not terminal", state)
	}
	return s.mutate(id, func(rec *Record) error {
		if rec.State.Terminal() {
			return ErrIllegalTransition
		}
		rec.State = state
		rec.ExitCode = exitCode
		rec.Error = errText
		rec.FinishedAt = time.Now().UTC()
		return nil
	})
}

// CreateAt opens the registry at dir just long enough to insert rec. A
// launcher supervising a run for hours must not sit on the registry's file
// lock in the meantime; every other command on the host opens the same
// database.
func CreateAt(logger *log.Logger, dir string, rec *Record) error {
	store, err := Open(logger, dir)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Create(rec)
}

// FinishAt is CreateAt's counterpart for recording a run's ending.
func FinishAt(logger *log.Logger, dir string, id string, state State, exitCode int, errText string) error {
	store, err := Open(logger, dir)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Finish(id, state, exitCode, errText)
}

// Reconcile sweeps running records, marking as lost the ones whose process is
// gone. Liveness is probed through alive, injectable for tests. Returns the
// ids of the records it marked.
func (s *Store) Reconcile(alive func(pid int) bool) ([]string, error) {
	running, err := s.Running()
	if err != nil {
		return nil, err
	}

	var lost []string
	for _, rec := range running {
		if alive(rec.PID) {
			continue
		}
		err := s.Finish(rec.ID, StateLost, -1, "process vanished without an observed exit")
		if err == ErrIllegalTransition {
			// Another command reconciled it first.
			continue
		}
		if err != nil {
			return lost, err
		}
		s.logger.Infof("run %s (pid %d) marked lost", rec.ID, rec.PID)
		lost = append(lost, rec.ID)
	}
	return lost, nil
}

// SetTokenHash stores the agent access token's bcrypt hash.
func (s *Store) SetTokenHash(hash []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(authBucket).Put(tokenHashKey, hash)
	})
}

// TokenHash returns the stored token hash, or nil when none is set.
func (s *Store) TokenHash() ([]byte, error) {
	var hash []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(authBucket).Get(tokenHashKey); b != nil {
			hash = append([]byte(nil), b...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hash, nil
}

// mutate loads, edits, and rewrites one record in a single transaction.
func (s *Store) mutate(id string, edit func(*Record) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runsBucket)
		encoded := runs.Get([]byte(id))
		if encoded == nil {
			return ErrNotFound
		}
		rec, err := decodeRecord(encoded)
		if err != nil {
			return err
		}
		if err := edit(rec); err != nil {
			return err
		}
		encoded, err = encodeRecord(rec)
		if err != nil {
			return err
		}
		return runs.Put([]byte(id), encoded)
	})
}

// startKey orders the secondary index by start time, with the id as a
// tiebreak for identical timestamps.
func startKey(rec *Record) []byte {
	key := make([]byte, 8, 8+len(rec.ID))
	binary.BigEndian.PutUint64(key, uint64(rec.StartedAt.UnixNano()))
	return append(key, rec.ID...)
}
