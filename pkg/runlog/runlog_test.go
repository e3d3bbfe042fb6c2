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
	"encoding/json"
	"io/ioutil"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/riserctl/riserctl/pkg/launch"
	"github.com/riserctl/riserctl/pkg/log"
	"github.com/riserctl/riserctl/pkg/proquint"
)

func openTestStore(t *testing.T) (*Store, func()) {
	dir, err := ioutil.TempDir("", "runlog-test")
	if err != nil {
		t.Fatal(err)
	}
	store, err := Open(log.Discarder(), dir)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return store, func() {
		store.Close()
		os.RemoveAll(dir)
	}
}

func testRecord(id string, startedAt time.Time) *Record {
	iv := launch.NewEnrich(launch.Coding, 24*time.Hour)
	iv.WorkDir = "/data/seq"
	return NewRecord(id, &iv, 4242, false, startedAt)
}

func TestCreateGetRoundtrip(t *testing.T) {
	store, cleanup := openTestStore(t)
	defer cleanup()

	rec := testRecord("lusab-babad", time.Now())
	if err := store.Create(rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get("lusab-babad")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != rec.ID || got.Mode != rec.Mode || got.Target != rec.Target ||
		got.Ejects != rec.Ejects || got.PID != rec.PID || got.State != rec.State ||
		got.ExitCode != rec.ExitCode || got.LogPath != rec.LogPath {
		t.Errorf("record did not round-trip: put %+v, got %+v", rec, got)
	}
	if !reflect.DeepEqual(got.Argv, rec.Argv) {
		t.Errorf("argv did not round-trip: put %v, got %v", rec.Argv, got.Argv)
	}
	if !got.StartedAt.Equal(rec.StartedAt) {
		t.Errorf("started-at did not round-trip: put %v, got %v", rec.StartedAt, got.StartedAt)
	}
	if !got.Deadline.Equal(rec.StartedAt.Add(24 * time.Hour)) {
		t.Errorf("unexpected deadline: %v", got.Deadline)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	store, cleanup := openTestStore(t)
	defer cleanup()

	if err := store.Create(testRecord("lusab-babad", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(testRecord("lusab-babad", time.Now())); err == nil {
		t.Error("expected duplicate id to be rejected")
	}
}

func TestGetUnknown(t *testing.T) {
	store, cleanup := openTestStore(t)
	defer cleanup()

	if _, err := store.Get("tobab-dipad"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store, cleanup := openTestStore(t)
	defer cleanup()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"babab-babad", "babab-babaf", "babab-babag"} {
		rec := testRecord(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.Create(rec); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	expected := []string{"babab-babag", "babab-babaf", "babab-babad"}
	for i, rec := range recs {
		if rec.ID != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], rec.ID)
		}
	}
}

func TestFinishTransitions(t *testing.T) {
	store, cleanup := openTestStore(t)
	defer cleanup()

	if err := store.Create(testRecord("lusab-babad", time.Now())); err != nil {
		t.Fatal(err)
	}

	if err := store.Finish("lusab-babad", StateCompleted, 0, ""); err != nil {
		t.Fatal(err)
	}
	rec, err := store.Get("lusab-babad")
	if err != nil {
		t.Fatal(err)
	}
	if rec.State != StateCompleted || rec.ExitCode != 0 || rec.FinishedAt.IsZero() {
		t.Errorf("unexpected record after finish: %+v", rec)
	}

	// Terminal records are frozen.
	if err := store.Finish("lusab-babad", StateStopped, -1, ""); err != ErrIllegalTransition {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}
	// Finish only accepts terminal states.
	if err := store.Finish("lusab-babad", StateRunning, -1, ""); err == nil {
		t.Error("expected non-terminal target state to be rejected")
	}
	if err := store.Finish("tobab-dipad", StateStopped, -1, ""); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReconcile(t *testing.T) {
	store, cleanup := openTestStore(t)
	defer cleanup()

	alive := testRecord("babab-babad", time.Now())
	alive.PID = 111
	dead := testRecord("babab-babaf", time.Now())
	dead.PID = 222
	done := testRecord("babab-babag", time.Now())
	done.PID = 333

	for _, rec := range []*Record{alive, dead, done} {
		if err := store.Create(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Finish("babab-babag", StateCompleted, 0, ""); err != nil {
		t.Fatal(err)
	}

	lost, err := store.Reconcile(func(pid int) bool { return pid == 111 })
	if err != nil {
		t.Fatal(err)
	}
	if len(lost) != 1 || lost[0] != "babab-babaf" {
		t.Errorf("expected exactly babab-babaf to be lost, got %v", lost)
	}

	rec, err := store.Get("babab-babaf")
	if err != nil {
		t.Fatal(err)
	}
	if rec.State != StateLost || rec.Error == "" {
		t.Errorf("unexpected lost record: %+v", rec)
	}
	rec, err = store.Get("babab-babad")
	if err != nil {
		t.Fatal(err)
	}
	if rec.State != StateRunning {
		t.Errorf("expected live run to stay running, got %s", rec.State)
	}
}

func TestRecordEncoding(t *testing.T) {
	rec := testRecord("lusab-babad", time.Now())
	encoded, err := encodeRecord(rec)
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatal(err)
	}
	// The registry's on-disk schema: target is the enriched class, ejects the
	// complement handed to the tool, timestamps in Go's RFC 3339 form. A live
	// record still carries finished_at and deadline, zero-valued or not.
	for _, key := range []string{
		"id", "mode", "target", "ejects", "argv", "log_path", "pid",
		"state", "exit_code", "started_at", "finished_at", "deadline",
	} {
		if _, ok := fields[key]; !ok {
			t.Errorf("encoded record is missing field %q", key)
		}
	}
	if fields["target"] != "coding" || fields["ejects"] != "noncoding" {
		t.Errorf("unexpected class fields: target=%v ejects=%v",
			fields["target"], fields["ejects"])
	}
	if _, err := time.Parse(time.RFC3339Nano, fields["started_at"].(string)); err != nil {
		t.Errorf("started_at is not RFC 3339: %v", err)
	}
}

func TestOpenContendedRegistryFailsFast(t *testing.T) {
	dir, err := ioutil.TempDir("", "runlog-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store, err := Open(log.Discarder(), dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	// A second open against the held file lock must error out after the
	// timeout, not block until the holder exits.
	start := time.Now()
	_, err = open(log.Discarder(), dir, 100*time.Millisecond)
	if err == nil {
		t.Fatal("expected opening a held registry to fail")
	}
	if !strings.Contains(err.Error(), "locked") {
		t.Errorf("expected a lock contention error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("open blocked for %v instead of failing fast", elapsed)
	}
}

func TestCreateAtFinishAtReleaseRegistry(t *testing.T) {
	dir, err := ioutil.TempDir("", "runlog-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	rec := testRecord("lusab-babad", time.Now())
	if err := CreateAt(log.Discarder(), dir, rec); err != nil {
		t.Fatal(err)
	}

	// The helper must have released the file lock: a fresh open with a small
	// timeout succeeds immediately.
	store, err := open(log.Discarder(), dir, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("registry still locked after CreateAt: %v", err)
	}
	got, err := store.Get("lusab-babad")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != StateRunning {
		t.Errorf("expected a running record, got %s", got.State)
	}
	store.Close()

	if err := FinishAt(log.Discarder(), dir, "lusab-babad", StateCompleted, 0, ""); err != nil {
		t.Fatal(err)
	}
	store, err = open(log.Discarder(), dir, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("registry still locked after FinishAt: %v", err)
	}
	defer store.Close()
	got, err = store.Get("lusab-babad")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != StateCompleted || got.FinishedAt.IsZero() {
		t.Errorf("unexpected record after finish: %+v", got)
	}
}

func TestTokenHash(t *testing.T) {
	store, cleanup := openTestStore(t)
	defer cleanup()

	hash, err := store.TokenHash()
	if err != nil {
		t.Fatal(err)
	}
	if hash != nil {
		t.Errorf("expected no token hash initially, got %q", hash)
	}

	if err := store.SetTokenHash([]byte("bcrypt-digest")); err != nil {
		t.Fatal(err)
	}
	hash, err = store.TokenHash()
	if err != nil {
		t.Fatal(err)
	}
	if string(hash) != "bcrypt-digest" {
		t.Errorf("expected stored hash to round-trip, got %q", hash)
	}
}

func TestNewRunID(t *testing.T) {
	a, err := NewRunID()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunID()
	if err != nil {
		t.Fatal(err)
	}

	if !proquint.Valid(a) || len(a) != 11 {
		t.Errorf("expected a 32-bit proquint id, got %q", a)
	}
	if a == b {
		t.Errorf("expected distinct ids, got %q twice", a)
	}
}
