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

package archive

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riserctl/riserctl/pkg/launch"
	"github.com/riserctl/riserctl/pkg/log"
	"github.com/riserctl/riserctl/pkg/runlog"
)

func tempStore(t *testing.T) (*LocalStore, string, func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "archive-test")
	if err != nil {
		t.Fatal(err)
	}
	store, err := NewLocalStore(filepath.Join(dir, "store"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return store, dir, func() { os.RemoveAll(dir) }
}

func finishedRecord(id, logPath string) *runlog.Record {
	started := time.Date(2023, 4, 19, 6, 0, 0, 0, time.UTC)
	return &runlog.Record{
		ID:         id,
		Mode:       launch.Enrich,
		Target:     launch.Coding,
		Ejects:     launch.Noncoding,
		Argv:       []string{"python3", "riser.py", "--target", "noncoding", "--duration", "24"},
		LogPath:    logPath,
		PID:        4242,
		State:      runlog.StateCompleted,
		ExitCode:   0,
		StartedAt:  started,
		FinishedAt: started.Add(24 * time.Hour),
	}
}

func TestLocalStoreRoundtrip(t *testing.T) {
	store, _, cleanup := tempStore(t)
	defer cleanup()

	if store.Has("babab-babad.log") {
		t.Error("expected empty store")
	}
	if err := store.Write("babab-babad.log", []byte("payload")); err != nil {
		t.Fatal(err)
	}
	if !store.Has("babab-babad.log") {
		t.Error("expected key after write")
	}

	got, err := store.Read("babab-babad.log")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Errorf("expected payload, got %q", got)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "babab-babad.log" {
		t.Errorf("expected single key, got %v", keys)
	}

	if err := store.Erase("babab-babad.log"); err != nil {
		t.Fatal(err)
	}
	if store.Has("babab-babad.log") {
		t.Error("expected key gone after erase")
	}
}

func TestLocalStoreRejectsPathKeys(t *testing.T) {
	store, _, cleanup := tempStore(t)
	defer cleanup()

	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := store.Write(key, []byte("x")); err == nil {
			t.Errorf("expected an error writing key %q", key)
		}
	}
}

func TestArchiveRefusesRunning(t *testing.T) {
	store, _, cleanup := tempStore(t)
	defer cleanup()

	rec := finishedRecord("babab-babad", "unused.log")
	rec.State = runlog.StateRunning

	archiver := NewArchiver(log.Discarder(), store)
	if _, err := archiver.Archive(rec); err == nil {
		t.Error("expected an error archiving a running record")
	}
}

func TestArchiveWritesLogAndManifest(t *testing.T) {
	store, dir, cleanup := tempStore(t)
	defer cleanup()

	content := []byte("read aligned\nread ejected\n")
	logPath := filepath.Join(dir, "riser_coding_enrich.log")
	if err := ioutil.WriteFile(logPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	archiver := NewArchiver(log.Discarder(), store)
	rec := finishedRecord("babab-babad", logPath)
	m, err := archiver.Archive(rec)
	if err != nil {
		t.Fatal(err)
	}

	if m.LogBytes != int64(len(content)) {
		t.Errorf("expected %d log bytes, got %d", len(content), m.LogBytes)
	}
	sum := sha256.Sum256(content)
	if m.LogSHA256 != hex.EncodeToString(sum[:]) {
		t.Errorf("expected digest %s, got %s", hex.EncodeToString(sum[:]), m.LogSHA256)
	}

	stored, err := archiver.ReadLog("babab-babad")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(stored, content) {
		t.Errorf("expected archived log %q, got %q", content, stored)
	}
	if !archiver.Archived("babab-babad") {
		t.Error("expected manifest in store")
	}
}

func TestArchiveMissingLogTolerated(t *testing.T) {
	store, dir, cleanup := tempStore(t)
	defer cleanup()

	rec := finishedRecord("babab-babad", filepath.Join(dir, "nonexistent.log"))
	archiver := NewArchiver(log.Discarder(), store)
	m, err := archiver.Archive(rec)
	if err != nil {
		t.Fatal(err)
	}
	if m.LogBytes != 0 || m.LogSHA256 != "" {
		t.Errorf("expected an empty log record, got %d bytes, digest %q", m.LogBytes, m.LogSHA256)
	}
	if store.Has("babab-babad.log") {
		t.Error("expected no log object for a missing log")
	}
	if !archiver.Archived("babab-babad") {
		t.Error("expected manifest in store")
	}
}

func TestListNewestFirst(t *testing.T) {
	store, dir, cleanup := tempStore(t)
	defer cleanup()

	logPath := filepath.Join(dir, "reject_all.log")
	if err := ioutil.WriteFile(logPath, []byte("ejected\n"), 0644); err != nil {
		t.Fatal(err)
	}

	archiver := NewArchiver(log.Discarder(), store)
	for _, id := range []string{"babab-babad", "babab-babaf"} {
		if _, err := archiver.Archive(finishedRecord(id, logPath)); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Objects that are not manifests are ignored.
	if err := store.Write("stray.log", []byte("x")); err != nil {
		t.Fatal(err)
	}

	manifests, err := archiver.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(manifests))
	}
	if manifests[0].Run.ID != "babab-babaf" || manifests[1].Run.ID != "babab-babad" {
		t.Errorf("expected newest first, got %s then %s",
			manifests[0].Run.ID, manifests[1].Run.ID)
	}
}
