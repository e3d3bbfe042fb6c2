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

// Package archive copies finished runs out of the registry into long-lived
// storage: a manifest describing the run plus the tool's log file. Backends
// implement Store; a local directory and Google Drive are provided.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/riserctl/riserctl/pkg/log"
	"github.com/riserctl/riserctl/pkg/runlog"
)

// Store is a flat keyed blob store.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Has(key string) bool
	Erase(key string) error
	Keys() ([]string, error)
}

const manifestSuffix = ".json"

// A Manifest records what was archived for one run.
type Manifest struct {
	Run        *runlog.Record `json:"run"`
	LogBytes   int64          `json:"log_bytes"`
	LogSHA256  string         `json:"log_sha256,omitempty"`
	ArchivedAt time.Time      `json:"archived_at"`
}

// Archiver writes runs into a Store.
type Archiver struct {
	logger *log.Logger
	store  Store
}

func NewArchiver(logger *log.Logger, store Store) *Archiver {
	return &Archiver{logger: logger, store: store}
}

// Archive stores the run's log and manifest. Only terminal runs can be
// archived; a running process would keep appending to the log behind the
// archived copy's back. A missing log file is tolerated, since detached runs
// on remote hosts leave their logs behind, and the manifest then records an
// empty log.
func (a *Archiver) Archive(rec *runlog.Record) (*Manifest, error) {
	if !rec.State.Terminal() {
		return nil, fmt.Errorf("run %s is %s, only finished runs can be archived", rec.ID, rec.State)
	}

	m := &Manifest{
		Run:        rec,
		ArchivedAt: time.Now().UTC(),
	}

	logBytes, err := ioutil.ReadFile(rec.LogPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		sum := sha256.Sum256(logBytes)
		m.LogBytes = int64(len(logBytes))
		m.LogSHA256 = hex.EncodeToString(sum[:])
		if err := a.store.Write(logKey(rec.ID), logBytes); err != nil {
			return nil, err
		}
	} else {
		a.logger.Warnf("run %s has no log at %s, archiving the record alone", rec.ID, rec.LogPath)
	}

	// The sidecar log is written first so the manifest's presence marks a
	// complete archive.
	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := a.store.Write(manifestKey(rec.ID), encoded); err != nil {
		return nil, err
	}

	a.logger.Infof("archived run %s (%d log bytes)", rec.ID, m.LogBytes)
	return m, nil
}

// Archived reports whether the run already has a manifest in the store.
func (a *Archiver) Archived(id string) bool {
	return a.store.Has(manifestKey(id))
}

// ReadLog returns the archived log for the run.
func (a *Archiver) ReadLog(id string) ([]byte, error) {
	return a.store.Read(logKey(id))
}

// List returns the manifests in the store, newest archive first.
func (a *Archiver) List() ([]*Manifest, error) {
	keys, err := a.store.Keys()
	if err != nil {
		return nil, err
	}

	var manifests []*Manifest
	for _, key := range keys {
		if !strings.HasSuffix(key, manifestSuffix) {
			continue
		}
		encoded, err := a.store.Read(key)
		if err != nil {
			return nil, err
		}
		var m Manifest
		if err := json.Unmarshal(encoded, &m); err != nil {
			a.logger.Warnf("skipping malformed manifest %s: %v", key, err)
			continue
		}
		manifests = append(manifests, &m)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].ArchivedAt.After(manifests[j].ArchivedAt)
	})
	return manifests, nil
}

func manifestKey(id string) string { return id + manifestSuffix }
func logKey(id string) string      { return id + ".log" }
