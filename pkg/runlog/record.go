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

// Package runlog persists the registry of tool runs: one record per launch,
// tracking what was started, where its output lands, and how it ended. The
// registry is the single source of truth for run state; there are no pid
// files.
package runlog

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/riserctl/riserctl/pkg/launch"
	"github.com/riserctl/riserctl/pkg/proquint"
)

// State is a run's lifecycle position. Running is the only non-terminal
// state; terminal states never change again.
type State string

const (
	// StateRunning covers launch to observed end.
	StateRunning State = "running"
	// StateCompleted is an observed exit with status zero.
	StateCompleted State = "completed"
	// StateFailed is an observed exit with nonzero status, or a launch-side
	// failure after the record was created.
	StateFailed State = "failed"
	// StateStopped is a run ended by an operator or by the duration watchdog.
	StateStopped State = "stopped"
	// StateLost is a run whose process vanished without anyone observing its
	// exit; the usual fate of detached runs.
	StateLost State = "lost"
)

// Terminal reports whether s is final.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateStopped, StateLost:
		return true
	}
	return false
}

// A Record is one tracked run.
type Record struct {
	ID string `json:"id"`

	Mode launch.Mode `json:"mode"`
	// Target is the enriched class; Ejects the complement handed to the tool.
	// Both empty for reject-all runs.
	Target launch.Class `json:"target,omitempty"`
	Ejects launch.Class `json:"ejects,omitempty"`

	// Argv is the exact command line launched, kept for auditability.
	Argv    []string `json:"argv"`
	WorkDir string   `json:"work_dir,omitempty"`
	LogPath string   `json:"log_path"`

	PID      int  `json:"pid"`
	Detached bool `json:"detached,omitempty"`

	State State `json:"state"`
	// ExitCode is meaningful only for completed and failed records; -1
	// otherwise.
	ExitCode int    `json:"exit_code"`
	Error    string `json:"error,omitempty"`

	StartedAt time.Time `json:"started_at"`
	// FinishedAt is zero while the run is live.
	FinishedAt time.Time `json:"finished_at"`
	// Deadline is StartedAt plus the requested duration; zero when the run is
	// unbounded.
	Deadline time.Time `json:"deadline"`
}

// NewRecord assembles a running Record for a just-launched invocation.
func NewRecord(id string, iv *launch.Invocation, pid int, detached bool, startedAt time.Time) *Record {
	rec := &Record{
		ID:        id,
		Mode:      iv.Mode,
		Target:    iv.Target,
		Ejects:    iv.Ejects(),
		Argv:      iv.Argv(),
		WorkDir:   iv.WorkDir,
		LogPath:   iv.LogFile(),
		PID:       pid,
		Detached:  detached,
		State:     StateRunning,
		ExitCode:  -1,
		StartedAt: startedAt.UTC(),
	}
	if iv.Duration > 0 {
		rec.Deadline = rec.StartedAt.Add(iv.Duration)
	}
	return rec
}

// NewRunID generates a fresh run identifier: a random 32-bit proquint, e.g.
// lusab-babad.
func NewRunID() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return proquint.FromUint32(binary.BigEndian.Uint32(b[:])), nil
}

func encodeRecord(rec *Record) ([]byte, error) {
	return json.Marshal(rec)
}

func decodeRecord(b []byte) (*Record, error) {
	rec := &Record{}
	if err := json.Unmarshal(b, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
