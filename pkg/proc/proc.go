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

// Package proc starts, probes, and stops the tool processes riserctl manages.
// Children run either managed, with the parent observing their exit, or
// detached into their own session so that they survive the launching terminal.
// In both cases stdout and stderr are combined and appended to the run's log
// file.
package proc

import (
	"os"
	"time"

	"github.com/riserctl/riserctl/pkg/log"
	"golang.org/x/sys/unix"
)

// DefaultGrace is how long Terminate waits between the interrupt and the kill.
const DefaultGrace = 10 * time.Second

const aliveProbeInterval = 100 * time.Millisecond

// OpenLog opens the run's log file for appending, creating it if absent. The
// file collects the child's combined stdout and stderr.
func OpenLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// Alive reports whether a process with the given pid exists. The probe is
// signal 0, which delivers nothing. EPERM means the process exists but is
// owned by someone else; that counts as alive.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	switch err := unix.Kill(pid, 0); err {
	case nil, unix.EPERM:
		return true
	default:
		return false
	}
}

// Interrupt delivers SIGINT, the tool's clean-shutdown signal.
func Interrupt(pid int) error {
	return unix.Kill(pid, unix.SIGINT)
}

// Kill delivers SIGKILL.
func Kill(pid int) error {
	return unix.Kill(pid, unix.SIGKILL)
}

// Terminate stops the process: SIGINT first, then SIGKILL if it is still
// alive after grace. Returns whether the kill escalation was needed. A pid
// that is already gone is not an error.
func Terminate(logger *log.Logger, pid int, grace time.Duration) (forced bool, err error) {
	if !Alive(pid) {
		return false, nil
	}
	if err := Interrupt(pid); err != nil {
		if err == unix.ESRCH {
			return false, nil
		}
		return false, err
	}
	logger.Infof("interrupted pid %d, allowing %v to wind down", pid, grace)

	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if !Alive(pid) {
			return false, nil
		}
		time.Sleep(aliveProbeInterval)
	}

	logger.Warnf("pid %d still alive %v after interrupt, killing", pid, grace)
	if err := Kill(pid); err != nil && err != unix.ESRCH {
		return true, err
	}
	for i := 0; i < 50; i++ {
		if !Alive(pid) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	return true, nil
}
