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

package proc

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// ExitStatus describes how a child ended.
type ExitStatus struct {
	Code     int  // Exit code; -1 when the child was ended by a signal.
	Signaled bool // Whether a signal, rather than an exit, ended the child.
}

// Managed is a child process whose exit this process will observe.
type Managed struct {
	cmd  *exec.Cmd
	logf *os.File
}

// StartManaged launches argv with the working directory and combined output
// log given, keeping the child attached for a later Wait. Stdin is the null
// device.
func StartManaged(argv []string, workDir, logPath string) (*Managed, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty argv")
	}
	logf, err := OpenLog(logPath)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = logf
	cmd.Stderr = logf

	if err := cmd.Start(); err != nil {
		logf.Close()
		return nil, err
	}
	return &Managed{cmd: cmd, logf: logf}, nil
}

// PID returns the child's process id.
func (m *Managed) PID() int {
	return m.cmd.Process.Pid
}

// Wait blocks until the child exits, closes the log handle, and reports how
// the child ended. A non-nil error means waiting itself failed, not that the
// child failed.
func (m *Managed) Wait() (ExitStatus, error) {
	err := m.cmd.Wait()
	m.logf.Close()

	if err == nil {
		return ExitStatus{Code: 0}, nil
	}
	if ee, ok := err.(*exec.ExitError); ok {
		ws, ok := ee.Sys().(syscall.WaitStatus)
		if ok && ws.Signaled() {
			return ExitStatus{Code: -1, Signaled: true}, nil
		}
		if ok {
			return ExitStatus{Code: ws.ExitStatus()}, nil
		}
		return ExitStatus{Code: -1}, nil
	}
	return ExitStatus{Code: -1}, err
}

// StartDetached launches argv fully detached: its own session, stdin from the
// null device, combined output appended to logPath. The child survives this
// process and its terminal; nobody observes its exit. Returns the child's pid.
func StartDetached(argv []string, workDir, logPath string) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("empty argv")
	}
	logf, err := OpenLog(logPath)
	if err != nil {
		return 0, err
	}
	// The child inherits its own descriptor; this one is the parent's.
	defer logf.Close()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}
