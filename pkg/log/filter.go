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

package log

import (
	"sync"
	"sync/atomic"
)

// Filtering state is process-global so that it can be flipped at runtime (via
// flags at startup, or RPC endpoints if a daemon chooses to expose them)
// without threading a handle through every Logger. Reads happen on every log
// statement; writes are rare. Both maps are therefore copy-on-write: readers
// load an immutable snapshot through atomic.Value, writers serialize on a
// mutex, copy, mutate, and swap.

type tracePointSet map[string]struct{}
type fileModeTable map[string]Mode

var gstate struct {
	gmode atomic.Value // Mode

	tracePointMu struct {
		sync.Mutex
		m atomic.Value // tracePointSet
	}
	fileModeMu struct {
		sync.Mutex
		m atomic.Value // fileModeTable
	}
}

func init() {
	gstate.gmode.Store(DefaultMode)
	gstate.tracePointMu.m.Store(make(tracePointSet))
	gstate.fileModeMu.m.Store(make(fileModeTable))
}

// SetGlobalLogMode sets the global log mode. Statements whose mode falls
// outside it are suppressed, barring per-file overrides.
func SetGlobalLogMode(m Mode) {
	gstate.gmode.Store(m)
}

// GetGlobalLogMode returns the current global log mode.
func GetGlobalLogMode() Mode {
	return gstate.gmode.Load().(Mode)
}

// SetTracePoint enables the given tracepoint. A tracepoint has the form
// file.go:N and names the position of a logging statement; while enabled,
// executing that statement emits a stack backtrace ahead of the log line,
// whatever the statement's mode.
func SetTracePoint(tp string) {
	gstate.tracePointMu.Lock()
	defer gstate.tracePointMu.Unlock()

	prev := gstate.tracePointMu.m.Load().(tracePointSet)
	next := make(tracePointSet, len(prev)+1)
	for k := range prev {
		next[k] = struct{}{}
	}
	next[tp] = struct{}{}
	gstate.tracePointMu.m.Store(next)
}

// ResetTracePoint disables the given tracepoint. In-flight readers keep their
// old snapshot; it is collected once they finish.
func ResetTracePoint(tp string) {
	gstate.tracePointMu.Lock()
	defer gstate.tracePointMu.Unlock()

	prev := gstate.tracePointMu.m.Load().(tracePointSet)
	next := make(tracePointSet, len(prev))
	for k := range prev {
		next[k] = struct{}{}
	}
	delete(next, tp)
	gstate.tracePointMu.m.Store(next)
}

// GetTracePoint reports whether the given tracepoint is enabled.
func GetTracePoint(tp string) bool {
	_, ok := gstate.tracePointMu.m.Load().(tracePointSet)[tp]
	return ok
}

// SetFileLogMode overrides the log mode for statements in the named file
// (base name, not full path). The override fully replaces the global mode for
// that file.
func SetFileLogMode(fname string, m Mode) {
	gstate.fileModeMu.Lock()
	defer gstate.fileModeMu.Unlock()

	prev := gstate.fileModeMu.m.Load().(fileModeTable)
	next := make(fileModeTable, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}
	next[fname] = m
	gstate.fileModeMu.m.Store(next)
}

// GetFileLogMode returns the mode override for the named file, if one is set.
func GetFileLogMode(fname string) (m Mode, ok bool) {
	m, ok = gstate.fileModeMu.m.Load().(fileModeTable)[fname]
	return m, ok
}

// ResetFileLogMode removes the mode override for the named file; its
// statements fall back to the global mode.
func ResetFileLogMode(fname string) {
	gstate.fileModeMu.Lock()
	defer gstate.fileModeMu.Unlock()

	prev := gstate.fileModeMu.m.Load().(fileModeTable)
	next := make(fileModeTable, len(prev))
	for k, v := range prev {
		next[k] = v
	}
	delete(next, fname)
	gstate.fileModeMu.m.Store(next)
}
