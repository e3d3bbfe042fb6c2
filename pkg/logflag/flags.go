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

// Package logflag wires the standard logging flags shared by every riserctl
// command onto a flag.FlagSet, and assembles the logger they describe.
package logflag

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/riserctl/riserctl/pkg/log"
)

// Set carries the parsed values of the standard logging flags: -log-dir,
// -suppress-stderr, -log-mode, -log-filter, and -log-backtrace-at.
type Set struct {
	Dir            string
	SuppressStderr bool

	mode       modeValue
	filter     filterValue
	backtraces backtraceValue
}

// Register installs the logging flags onto fs. The returned Set is read after
// fs.Parse.
func Register(fs *flag.FlagSet) *Set {
	s := &Set{}
	fs.StringVar(&s.Dir, "log-dir", "",
		"Write log files to the specified directory")
	fs.BoolVar(&s.SuppressStderr, "suppress-stderr", false,
		"Suppress standard error logging")
	fs.Var(&s.mode, "log-mode",
		"Log mode for logs emitted globally (can be overridden using -log-filter)")
	fs.Var(&s.filter, "log-filter",
		"Comma-separated list of file.go:mode settings for file level logging")
	fs.Var(&s.backtraces, "log-backtrace-at",
		"Comma-separated list of file.go:N settings to emit backtraces")
	return s
}

// Apply pushes the parsed mode, filter, and tracepoint settings into the
// global logging state.
func (s *Set) Apply() {
	if s.mode.set {
		log.SetGlobalLogMode(s.mode.m)
	}
	for _, fm := range s.filter {
		log.SetFileLogMode(fm.fname, fm.fmode)
	}
	for _, tp := range s.backtraces {
		log.SetTracePoint(tp)
	}
}

// NewLogger applies the set and assembles the standard riserctl logger:
// rotated files under -log-dir if given, stderr unless suppressed, the whole
// chain synchronized.
func (s *Set) NewLogger() *log.Logger {
	s.Apply()

	writer := ioutil.Discard
	if s.Dir != "" {
		writer = log.LogRotationWriter(s.Dir, 50<<20 /* 50 MiB */)
	}
	if !s.SuppressStderr {
		writer = log.MultiWriter(writer, os.Stderr)
	}
	writer = log.SynchronizedWriter(writer)

	logf := log.Lmode | log.Ldate | log.Ltime | log.Lmicroseconds | log.LUTC | log.Llongfile
	return log.New(log.Writer(writer), log.Flags(logf), log.SkipBasePath())
}

type modeValue struct {
	m   log.Mode
	set bool
}

func (v *modeValue) String() string {
	return modeString(v.m)
}

func (v *modeValue) Set(value string) error {
	m, err := parseMode(value)
	if err != nil {
		return err
	}
	v.m, v.set = m, true
	return nil
}

type fileMode struct {
	fname string
	fmode log.Mode
}

type filterValue []fileMode

func (v *filterValue) String() string {
	parts := make([]string, 0, len(*v))
	for _, fm := range *v {
		parts = append(parts, fmt.Sprintf("%s:%s", fm.fname, modeString(fm.fmode)))
	}
	return strings.Join(parts, ",")
}

func (v *filterValue) Set(value string) error {
	for _, entry := range strings.Split(value, ",") {
		i := strings.LastIndex(entry, ":")
		if i < 0 {
			return fmt.Errorf("malformed filter %q, expected file.go:mode", entry)
		}
		fname, mode := entry[:i], entry[i+1:]
		if !strings.HasSuffix(fname, ".go") {
			return fmt.Errorf("malformed filter %q, %q is not a .go file", entry, fname)
		}
		fmode, err := parseMode(mode)
		if err != nil {
			return err
		}
		*v = append(*v, fileMode{fname: fname, fmode: fmode})
	}
	return nil
}

type backtraceValue []string

func (v *backtraceValue) String() string {
	return strings.Join(*v, ",")
}

func (v *backtraceValue) Set(value string) error {
	for _, entry := range strings.Split(value, ",") {
		i := strings.LastIndex(entry, ":")
		if i < 0 {
			return fmt.Errorf("malformed tracepoint %q, expected file.go:N", entry)
		}
		fname, line := entry[:i], entry[i+1:]
		if !strings.HasSuffix(fname, ".go") {
			return fmt.Errorf("malformed tracepoint %q, %q is not a .go file", entry, fname)
		}
		if _, err := strconv.Atoi(line); err != nil {
			return fmt.Errorf("malformed tracepoint %q, %q is not a line number", entry, line)
		}
		*v = append(*v, entry)
	}
	return nil
}

func parseMode(value string) (log.Mode, error) {
	if value == "disabled" {
		return log.DisabledMode, nil
	}

	var m log.Mode
	for _, mode := range strings.Split(value, "|") {
		switch mode {
		case "info":
			m |= log.InfoMode
		case "warn":
			m |= log.WarnMode
		case "error":
			m |= log.ErrorMode
		case "debug":
			m |= log.DebugMode
		default:
			return log.DisabledMode, fmt.Errorf("unrecognized mode: %q", mode)
		}
	}
	return m, nil
}

func modeString(m log.Mode) string {
	if m == log.DisabledMode {
		return "disabled"
	}

	var parts []string
	if m&log.InfoMode != log.DisabledMode {
		parts = append(parts, "info")
	}
	if m&log.WarnMode != log.DisabledMode {
		parts = append(parts, "warn")
	}
	if m&log.ErrorMode != log.DisabledMode {
		parts = append(parts, "error")
	}
	if m&log.DebugMode != log.DisabledMode {
		parts = append(parts, "debug")
	}
	return strings.Join(parts, "|")
}
