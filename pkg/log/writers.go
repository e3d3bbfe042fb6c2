// Copyright 2013 Google Inc. All Rights Reserved.
// Copyright 2023 The Riserctl Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Portions of this code originated in the github.com/golang/glog package.

package log

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"
)

var (
	program  = "?"
	hostname = "?"
	username = "?"
	pid      = -1
)

func init() {
	program = filepath.Base(os.Args[0])

	if host, err := os.Hostname(); err == nil {
		hostname = host
	}
	if current, err := user.Current(); err == nil {
		username = current.Username
	}
	pid = os.Getpid()
}

// DefaultWriter returns an os.Stderr writer that is safe for concurrent use.
func DefaultWriter() io.Writer {
	return SynchronizedWriter(os.Stderr)
}

// LogRotationWriter returns an io.Writer backed by rotating files in the given
// directory, each capped near sizeThreshold bytes. A <program>.log symlink in
// the directory tracks the most recently created file.
//
// A single write larger than the threshold lands in a file of its own; that is
// the one case where a log file exceeds the configured size.
func LogRotationWriter(dirname string, sizeThreshold int) io.Writer {
	os.MkdirAll(dirname, os.ModePerm)
	return &logRotationWriter{
		dirname:       dirname,
		symlink:       fmt.Sprintf("%s.log", program),
		sizeThreshold: sizeThreshold,
	}
}

// SynchronizedWriter wraps w with a mutex for concurrent use.
func SynchronizedWriter(w io.Writer) io.Writer {
	return &synchronizedWriter{w: w}
}

// MultiWriter multiplexes writes across the given writers.
func MultiWriter(w io.Writer, ws ...io.Writer) io.Writer {
	mw := &multiWriter{}
	mw.ws = append(mw.ws, w)
	mw.ws = append(mw.ws, ws...)
	return mw
}

// generateLogFilename composes
// <program>.<host>.<user>.<yyyy-mm-dd.hh:mm:ss.millis>.<pid>.log, for example:
// riserctl.minion-04.verity.2023-04-10.22:43:54.717.7989.log
func generateLogFilename(t time.Time) string {
	return fmt.Sprintf("%s.%s.%s.%s.%d.log",
		program, hostname, username,
		t.Format("2006-01-02.15:04:05.999"), pid,
	)
}

type logRotationWriter struct {
	dirname, symlink               string
	currentFileSize, sizeThreshold int

	currentFile *os.File
}

// Write opens a fresh file when none is open yet or when the pending write
// would push the current one past the threshold, then re-points the symlink.
func (r *logRotationWriter) Write(b []byte) (n int, err error) {
	if r.currentFile == nil || r.currentFileSize+len(b) > r.sizeThreshold {
		fname := generateLogFilename(time.Now())
		f, err := os.Create(filepath.Join(r.dirname, fname))
		if err != nil {
			return 0, err
		}
		if r.currentFile != nil {
			r.currentFile.Close()
		}
		r.currentFile = f
		r.currentFileSize = 0

		// Best effort symlinking; stale links are removed, errors ignored.
		os.Remove(filepath.Join(r.dirname, r.symlink))
		os.Symlink(fname, filepath.Join(r.dirname, r.symlink))
	}

	n, err = r.currentFile.Write(b)
	r.currentFileSize += n
	return n, err
}

type synchronizedWriter struct {
	sync.Mutex
	w io.Writer
}

func (s *synchronizedWriter) Write(b []byte) (n int, err error) {
	s.Lock()
	defer s.Unlock()
	return s.w.Write(b)
}

type multiWriter struct {
	ws []io.Writer
}

// Write hands b to every writer, reporting the smallest byte count written and
// the last error encountered, if any.
func (m *multiWriter) Write(b []byte) (n int, err error) {
	n = len(b)
	for _, w := range m.ws {
		nbytes, er := w.Write(b)
		if nbytes < n {
			n = nbytes
		}
		if er != nil {
			err = er
		}
	}
	return n, err
}
