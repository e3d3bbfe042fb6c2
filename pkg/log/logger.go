// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in licenses/BSD-golang.txt.

// Portions of this file are additionally subject to the following
// license and copyright.
//
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

// Portions of this code originated in the standard library 'log' package.

package log

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Logger writes mode-tagged log lines to an io.Writer, with the header format
// determined by the configured flags.
type Logger struct {
	w        io.Writer // Destination for formatted log lines
	flag     Flag      // Header format, see options.go
	basePath string    // Prefix trimmed off Llongfile paths, optional
}

const newline string = "\n"

// configure applies the defaults: a synchronized os.Stderr writer, LstdFlags,
// and a base path inferred from this package's own location so that Llongfile
// prints repository-relative paths. The resulting header format:
//
//	Myymmdd hh:mm:ss.micros file.go:ln] message
//	I230419 06:33:04.606396 run.go:42] message
func configure(l *Logger) {
	l.w = DefaultWriter()
	l.flag = LstdFlags
	l.basePath = inferBasePath()
}

// inferBasePath derives the repository root from the on-disk location of this
// file, which sits two directories below it. Returns "" if the runtime can't
// tell us where we are.
func inferBasePath() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}

// New returns a Logger configured with the provided options, if any.
func New(options ...option) *Logger {
	l := &Logger{}
	configure(l)

	for _, option := range options {
		option(l)
	}
	return l
}

// Discarder returns a Logger that discards all writes.
func Discarder() *Logger {
	return New(Writer(ioutil.Discard))
}

// Info logs to the INFO log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Info(v ...interface{}) {
	l.log(InfoMode, fmt.Sprintln(v...))
}

// Infof logs to the INFO log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(InfoMode, fmt.Sprintf(format+newline, v...))
}

// Warn logs to the WARN log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Warn(v ...interface{}) {
	l.log(WarnMode, fmt.Sprintln(v...))
}

// Warnf logs to the WARN log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(WarnMode, fmt.Sprintf(format+newline, v...))
}

// Error logs to the ERROR log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Error(v ...interface{}) {
	l.log(ErrorMode, fmt.Sprintln(v...))
}

// Errorf logs to the ERROR log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(ErrorMode, fmt.Sprintf(format+newline, v...))
}

// Fatal logs to the FATAL log and calls os.Exit(255). Fatal logs are never
// filtered out, regardless of mode. Arguments are handled in the manner of
// fmt.Println.
func (l *Logger) Fatal(v ...interface{}) {
	l.log(FatalMode, fmt.Sprintln(v...))
	os.Exit(255)
}

// Fatalf logs to the FATAL log and calls os.Exit(255). Fatal logs are never
// filtered out, regardless of mode. Arguments are handled in the manner of
// fmt.Printf.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.log(FatalMode, fmt.Sprintf(format+newline, v...))
	os.Exit(255)
}

// Debug logs to the DEBUG log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Debug(v ...interface{}) {
	l.log(DebugMode, fmt.Sprintln(v...))
}

// Debugf logs to the DEBUG log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(DebugMode, fmt.Sprintf(format+newline, v...))
}

// log is called only from the public Logger.{Info,Warn,Error,Fatal,Debug}{,f}
// wrappers; caller depth two therefore names the user's call site.
//
// Filtering is keyed by base filename, not full path, so identically named
// files in different packages share their overrides and tracepoints.
func (l *Logger) log(lmode Mode, data string) {
	file, line := caller(2)
	bfile := filepath.Base(file)
	tp := fmt.Sprintf("%s:%d", bfile, line)

	if GetTracePoint(tp) {
		// Skip log itself and the public wrapper above it.
		l.w.Write(stacktrace(2))
	}

	var shouldLog bool
	fmode, ok := GetFileLogMode(bfile)
	switch {
	case ok:
		// A file override is in force; the global mode no longer applies to
		// statements in this file.
		shouldLog = (fmode & lmode) != DisabledMode
	case (GetGlobalLogMode() & lmode) != DisabledMode:
		shouldLog = true
	}
	if (lmode & FatalMode) != DisabledMode {
		// Fatal statements are exempt from filtering.
		shouldLog = true
	}
	if !shouldLog {
		return
	}

	var buf bytes.Buffer
	buf.Write(l.header(lmode, time.Now(), file, line))
	buf.WriteString(data)
	l.w.Write(buf.Bytes())
}

// header renders the log line header per l.flag: mode letter, date, timestamp,
// and caller position, ending in "] ". file arrives fully qualified; the
// configured base path prefix is trimmed for Llongfile output.
func (l *Logger) header(lmode Mode, t time.Time, file string, line int) []byte {
	var b []byte
	buf := &b
	if l.flag&Lmode != 0 {
		*buf = append(*buf, lmode.byte())
	}
	if l.flag&LUTC != 0 {
		t = t.UTC()
	}
	if l.flag&(Ldate|Ltime|Lmicroseconds) != 0 {
		datef := l.flag&Ldate != 0
		timef := l.flag&(Ltime|Lmicroseconds) != 0
		if datef {
			year, month, day := t.Date()
			if year < 2000 {
				year = 2000
			}
			itoa(buf, year-2000, 2)
			itoa(buf, int(month), 2)
			itoa(buf, day, 2)
		}
		if datef && timef {
			*buf = append(*buf, ' ')
		}
		if timef {
			hour, min, sec := t.Clock()
			itoa(buf, hour, 2)
			*buf = append(*buf, ':')
			itoa(buf, min, 2)
			*buf = append(*buf, ':')
			itoa(buf, sec, 2)
			if l.flag&Lmicroseconds != 0 {
				*buf = append(*buf, '.')
				itoa(buf, t.Nanosecond()/1e3, 6)
			}
		}
	}

	*buf = append(*buf, ' ')

	if l.flag&(Lshortfile|Llongfile) != 0 {
		if l.basePath != "" && strings.HasPrefix(file, l.basePath) {
			file = strings.TrimPrefix(file[len(l.basePath):], "/")
		}
		if l.flag&Lshortfile != 0 {
			file = filepath.Base(file)
		}
		*buf = append(*buf, file...)
		*buf = append(*buf, ':')
		itoa(buf, line, -1)
		*buf = append(*buf, "] "...)
	}
	return b
}

// Cheap integer to fixed-width decimal ASCII. Give a negative width to avoid
// zero-padding.
func itoa(buf *[]byte, i int, wid int) {
	// Assemble decimal in reverse order.
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	// i < 10
	b[bp] = byte('0' + i)
	*buf = append(*buf, b[bp:]...)
}

// stacktrace returns the current goroutine's stack, with skip function frames
// (beyond stacktrace itself) removed from the top. Each frame contributes two
// lines of debug.Stack output; the leading "goroutine N [running]:" line is
// always retained.
func stacktrace(skip int) []byte {
	skip *= 2 // Two output lines per frame.
	skip += 2 // debug.Stack's own frame.
	skip += 2 // This function's frame.

	b := debug.Stack()
	bs := bytes.Split(b, []byte("\n"))
	copy(bs[1:], bs[1+skip:])
	bs = bs[:len(bs)-skip]
	return bytes.Join(bs, []byte("\n"))
}

// caller returns the file and line of the call site depth frames above the
// caller of caller. Depth zero names the caller's own position.
func caller(depth int) (file string, line int) {
	// +1 to account for caller itself.
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		file = "[???]"
		line = -1
	}
	return file, line
}
