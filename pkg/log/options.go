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

import "io"

// Flag is a bitmask selecting the header fields prepended to each log line.
// With every field enabled the header reads:
//
//	I230419 06:33:04.606396 pkg/proc/detach.go:42] message
type Flag int

const (
	Lmode         Flag = 1 << iota // Single-letter mode tag: I, W, E, F, D
	Ldate                          // Date: yymmdd
	Ltime                          // Time: hh:mm:ss
	Lmicroseconds                  // Microsecond resolution: hh:mm:ss.micros, implies Ltime
	LUTC                           // Use UTC rather than the local time zone
	Lshortfile                     // Caller file base name and line: run.go:42
	Llongfile                      // Caller path and line: pkg/proc/detach.go:42, overridden by Lshortfile

	LstdFlags = Lmode | Ldate | Ltime | Lmicroseconds | Lshortfile
)

type option func(*Logger)

// Writer directs the logger's output to w. Use SynchronizedWriter when w is
// shared across goroutines; the logger itself does not lock.
func Writer(w io.Writer) option {
	return func(l *Logger) {
		l.w = w
	}
}

// Flags sets the header format.
func Flags(f Flag) option {
	return func(l *Logger) {
		l.flag = f
	}
}

// BasePath sets the path prefix trimmed from Llongfile headers. The default is
// the enclosing repository root, inferred from this package's own location.
func BasePath(path string) option {
	return func(l *Logger) {
		l.basePath = path
	}
}

// SkipBasePath disables base path trimming; Llongfile headers carry the fully
// qualified path.
func SkipBasePath() option {
	return func(l *Logger) {
		l.basePath = ""
	}
}
