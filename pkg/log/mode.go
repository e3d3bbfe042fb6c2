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

// Mode is a bitmask of log levels. Unlike strictly ordered severity levels,
// modes compose freely: a process can run with InfoMode|DebugMode while
// suppressing warnings, or with exactly one mode enabled. A statement is
// emitted when its mode intersects the effective mode for its file.
type Mode int

const (
	InfoMode Mode = 1 << iota
	WarnMode
	ErrorMode
	FatalMode
	DebugMode

	// The zero value doubles as the intersection test: (m&lmode) !=
	// DisabledMode reports whether lmode passes the filter m.
	DisabledMode = 0
	DefaultMode  = InfoMode | WarnMode | ErrorMode
)

// byte returns the single-letter header tag for a primitive (single-bit) mode.
func (m Mode) byte() byte {
	switch m {
	case InfoMode:
		return 'I'
	case WarnMode:
		return 'W'
	case ErrorMode:
		return 'E'
	case FatalMode:
		return 'F'
	case DebugMode:
		return 'D'
	default:
		return '?'
	}
}
