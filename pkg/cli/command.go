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

// Portions of this code originated in the Go source code, under cmd/go/internal/base.

package cli

import (
	"flag"
	"strings"
)

// A Command is a single '<program> <command> ...' implementation, like '<program> enrich' or
// '<program> agent-server'. Commands with a nil Run are documentation topics, reachable only
// through '<program> help [topic]'.
type Command struct {
	// Run executes the command, receiving the arguments that followed the command name.
	// Implementations parse them with cmd.FlagSet, and on parse failure return
	// CmdParseError(err) so the dispatcher can render usage instead of a bare error.
	Run func(cmd *Command, args []string) error

	// UsageLine is the one-line usage message. The first word must be the command name.
	UsageLine string

	// Short is the one-line description listed by '<program> help'.
	Short string

	// Long is the full description shown by '<program> help <command>'.
	Long string

	// FlagSet holds the command's flags. Its own output is discarded; the dispatcher
	// renders flag defaults itself so that errors and usage share one format.
	FlagSet flag.FlagSet
}

type Commands []*Command

// Name returns the command's name, the first word of the usage line.
func (c *Command) Name() string {
	name := c.UsageLine
	if i := strings.Index(name, " "); i >= 0 {
		name = name[:i]
	}
	return name
}

// Runnable reports whether the command can be executed, as opposed to being a
// documentation topic like 'architecture'.
func (c *Command) Runnable() bool {
	return c.Run != nil
}

type cmdParseError struct {
	error
}

// CmdParseError marks err as a flag parsing failure. Process recognizes the marker and
// responds with usage output and exit code 2 rather than surfacing the error to the caller.
func CmdParseError(err error) error {
	return cmdParseError{err}
}
