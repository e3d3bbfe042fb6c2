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

package cli

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
)

// Process dispatches os.Args across the given commands and runs the matching one.
// There is no root-level command and there are no root-level flags: invoking the
// program bare prints the full usage, as do 'help' and '-h'.
//
// Usage mistakes (unknown commands, malformed flags, stray 'help' arguments) are
// reported on os.Stderr followed by os.Exit(2). Errors returned by a command's Run
// are propagated to the caller untouched. Everything else prints to os.Stdout.
//
// The abstract is the program's one-paragraph description, shown at the top of the
// full usage output.
func Process(abstract string, commands Commands) error {
	// The program name is os.Args[0] verbatim; if the binary was invoked through a
	// relative path the usage output repeats it. Not worth plumbing a clean name
	// through every caller.
	program, args := os.Args[0], os.Args[1:]

	// Flag sets would otherwise print their own errors interleaved with ours.
	for _, cmd := range commands {
		cmd.FlagSet.SetOutput(ioutil.Discard)
	}

	if len(args) == 0 {
		printFullUsage(program, abstract, commands)
		return nil
	}

	name := args[0]
	if (name == "help" || name == "-h") && len(args) == 1 {
		printFullUsage(program, abstract, commands)
		return nil
	}

	if name == "help" {
		if len(args) > 2 {
			fmt.Fprintf(os.Stderr, "Usage: %s help [command]\n\n", program)
			fmt.Fprintln(os.Stderr, "Too many arguments given.")
			os.Exit(2)
		}
		topic := args[1]
		if err := printCommandUsage(program, topic, commands); err != nil {
			fmt.Fprintf(os.Stderr, "Unknown help topic '%s'\n\n", topic)
			fmt.Fprintf(os.Stderr, "Run '%s help' for available topics.\n", program)
			os.Exit(2)
		}
		return nil
	}

	for _, cmd := range commands {
		if cmd.Name() != name {
			continue
		}
		if !cmd.Runnable() {
			fmt.Fprintf(os.Stderr, "'%s' is a help topic, not a runnable command\n\n", name)
			fmt.Fprintf(os.Stderr, "Run '%s help %s' to read it.\n", program, name)
			os.Exit(2)
		}

		err := cmd.Run(cmd, args[1:])
		if _, ok := err.(cmdParseError); !ok {
			return err
		}

		// flag.Parse reports '-h' as an error ("flag: help requested"); for us it is
		// a valid request for the command's usage. Checked after Run since commands
		// may define their flags inside it.
		if strings.Contains(err.Error(), "help requested") {
			printCommandHelp(program, cmd)
			return nil
		}

		printCommandParsingError(program, cmd, err)
		os.Exit(2)
	}

	fmt.Fprintf(os.Stderr, "Unknown command '%s'\n\n", name)
	fmt.Fprintf(os.Stderr, "Run '%s help' for available commands.\n", program)
	os.Exit(2)
	return nil
}
