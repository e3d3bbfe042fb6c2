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

// Portions of this code originated in the Go source code, under cmd/go/internal/help.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode"
)

var usageTemplate = `{{abstract}}

Usage:

    {{program}} command [arguments]

The commands are:
{{range .}}{{if .Runnable}}
	{{.Name | printf "%-20s"}}   {{.Short}}{{end}}{{end}}

Use '{{program}} help [command]' for more information about a command.

Additional help topics:
{{range .}}{{if not .Runnable}}
	{{.Name | printf "%-20s"}}   {{.Short}}{{end}}{{end}}

Use "{{program}} help [topic]" for more information about that topic.
`

var helpTemplate = `{{if .Runnable}}Usage: {{program}} {{.UsageLine}}

{{else}}Topic: {{.Short}}

{{end}}{{.Long | trim}}
`

var cmdUsageTemplate = `Usage:

  {{program}} {{.UsageLine}}

`

// tmpl renders the given template text against data, writing to w. Template text is
// package-internal, so a parse or execution failure is a programming error.
func tmpl(w io.Writer, text, program, abstract string, data interface{}) {
	t := template.New("usage")
	t.Funcs(template.FuncMap{
		"trim":     strings.TrimSpace,
		"abstract": func() string { return abstract },
		"program":  func() string { return program },
	})
	template.Must(t.Parse(text))
	if err := t.Execute(w, data); err != nil {
		panic(err)
	}
}

// printFullUsage writes the top-level usage to os.Stdout: abstract, runnable commands,
// help topics.
func printFullUsage(program, abstract string, commands Commands) {
	tmpl(os.Stdout, usageTemplate, program, abstract, commands)
}

// printCommandUsage writes the '<program> help <command>' output for the named command
// to os.Stdout, or reports that no such command exists.
func printCommandUsage(program, name string, commands Commands) error {
	for _, cmd := range commands {
		if cmd.Name() == name {
			tmpl(os.Stdout, helpTemplate, program, "", cmd)
			return nil
		}
	}
	return errors.New("command not found")
}

// printCommandParsingError writes the flag parsing error and the command's brief usage,
// flag defaults included, to os.Stderr.
func printCommandParsingError(program string, cmd *Command, err error) {
	fmt.Fprintln(os.Stderr, upcaseInitial(err.Error()))
	tmpl(os.Stderr, cmdUsageTemplate, program, "", cmd)
	cmd.FlagSet.SetOutput(os.Stderr)
	cmd.FlagSet.PrintDefaults()
}

// printCommandHelp writes the command's brief usage and flag defaults to os.Stdout.
// This is the '<program> <command> -h' output.
func printCommandHelp(program string, cmd *Command) {
	tmpl(os.Stdout, cmdUsageTemplate, program, "", cmd)
	cmd.FlagSet.SetOutput(os.Stdout)
	cmd.FlagSet.PrintDefaults()
}

// upcaseInitial capitalizes the first rune of str. Sufficient for the stdlib flag
// package's error strings, which begin with single-byte lowercase letters.
func upcaseInitial(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}
