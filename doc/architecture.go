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

// Package doc holds riserctl's documentation pseudo-commands.
package doc

import "github.com/riserctl/riserctl/pkg/cli"

var ArchitectureCmd = &cli.Command{
	UsageLine: "architecture",
	Short:     "riserctl system architecture overview",
	Long: `
Riserctl controls runs of an external read-enrichment tool. The tool itself
classifies nanopore reads in flight and ejects unwanted molecules from the
pore; riserctl owns everything around it.

Every launch builds the tool's exact command line (see 'riserctl help
run-modes'), starts it either in the foreground or detached into its own
session with combined output appended to a log file, and records it in the
run registry: a bolt database holding one record per run under a
pronounceable run id. The registry is the single source of truth for run
state; there are no pid files. Commands that read the registry re-probe the
liveness of running records and mark vanished processes lost.

The same operations are available remotely through the agent: a long-lived
daemon on the sequencing host that launches runs as supervised children,
records their exits, enforces run deadlines with a watchdog, and serves a
gRPC control plane (with a grpc-web HTTP wrapper on the same port). Access
is guarded by a generated token of which only a bcrypt hash is stored.

Finished runs can be copied into long-lived storage with 'riserctl archive':
the log file plus a JSON manifest, to a local directory or to Google Drive.
`,
}
