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

package main

import (
	"os"

	"github.com/riserctl/riserctl/doc"
	"github.com/riserctl/riserctl/pkg/cli"

	agentserver "github.com/riserctl/riserctl/cmd/agent-server"
	archivecmd "github.com/riserctl/riserctl/cmd/archive"
	"github.com/riserctl/riserctl/cmd/enrich"
	"github.com/riserctl/riserctl/cmd/logs"
	rejectall "github.com/riserctl/riserctl/cmd/reject-all"
	"github.com/riserctl/riserctl/cmd/status"
	"github.com/riserctl/riserctl/cmd/stop"
)

func main() {
	// We aggregate all the top-level commands (i.e. 'riserctl <command> ...')
	// as needed.
	var commands cli.Commands

	// Launching commands first, then the commands operating on tracked runs,
	// then the agent daemon.
	commands = append(commands, enrich.EnrichCmd)
	commands = append(commands, rejectall.RejectAllCmd)
	commands = append(commands, status.StatusCmd)
	commands = append(commands, stop.StopCmd)
	commands = append(commands, logs.LogsCmd)
	commands = append(commands, archivecmd.ArchiveCmd)
	commands = append(commands, agentserver.AgentServerCmd)

	// We also include documentation pseudo-commands for riserctl's
	// architecture and the run modes of the underlying tool.
	commands = append(commands, doc.ArchitectureCmd)
	commands = append(commands, doc.RunModesCmd)

	abstract := "Riserctl is a run controller for real-time nanopore read-enrichment experiments."
	if err := cli.Process(abstract, commands); err != nil {
		os.Exit(1)
	}
}
