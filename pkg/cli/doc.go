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

// Package cli constructs structured command-line interfaces with sub-commands and help
// topics, in the manner of git: a single program name followed by a qualifier naming
// the sub-command to execute (riserctl {enrich,status,stop}).
//
// The package avoids init-time registration hooks; callers assemble their command list
// explicitly and hand it to Process.
//
// Example (from riserctl's top-level main):
//
//	// Aggregate the top-level commands, accessible via 'riserctl <command> ...'.
//	var commands cli.Commands
//
//	commands = append(commands, enrich.EnrichCmd)
//	commands = append(commands, rejectall.RejectAllCmd)
//	commands = append(commands, status.StatusCmd)
//	commands = append(commands, agentserver.AgentServerCmd)
//
//	// Documentation pseudo-commands, for 'riserctl help <topic>'.
//	commands = append(commands, doc.ArchitectureCmd)
//	commands = append(commands, doc.RunModesCmd)
//
//	abstract := "Riserctl launches and supervises targeted nanopore sequencing runs."
//	if err := cli.Process(abstract, commands); err != nil {
//		os.Exit(1)
//	}
//
// This produces the following top-level behaviour:
//
//	$ riserctl {,-h,help}
//	Riserctl launches and supervises targeted nanopore sequencing runs.
//
//	Usage:
//
//	    riserctl command [arguments]
//
//	The commands are:
//
//	        enrich                 launch a run enriching for a sequence class
//	        reject-all             launch a run ejecting every read
//	        status                 show tracked runs
//	        agent-server           agent-server command overview
//
//	Use 'riserctl help [command]' for more information about a command.
//
//	Additional help topics:
//
//	        architecture           riserctl system architecture overview
//	        run-modes              run mode and duration semantics
//
//	Use "riserctl help [topic]" for more information about that topic.
//
// 'riserctl help <command>' prints the command's usage line and long description;
// 'riserctl help <topic>' prints the topic text. Individual commands additionally
// answer their own '-h' with usage plus flag defaults.
package cli
