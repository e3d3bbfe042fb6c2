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

package doc

import "github.com/riserctl/riserctl/pkg/cli"

var RunModesCmd = &cli.Command{
	UsageLine: "run-modes",
	Short:     "the tool's run modes and their command lines",
	Long: `
The read-enrichment tool has three run modes, each with a fixed command-line
shape. Riserctl builds these command lines and never embellishes them.

Enrich coding sequences (deplete noncoding):

    python3 riser.py --target noncoding --duration 24

Enrich noncoding sequences:

    python3 riser.py --target coding --duration 24

Reject everything (control):

    python3 reject_all.py

The tool's --target flag names the class to EJECT, so an enrichment run
passes the complement of the class it enriches for; 'riserctl enrich' takes
the class of interest and handles the inversion. The duration is in hours;
whole hours are rendered as integers, fractions with at most two decimals.
The tool also accepts short flag spellings (-t, -d), which 'riserctl enrich
-short-args' produces. The control tool takes no arguments in any case.

A detached launch reproduces the traditional invocation

    nohup python3 riser.py --target noncoding --duration 1 2>&1 >> riser_coding_enrich.log &

natively: new session, stdin from the null device, stdout and stderr both
appended to the log file, child surviving the terminal. Default log names
are riser_coding_enrich.log and riser_noncoding_enrich.log for enrichment
runs (named for the class enriched), and reject_all.log for the control.
`,
}
