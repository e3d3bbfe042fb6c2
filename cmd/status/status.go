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

// Package status implements 'riserctl status', which reports tracked runs.
package status

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	agentserver "github.com/riserctl/riserctl/cmd/agent-server"
	"github.com/riserctl/riserctl/pkg/cli"
	"github.com/riserctl/riserctl/pkg/config"
	"github.com/riserctl/riserctl/pkg/logflag"
	pb "github.com/riserctl/riserctl/pkg/pb/control"
	"github.com/riserctl/riserctl/pkg/proc"
	"github.com/riserctl/riserctl/pkg/runlog"
	"golang.org/x/net/context"
)

var StatusCmd = &cli.Command{
	Run:       statusCmdRun,
	UsageLine: "status [-running] [-agent addr] [run-id]",
	Short:     "report tracked runs",
	Long: `
Status lists the tracked runs, most recently started first, or reports a
single run when given its id.

Before reporting, status re-probes the liveness of every record still marked
running and reconciles the ones whose process has vanished: a detached run
whose exit nobody observed is marked lost. With -agent the agent's registry
is consulted instead of the local one; the agent reconciles its own records.
    `,
}

func statusCmdRun(cmd *cli.Command, args []string) error {
	var (
		runningOnly bool
		configPath  string
		dbStore     string
		agentAddr   string
		agentToken  string
	)
	cmd.FlagSet.BoolVar(&runningOnly, "running", false, "Report only runs still running")
	cmd.FlagSet.StringVar(&configPath, "config", "", "Path to the riserctl config file")
	cmd.FlagSet.StringVar(&dbStore, "db-store", "",
		"Folder the run registry is stored in (overrides config)")
	cmd.FlagSet.StringVar(&agentAddr, "agent", "",
		"Query the agent at this address [host:port] instead of the local registry")
	cmd.FlagSet.StringVar(&agentToken, "token", "", "Access token for the agent")
	logflags := logflag.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	logger := logflags.NewLogger()

	if cmd.FlagSet.NArg() > 1 {
		return cli.CmdParseError(fmt.Errorf("expected at most one run id, got %d arguments",
			cmd.FlagSet.NArg()))
	}
	id := cmd.FlagSet.Arg(0)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbStore != "" {
		cfg.DBDir = dbStore
	}
	if agentAddr == "" {
		agentAddr = cfg.AgentAddr
	}
	if agentToken == "" {
		agentToken = cfg.AgentToken
	}

	var recs []*runlog.Record
	if agentAddr != "" {
		conn, err := agentserver.Dial(agentAddr, agentToken)
		if err != nil {
			return err
		}
		defer conn.Close()
		client := pb.NewControlServiceClient(conn)

		if id != "" {
			resp, err := client.GetRun(context.Background(), &pb.GetRunRequest{Id: id})
			if err != nil {
				return err
			}
			recs = append(recs, agentserver.RecordFromWire(resp.Run))
		} else {
			resp, err := client.ListRuns(context.Background(),
				&pb.ListRunsRequest{RunningOnly: runningOnly})
			if err != nil {
				return err
			}
			for _, run := range resp.Runs {
				recs = append(recs, agentserver.RecordFromWire(run))
			}
		}
	} else {
		store, err := runlog.Open(logger, cfg.DBDir)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := store.Reconcile(proc.Alive); err != nil {
			return err
		}

		if id != "" {
			rec, err := store.Get(id)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		} else if runningOnly {
			recs, err = store.Running()
			if err != nil {
				return err
			}
		} else {
			recs, err = store.List()
			if err != nil {
				return err
			}
		}
	}

	if id != "" {
		printRun(recs[0])
		return nil
	}
	printRuns(recs)
	return nil
}

// printRuns renders a one-line-per-run table.
func printRuns(recs []*runlog.Record) {
	w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tCLASS\tSTATE\tPID\tSTARTED\tENDED\tEXIT")
	for _, rec := range recs {
		class := string(rec.Target)
		if class == "" {
			class = "-"
		}
		ended := "-"
		if !rec.FinishedAt.IsZero() {
			ended = rec.FinishedAt.Format(timeLayout)
		}
		exit := "-"
		if rec.State == runlog.StateCompleted || rec.State == runlog.StateFailed {
			exit = fmt.Sprintf("%d", rec.ExitCode)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			rec.ID, rec.Mode, class, rec.State, rec.PID,
			rec.StartedAt.Format(timeLayout), ended, exit)
	}
	w.Flush()
}

const timeLayout = "2006-01-02 15:04:05"

// printRun renders the full record of a single run.
func printRun(rec *runlog.Record) {
	fmt.Printf("run:      %s\n", rec.ID)
	fmt.Printf("mode:     %s\n", rec.Mode)
	if rec.Target != "" {
		fmt.Printf("enriches: %s (ejecting %s)\n", rec.Target, rec.Ejects)
	}
	fmt.Printf("command:  %s\n", strings.Join(rec.Argv, " "))
	if rec.WorkDir != "" {
		fmt.Printf("work dir: %s\n", rec.WorkDir)
	}
	fmt.Printf("log:      %s\n", rec.LogPath)
	fmt.Printf("pid:      %d (detached: %t)\n", rec.PID, rec.Detached)
	fmt.Printf("state:    %s\n", rec.State)
	if rec.State == runlog.StateCompleted || rec.State == runlog.StateFailed {
		fmt.Printf("exit:     %d\n", rec.ExitCode)
	}
	if rec.Error != "" {
		fmt.Printf("error:    %s\n", rec.Error)
	}
	fmt.Printf("started:  %s\n", rec.StartedAt.Format(timeLayout))
	if !rec.Deadline.IsZero() {
		fmt.Printf("deadline: %s\n", rec.Deadline.Format(timeLayout))
	}
	if !rec.FinishedAt.IsZero() {
		fmt.Printf("ended:    %s (after %v)\n", rec.FinishedAt.Format(timeLayout),
			rec.FinishedAt.Sub(rec.StartedAt).Round(time.Second))
	}
}
