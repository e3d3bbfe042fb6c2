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

// Package stop implements 'riserctl stop', which ends a tracked run.
package stop

import (
	"fmt"
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

var StopCmd = &cli.Command{
	Run:       stopCmdRun,
	UsageLine: "stop [-grace d] [-agent addr] <run-id>",
	Short:     "stop a tracked run",
	Long: `
Stop interrupts a run's process, giving it the grace period to wind down
before escalating to a kill, and marks its record stopped. The tool treats an
interrupt as the clean-shutdown request, so a kill is needed only when it has
wedged.

Stopping a run that already finished is a no-op. With -agent the stop is
carried out by the agent supervising the run.
    `,
}

func stopCmdRun(cmd *cli.Command, args []string) error {
	var (
		grace      time.Duration
		configPath string
		dbStore    string
		agentAddr  string
		agentToken string
	)
	cmd.FlagSet.DurationVar(&grace, "grace", 0,
		"Pause between the interrupt and the kill escalation (overrides config)")
	cmd.FlagSet.StringVar(&configPath, "config", "", "Path to the riserctl config file")
	cmd.FlagSet.StringVar(&dbStore, "db-store", "",
		"Folder the run registry is stored in (overrides config)")
	cmd.FlagSet.StringVar(&agentAddr, "agent", "",
		"Delegate the stop to the agent at this address [host:port]")
	cmd.FlagSet.StringVar(&agentToken, "token", "", "Access token for the agent")
	logflags := logflag.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	logger := logflags.NewLogger()

	if cmd.FlagSet.NArg() != 1 {
		return cli.CmdParseError(fmt.Errorf("expected one run id, got %d arguments",
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
	if grace > 0 {
		cfg.Grace = grace
	}
	if agentAddr == "" {
		agentAddr = cfg.AgentAddr
	}
	if agentToken == "" {
		agentToken = cfg.AgentToken
	}

	if agentAddr != "" {
		conn, err := agentserver.Dial(agentAddr, agentToken)
		if err != nil {
			return err
		}
		defer conn.Close()

		client := pb.NewControlServiceClient(conn)
		resp, err := client.StopRun(context.Background(), &pb.StopRunRequest{
			Id:           id,
			GraceSeconds: int64(cfg.Grace / time.Second),
		})
		if err != nil {
			return err
		}
		how := "interrupted"
		if resp.Forced {
			how = "killed"
		}
		fmt.Printf("%s\t%s\t%s\n", resp.Run.Id, resp.Run.State, how)
		return nil
	}

	store, err := runlog.Open(logger, cfg.DBDir)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(id)
	if err != nil {
		return err
	}
	if rec.State.Terminal() {
		fmt.Printf("%s\t%s\talready finished\n", rec.ID, rec.State)
		return nil
	}

	forced, err := proc.Terminate(logger, rec.PID, cfg.Grace)
	if err != nil {
		return fmt.Errorf("unable to stop run %s: %v", id, err)
	}
	err = store.Finish(id, runlog.StateStopped, -1, "stopped by operator")
	if err != nil && err != runlog.ErrIllegalTransition {
		return err
	}

	how := "interrupted"
	if forced {
		how = "killed"
	}
	fmt.Printf("%s\t%s\t%s\n", id, runlog.StateStopped, how)
	return nil
}
