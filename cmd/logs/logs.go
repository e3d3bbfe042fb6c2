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

// Package logs implements 'riserctl logs', which prints a run's log.
package logs

import (
	"fmt"
	"io"
	"os"

	agentserver "github.com/riserctl/riserctl/cmd/agent-server"
	"github.com/riserctl/riserctl/pkg/cli"
	"github.com/riserctl/riserctl/pkg/config"
	"github.com/riserctl/riserctl/pkg/logflag"
	pb "github.com/riserctl/riserctl/pkg/pb/control"
	"github.com/riserctl/riserctl/pkg/proc"
	"github.com/riserctl/riserctl/pkg/runlog"
	"github.com/riserctl/riserctl/pkg/streaming"
	"golang.org/x/net/context"
)

var LogsCmd = &cli.Command{
	Run:       logsCmdRun,
	UsageLine: "logs [-f] [-wait] [-agent addr] <run-id>",
	Short:     "print a run's log",
	Long: `
Logs prints the combined output the tool wrote for a run. With -f the command
keeps following appended output until the run reaches a terminal state and
the log is drained; -f -wait follows until interrupted, regardless of run
state. With -agent the log is streamed from the agent supervising the run.
    `,
}

func logsCmdRun(cmd *cli.Command, args []string) error {
	var (
		follow     bool
		wait       bool
		configPath string
		dbStore    string
		agentAddr  string
		agentToken string
	)
	cmd.FlagSet.BoolVar(&follow, "f", false, "Follow the log as it grows")
	cmd.FlagSet.BoolVar(&wait, "wait", false,
		"With -f, keep following even after the run finishes")
	cmd.FlagSet.StringVar(&configPath, "config", "", "Path to the riserctl config file")
	cmd.FlagSet.StringVar(&dbStore, "db-store", "",
		"Folder the run registry is stored in (overrides config)")
	cmd.FlagSet.StringVar(&agentAddr, "agent", "",
		"Stream the log from the agent at this address [host:port]")
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
		stream, err := client.StreamRunLog(context.Background(),
			&pb.StreamRunLogRequest{Id: id, Follow: follow})
		if err != nil {
			return err
		}
		for {
			resp, err := stream.Recv()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			os.Stdout.Write(resp.Chunk)
		}
	}

	// Following can go on for hours; look the run up through a short-lived
	// open rather than hold the registry's file lock the whole time.
	store, err := runlog.Open(logger, cfg.DBDir)
	if err != nil {
		return err
	}
	rec, err := store.Get(id)
	store.Close()
	if err != nil {
		return err
	}

	if !follow {
		f, err := os.Open(rec.LogPath)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(os.Stdout, f)
		return err
	}

	follower, err := streaming.OpenFollower(rec.LogPath, streaming.DefaultPollInterval)
	if err != nil {
		return err
	}
	defer follower.Close()

	// The follower stops once the run is over and the log drained, unless
	// -wait asked to hang on regardless.
	var stop func() bool
	if !wait {
		stop = func() bool {
			st, err := runlog.Open(logger, cfg.DBDir)
			if err != nil {
				// Registry busy; keep following and ask again next poll.
				return false
			}
			defer st.Close()
			cur, err := st.Get(id)
			if err != nil {
				return true
			}
			if cur.State == runlog.StateRunning && !proc.Alive(cur.PID) {
				// Reconcile in passing, so following a dead detached run ends
				// rather than polling forever.
				st.Reconcile(proc.Alive)
				return true
			}
			return cur.State.Terminal()
		}
	}

	for {
		chunk, err := follower.Next(context.Background(), stop)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		os.Stdout.Write(chunk)
	}
}
