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

// Package rejectall implements 'riserctl reject-all', which launches the
// reject-everything control run.
package rejectall

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	agentserver "github.com/riserctl/riserctl/cmd/agent-server"
	"github.com/riserctl/riserctl/pkg/cli"
	"github.com/riserctl/riserctl/pkg/config"
	"github.com/riserctl/riserctl/pkg/launch"
	"github.com/riserctl/riserctl/pkg/log"
	"github.com/riserctl/riserctl/pkg/logflag"
	pb "github.com/riserctl/riserctl/pkg/pb/control"
	"github.com/riserctl/riserctl/pkg/proc"
	"github.com/riserctl/riserctl/pkg/runlog"
	"golang.org/x/net/context"
)

var RejectAllCmd = &cli.Command{
	Run:       rejectAllCmdRun,
	UsageLine: "reject-all [-duration d] [-detach] [-agent addr]",
	Short:     "launch the reject-everything control run",
	Long: `
Reject-all launches the control tool, which ejects every read regardless of
class. A reject-all run measures the ejection overhead itself, giving the
enrichment runs a baseline to compare against.

The control tool takes no arguments and is never given any; -duration here
only bounds the run from our side, stopping the tool once the deadline (plus
the watchdog slack) passes. Without a duration the run continues until
stopped. A detached run has nothing on our side to enforce a deadline, so
-detach and -duration cannot be combined.

Launch, -detach, and -agent otherwise behave exactly as they do for
'riserctl enrich'.
    `,
}

func rejectAllCmdRun(cmd *cli.Command, args []string) error {
	var (
		durationArg launch.DurationFlag
		detach      bool
		logFile     string
		configPath  string
		dbStore     string
		agentAddr   string
		agentToken  string
	)
	cmd.FlagSet.Var(&durationArg, "duration", "Bound the run: hours or Go duration syntax (optional)")
	cmd.FlagSet.Var(&durationArg, "d", "Shorthand for -duration")
	cmd.FlagSet.BoolVar(&detach, "detach", false,
		"Launch the tool detached from the terminal and return immediately")
	cmd.FlagSet.StringVar(&logFile, "log-file", "",
		"Log file for the tool's combined output (default reject_all.log)")
	cmd.FlagSet.StringVar(&configPath, "config", "", "Path to the riserctl config file")
	cmd.FlagSet.StringVar(&dbStore, "db-store", "",
		"Folder to store the run registry in (overrides config)")
	cmd.FlagSet.StringVar(&agentAddr, "agent", "",
		"Delegate the launch to the agent at this address [host:port]")
	cmd.FlagSet.StringVar(&agentToken, "token", "", "Access token for the agent")
	logflags := logflag.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	logger := logflags.NewLogger()

	if cmd.FlagSet.NArg() != 0 {
		return cli.CmdParseError(fmt.Errorf("reject-all takes no arguments, got %d",
			cmd.FlagSet.NArg()))
	}
	if detach && durationArg.Given {
		// The control tool never receives a duration, and a detached run
		// leaves nobody behind to enforce one.
		return cli.CmdParseError(fmt.Errorf(
			"-detach cannot be combined with -duration: nothing supervises a detached control run"))
	}

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
		if detach {
			return cli.CmdParseError(fmt.Errorf(
				"-detach cannot be combined with -agent: the agent supervises its runs itself"))
		}
		conn, err := agentserver.Dial(agentAddr, agentToken)
		if err != nil {
			return err
		}
		defer conn.Close()

		client := pb.NewControlServiceClient(conn)
		resp, err := client.LaunchRun(context.Background(), &pb.LaunchRunRequest{
			Mode:            string(launch.RejectAll),
			DurationSeconds: int64(durationArg.D / time.Second),
			LogPath:         logFile,
		})
		if err != nil {
			return err
		}
		run := resp.Run
		logger.Infof("agent %s launched run %s (pid %d)", agentAddr, run.Id, run.Pid)
		fmt.Printf("%s\t%s\tpid %d\tlog %s\n", run.Id, strings.Join(run.Argv, " "), run.Pid, run.LogPath)
		return nil
	}

	iv := cfg.Invocation(launch.RejectAll)
	iv.Duration = durationArg.D
	if logFile != "" {
		iv.LogPath = logFile
	}
	if err := iv.Validate(); err != nil {
		return err
	}
	return launchLocal(logger, cfg, &iv, detach)
}

// launchLocal mirrors the enrich command's local path: register the run, then
// either leave it behind detached or wait on it and record its ending. As
// there, the registry is only touched through short-lived opens so a waiting
// launcher never holds its file lock.
func launchLocal(logger *log.Logger, cfg config.Config, iv *launch.Invocation, detach bool) error {
	id, err := runlog.NewRunID()
	if err != nil {
		return err
	}

	if detach {
		pid, err := proc.StartDetached(iv.Argv(), iv.WorkDir, iv.LogFile())
		if err != nil {
			return fmt.Errorf("unable to start %s: %v", iv, err)
		}
		rec := runlog.NewRecord(id, iv, pid, true, time.Now())
		if err := runlog.CreateAt(logger, cfg.DBDir, rec); err != nil {
			return err
		}
		logger.Infof("launched detached run %s: %s (pid %d)", id, iv, pid)
		fmt.Printf("%s\t%s\tpid %d\tlog %s\n", id, iv, pid, rec.LogPath)
		return nil
	}

	managed, err := proc.StartManaged(iv.Argv(), iv.WorkDir, iv.LogFile())
	if err != nil {
		return fmt.Errorf("unable to start %s: %v", iv, err)
	}
	rec := runlog.NewRecord(id, iv, managed.PID(), false, time.Now())
	if err := runlog.CreateAt(logger, cfg.DBDir, rec); err != nil {
		proc.Kill(managed.PID())
		managed.Wait()
		return err
	}
	logger.Infof("launched run %s: %s (pid %d)", id, iv, managed.PID())
	fmt.Printf("%s\t%s\tpid %d\tlog %s\n", id, iv, managed.PID(), rec.LogPath)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	go func() {
		for range sigc {
		}
	}()

	// The control tool never receives a duration, so the deadline is enforced
	// from our side; the usual watchdog slack still applies.
	if !rec.Deadline.IsZero() {
		expire := time.Until(rec.Deadline.Add(cfg.WatchdogSlack))
		timer := time.AfterFunc(expire, func() {
			logger.Infof("run %s reached its deadline, stopping it", id)
			proc.Terminate(logger, managed.PID(), cfg.Grace)
		})
		defer timer.Stop()
	}

	st, err := managed.Wait()
	state, exitCode, errText := runlog.StateCompleted, 0, ""
	switch {
	case err != nil:
		state, exitCode, errText = runlog.StateFailed, -1, err.Error()
	case st.Signaled:
		state, exitCode, errText = runlog.StateStopped, -1, "ended by signal"
	case st.Code != 0:
		state, exitCode, errText = runlog.StateFailed, st.Code, ""
	}
	if err := runlog.FinishAt(logger, cfg.DBDir, id, state, exitCode, errText); err != nil {
		return err
	}

	fmt.Printf("%s\t%s\texit code %d\n", id, state, exitCode)
	if state == runlog.StateFailed {
		return fmt.Errorf("run %s failed with exit code %d", id, exitCode)
	}
	return nil
}
