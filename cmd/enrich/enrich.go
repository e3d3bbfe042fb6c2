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

// Package enrich implements 'riserctl enrich', which launches a run of the
// read-enrichment tool for one sequence class.
package enrich

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

var EnrichCmd = &cli.Command{
	Run:       enrichCmdRun,
	UsageLine: "enrich [-duration d] [-detach] [-agent addr] <coding|noncoding>",
	Short:     "launch an enrichment run for a sequence class",
	Long: `
Enrich launches the read-enrichment tool targeting the named sequence class:
the tool is told to eject reads of the complement class, so the flow cell
spends its time on the class of interest.

    riserctl enrich -duration 24 coding
    riserctl enrich -duration 90m -detach noncoding

The duration is required and is handed to the tool in hours; it accepts bare
hours ("24", "1.5") or Go duration syntax ("90m"). By default the command
stays in the foreground, waits for the tool, and records how it ended. With
-detach the tool is launched into its own session with output appended to the
log file, survives the terminal, and is left to finish on its own; 'riserctl
status' reconciles its record later.

With -agent the launch is delegated to a riserctl agent, which supervises the
run on its host.
    `,
}

func enrichCmdRun(cmd *cli.Command, args []string) error {
	var (
		durationArg launch.DurationFlag
		detach      bool
		logFile     string
		shortArgs   bool
		configPath  string
		dbStore     string
		agentAddr   string
		agentToken  string
	)
	cmd.FlagSet.Var(&durationArg, "duration", "Run duration: hours or Go duration syntax (required)")
	cmd.FlagSet.Var(&durationArg, "d", "Shorthand for -duration")
	cmd.FlagSet.BoolVar(&detach, "detach", false,
		"Launch the tool detached from the terminal and return immediately")
	cmd.FlagSet.StringVar(&logFile, "log-file", "",
		"Log file for the tool's combined output (default riser_<class>_enrich.log)")
	cmd.FlagSet.BoolVar(&shortArgs, "short-args", false,
		"Pass the tool its short -t/-d flags instead of --target/--duration")
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

	if cmd.FlagSet.NArg() != 1 {
		return cli.CmdParseError(fmt.Errorf("expected one sequence class argument, got %d",
			cmd.FlagSet.NArg()))
	}
	target, err := launch.ParseClass(cmd.FlagSet.Arg(0))
	if err != nil {
		return cli.CmdParseError(err)
	}
	if !durationArg.Given {
		return cli.CmdParseError(fmt.Errorf("enrichment runs require a -duration"))
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
		return launchRemote(logger, agentAddr, agentToken, &pb.LaunchRunRequest{
			Mode:            string(launch.Enrich),
			Target:          string(target),
			DurationSeconds: int64(durationArg.D / time.Second),
			ShortFlags:      shortArgs || cfg.ShortFlags,
			LogPath:         logFile,
		})
	}

	iv := cfg.Invocation(launch.Enrich)
	iv.Target = target
	iv.Duration = durationArg.D
	if shortArgs {
		iv.ShortFlags = true
	}
	if logFile != "" {
		iv.LogPath = logFile
	}
	if err := iv.Validate(); err != nil {
		return err
	}
	return launchLocal(logger, cfg, &iv, detach)
}

// launchLocal starts the tool on this host. Detached runs are registered and
// left behind; foreground runs are waited on and their ending recorded, the
// way the agent's reaper would. The registry is only ever touched through
// short-lived opens: a launcher waiting on a multi-hour run must not sit on
// the registry's file lock while every other command needs it.
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
		// Without a record nobody would ever find the child again.
		proc.Kill(managed.PID())
		managed.Wait()
		return err
	}
	logger.Infof("launched run %s: %s (pid %d)", id, iv, managed.PID())
	fmt.Printf("%s\t%s\tpid %d\tlog %s\n", id, iv, managed.PID(), rec.LogPath)

	// An interrupt at the terminal reaches the child through the shared
	// process group; we stay alive to observe and record its exit.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	go func() {
		for range sigc {
		}
	}()

	// The tool winds down on its own at the deadline; the timer is the
	// backstop for runs that fail to.
	if !rec.Deadline.IsZero() {
		expire := time.Until(rec.Deadline.Add(cfg.WatchdogSlack))
		timer := time.AfterFunc(expire, func() {
			logger.Warnf("run %s overran its deadline, stopping it", id)
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

// launchRemote delegates the launch to an agent.
func launchRemote(logger *log.Logger, addr, token string, req *pb.LaunchRunRequest) error {
	conn, err := agentserver.Dial(addr, token)
	if err != nil {
		return err
	}
	defer conn.Close()

	client := pb.NewControlServiceClient(conn)
	resp, err := client.LaunchRun(context.Background(), req)
	if err != nil {
		return err
	}
	run := resp.Run
	logger.Infof("agent %s launched run %s (pid %d)", addr, run.Id, run.Pid)
	fmt.Printf("%s\t%s\tpid %d\tlog %s\n", run.Id, strings.Join(run.Argv, " "), run.Pid, run.LogPath)
	return nil
}
