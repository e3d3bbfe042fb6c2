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

// Package agentserver implements the riserctl agent: a long-lived daemon on
// the sequencing host that launches tool runs as managed children, reaps
// their exit statuses, enforces run deadlines, and serves the control plane
// over gRPC (with a grpc-web HTTP wrapper multiplexed onto the same port).
package agentserver

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/riserctl/riserctl/pkg/cli"
	"github.com/riserctl/riserctl/pkg/config"
	"github.com/riserctl/riserctl/pkg/log"
	"github.com/riserctl/riserctl/pkg/logflag"
	pb "github.com/riserctl/riserctl/pkg/pb/control"
	"github.com/riserctl/riserctl/pkg/proc"
	"github.com/riserctl/riserctl/pkg/runlog"
	"github.com/soheilhy/cmux"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
)

var AgentServerCmd = &cli.Command{
	Run:       agentServerCmdRun,
	UsageLine: "agent-server [-port port] [-db-store <path>] [-config <path>] [-gen-token]",
	Short:     "run the riserctl agent daemon",
	Long: `
Agent-server runs the riserctl agent: a long-lived daemon that launches
enrichment runs on request, supervises them, enforces their deadlines, and
serves the control plane over gRPC. The same port also answers grpc-web HTTP
requests for browser clients.

Runs launched through the agent are managed children: the agent observes
their exits and records them in the registry. Stopping the agent does not
stop its children; a multi-hour sequencing run must survive a controller
restart. Their records are reconciled when the agent next starts.

With -gen-token, agent-server generates an access token, prints it once,
stores only its bcrypt hash in the registry, and exits. Once a token is set,
every RPC must carry it.
    `,
}

func agentServerCmdRun(cmd *cli.Command, args []string) error {
	var (
		port       int
		dbStore    string
		configPath string
		slackFlag  time.Duration
		genToken   bool
	)
	cmd.FlagSet.IntVar(&port, "port", 10970, "Port which the agent will run on")
	cmd.FlagSet.StringVar(&dbStore, "db-store", "",
		"Folder to store the run registry in (overrides config)")
	cmd.FlagSet.StringVar(&configPath, "config", "", "Path to the riserctl config file")
	cmd.FlagSet.DurationVar(&slackFlag, "watchdog-slack", 0,
		"Slack past a run's deadline before the watchdog stops it (overrides config)")
	cmd.FlagSet.BoolVar(&genToken, "gen-token", false,
		"Generate an access token, store its hash, print it, and exit")
	logflags := logflag.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	logger := logflags.NewLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbStore != "" {
		cfg.DBDir = dbStore
	}
	if slackFlag > 0 {
		cfg.WatchdogSlack = slackFlag
	}

	if genToken {
		store, err := runlog.Open(logger, cfg.DBDir)
		if err != nil {
			return err
		}
		defer store.Close()
		token, err := GenerateToken(store)
		if err != nil {
			return err
		}
		// The token is shown exactly once; only its hash survives.
		fmt.Println(token)
		return nil
	}

	wait, shutdown, err := Start(logger, port, cfg)
	if err != nil {
		return err
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigc
		logger.Infof("received %v, shutting down", sig)
		shutdown()
	}()

	wait()
	return nil
}

// Start boots the agent: opens the registry, reconciles stale records,
// starts the watchdog, and serves gRPC and grpc-web multiplexed on one port.
// The returned wait blocks until the serving loops exit; shutdown stops them.
// Children launched by the agent are left running across a shutdown.
func Start(logger *log.Logger, port int, cfg config.Config) (wait func(), shutdown func(), err error) {
	store, err := runlog.Open(logger, cfg.DBDir)
	if err != nil {
		return nil, nil, err
	}

	// Records that were running when a previous agent died are either still
	// alive (detached, or orphaned managed children) or gone; sort them out
	// before accepting new work.
	if _, err := store.Reconcile(proc.Alive); err != nil {
		store.Close()
		return nil, nil, err
	}

	tokenHash, err := store.TokenHash()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if tokenHash == nil {
		logger.Warnf("no access token set; the control plane is unauthenticated " +
			"(generate one with -gen-token)")
	}

	var wg sync.WaitGroup
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	// Multiplex grpc and http over the same listener: grpc first, everything
	// else is grpc-web.
	mux := cmux.New(lis)
	grpcL := mux.MatchWithWriters(
		cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpL := mux.Match(cmux.Any())

	controlServer := newControlServer(logger, store, cfg)
	controlServer.watchdog = newWatchdog(logger, cfg.WatchdogSlack, controlServer.expire)
	for _, rec := range mustRunning(logger, store) {
		controlServer.watchdog.arm(rec.ID, rec.Deadline)
	}
	controlServer.watchdog.start()

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(unaryAuth(tokenHash)),
		grpc.StreamInterceptor(streamAuth(tokenHash)),
	)
	pb.RegisterControlServiceServer(grpcServer, controlServer)
	httpServer := http.Server{Handler: grpcweb.WrapServer(grpcServer)}

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Infof("serving RPC server on port: %d", port)
		if err := grpcServer.Serve(grpcL); err != nil {
			logger.Errorf("grpc server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Infof("serving HTTP server on port: %d", port)
		if err := httpServer.Serve(httpL); err != nil {
			logger.Errorf("http server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := mux.Serve(); err != nil {
			logger.Errorf("cmux server error: %v", err)
		}
	}()

	shutdown = func() {
		lis.Close()
		grpcServer.Stop()
		httpServer.Shutdown(context.Background())
		grpcL.Close()
		controlServer.watchdog.halt()
		store.Close()
	}

	return wg.Wait, shutdown, nil
}

// mustRunning returns the running records, logging rather than failing on a
// registry read error; a broken listing should not keep the agent down.
func mustRunning(logger *log.Logger, store *runlog.Store) []*runlog.Record {
	recs, err := store.Running()
	if err != nil {
		logger.Errorf("unable to list running records: %v", err)
		return nil
	}
	return recs
}
