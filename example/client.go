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

// A small demonstration client for the riserctl agent's control plane: it
// launches a short enrichment run, polls it, streams its log, and stops it.
// Expects an agent on localhost:10970 ('riserctl agent-server').
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	agentserver "github.com/riserctl/riserctl/cmd/agent-server"
	pb "github.com/riserctl/riserctl/pkg/pb/control"
)

func main() {
	token := os.Getenv("RISERCTL_TOKEN")
	conn, err := agentserver.Dial("localhost:10970", token)
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	defer conn.Close()
	client := pb.NewControlServiceClient(conn)

	lresp, err := client.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode:            "enrich",
		Target:          "coding",
		DurationSeconds: 3600,
	})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	run := lresp.Run
	fmt.Printf("launched %s: %s (pid %d)\n", run.Id, strings.Join(run.Argv, " "), run.Pid)

	time.Sleep(2 * time.Second)
	gresp, err := client.GetRun(context.Background(), &pb.GetRunRequest{Id: run.Id})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	fmt.Printf("state: %s\n", gresp.Run.State)

	stream, err := client.StreamRunLog(context.Background(),
		&pb.StreamRunLogRequest{Id: run.Id})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("%v\n", err)
			return
		}
		os.Stdout.Write(resp.Chunk)
	}

	sresp, err := client.StopRun(context.Background(),
		&pb.StopRunRequest{Id: run.Id, GraceSeconds: 5})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	fmt.Printf("stopped %s: %s (forced: %t)\n", sresp.Run.Id, sresp.Run.State, sresp.Forced)

	listing, err := client.ListRuns(context.Background(), &pb.ListRunsRequest{})
	if err != nil {
		fmt.Printf("%v\n", err)
		return
	}
	for _, r := range listing.Runs {
		fmt.Printf("%s\t%s\t%s\n", r.Id, r.Mode, r.State)
	}
}
