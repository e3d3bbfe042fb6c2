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

package agentserver

import (
	"context"
	"io/ioutil"
	"os"
	"path"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/riserctl/riserctl/pkg/config"
	"github.com/riserctl/riserctl/pkg/log"
	pb "github.com/riserctl/riserctl/pkg/pb/control"
	"github.com/riserctl/riserctl/pkg/runlog"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// newTestServer assembles a control server around a temp registry and stub
// tool scripts: the enrich stub echoes its arguments and exits, the reject
// stub sleeps until stopped.
func newTestServer(t *testing.T) (*controlServer, func()) {
	t.Helper()
	logger := log.Discarder()

	tdir, err := ioutil.TempDir("", strings.Replace(t.Name(), "/", "_", -1))
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Interpreter = "/bin/sh"
	cfg.EnrichScript = writeScript(t, tdir, "riser.sh", "echo starting \"$@\"\n")
	cfg.RejectScript = writeScript(t, tdir, "reject.sh", "exec sleep 60\n")
	cfg.WorkDir = tdir
	cfg.DBDir = path.Join(tdir, "db")
	cfg.Grace = 2 * time.Second

	store, err := runlog.Open(logger, cfg.DBDir)
	if err != nil {
		os.RemoveAll(tdir)
		t.Fatal(err)
	}

	s := newControlServer(logger, store, cfg)
	s.watchdog = newWatchdog(logger, cfg.WatchdogSlack, s.expire)
	s.watchdog.start()

	return s, func() {
		s.watchdog.halt()
		store.Close()
		os.RemoveAll(tdir)
	}
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := path.Join(dir, name)
	if err := ioutil.WriteFile(p, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLaunchRunCompletes(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	resp, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode:            "enrich",
		Target:          "coding",
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"/bin/sh", s.cfg.EnrichScript, "--target", "noncoding", "--duration", "1"}
	if !reflect.DeepEqual(resp.Run.Argv, expected) {
		t.Fatalf("expected argv %v, got %v", expected, resp.Run.Argv)
	}
	if resp.Run.Target != "coding" || resp.Run.Ejects != "noncoding" {
		t.Fatalf("expected target coding ejecting noncoding, got %s/%s",
			resp.Run.Target, resp.Run.Ejects)
	}

	rec, err := s.awaitTerminal(resp.Run.Id, 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if rec.State != runlog.StateCompleted {
		t.Fatalf("expected state %s, got %s (error: %q)",
			runlog.StateCompleted, rec.State, rec.Error)
	}
	if rec.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", rec.ExitCode)
	}

	content, err := ioutil.ReadFile(rec.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "starting --target noncoding --duration 1") {
		t.Fatalf("unexpected log content: %q", content)
	}
}

func TestLaunchRunRecordsFailure(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()
	s.cfg.EnrichScript = writeScript(t, s.cfg.WorkDir, "failing.sh", "exit 3\n")

	resp, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode:            "enrich",
		Target:          "noncoding",
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatal(err)
	}

	rec, err := s.awaitTerminal(resp.Run.Id, 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if rec.State != runlog.StateFailed || rec.ExitCode != 3 {
		t.Fatalf("expected failed with exit code 3, got %s with %d", rec.State, rec.ExitCode)
	}
}

func TestLaunchRunRejectsUnknownClass(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	_, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode:            "enrich",
		Target:          "rna",
		DurationSeconds: 3600,
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestLaunchRunRejectsShortDuration(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	_, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode:            "enrich",
		Target:          "coding",
		DurationSeconds: 5,
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestStopRun(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	resp, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode: "reject-all",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Run.Argv) != 2 {
		t.Fatalf("reject-all runs take no flags, got argv %v", resp.Run.Argv)
	}

	sresp, err := s.StopRun(context.Background(), &pb.StopRunRequest{
		Id:           resp.Run.Id,
		GraceSeconds: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if sresp.Run.State != string(runlog.StateStopped) {
		t.Fatalf("expected state %s, got %s", runlog.StateStopped, sresp.Run.State)
	}

	// Stopping an already finished run is a no-op.
	sresp, err = s.StopRun(context.Background(), &pb.StopRunRequest{Id: resp.Run.Id})
	if err != nil {
		t.Fatal(err)
	}
	if sresp.Run.State != string(runlog.StateStopped) {
		t.Fatalf("expected state %s, got %s", runlog.StateStopped, sresp.Run.State)
	}
}

func TestStopRunUnknownID(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	_, err := s.StopRun(context.Background(), &pb.StopRunRequest{Id: "lusab-babad"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	first, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode:            "enrich",
		Target:          "coding",
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.awaitTerminal(first.Run.Id, 10*time.Second); err != nil {
		t.Fatal(err)
	}

	second, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode: "reject-all",
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.StopRun(context.Background(), &pb.StopRunRequest{Id: second.Run.Id})

	all, err := s.ListRuns(context.Background(), &pb.ListRunsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(all.Runs))
	}
	// Most recently started first.
	if all.Runs[0].Id != second.Run.Id {
		t.Fatalf("expected %s first, got %s", second.Run.Id, all.Runs[0].Id)
	}

	running, err := s.ListRuns(context.Background(), &pb.ListRunsRequest{RunningOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(running.Runs) != 1 || running.Runs[0].Id != second.Run.Id {
		t.Fatalf("expected only %s running, got %v", second.Run.Id, running.Runs)
	}
}

// logSink is a hand-rolled server stream collecting streamed log chunks.
type logSink struct {
	grpc.ServerStream
	ctx    context.Context
	chunks [][]byte
}

func (s *logSink) Context() context.Context { return s.ctx }

func (s *logSink) Send(resp *pb.StreamRunLogResponse) error {
	s.chunks = append(s.chunks, resp.Chunk)
	return nil
}

func TestStreamRunLog(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	resp, err := s.LaunchRun(context.Background(), &pb.LaunchRunRequest{
		Mode:            "enrich",
		Target:          "coding",
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.awaitTerminal(resp.Run.Id, 10*time.Second); err != nil {
		t.Fatal(err)
	}

	sink := &logSink{ctx: context.Background()}
	if err := s.StreamRunLog(&pb.StreamRunLogRequest{Id: resp.Run.Id}, sink); err != nil {
		t.Fatal(err)
	}

	var content []byte
	for _, chunk := range sink.chunks {
		content = append(content, chunk...)
	}
	if !strings.Contains(string(content), "starting --target noncoding --duration 1") {
		t.Fatalf("unexpected streamed log: %q", content)
	}
}

func TestCheckToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	withToken := func(token string) context.Context {
		return metadata.NewIncomingContext(context.Background(),
			metadata.Pairs(tokenKey, token))
	}

	if err := checkToken(context.Background(), nil); err != nil {
		t.Fatalf("no stored hash must admit everyone, got %v", err)
	}
	if err := checkToken(withToken("open-sesame"), hash); err != nil {
		t.Fatalf("correct token rejected: %v", err)
	}
	if err := checkToken(context.Background(), hash); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated for missing token, got %v", err)
	}
	if err := checkToken(withToken("wrong"), hash); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated for wrong token, got %v", err)
	}
}

func TestGenerateToken(t *testing.T) {
	logger := log.Discarder()
	tdir, err := ioutil.TempDir("", "TestGenerateToken")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tdir)

	store, err := runlog.Open(logger, tdir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	token, err := GenerateToken(store)
	if err != nil {
		t.Fatal(err)
	}
	if matched, _ := regexp.MatchString(`^([a-z]{5}-){7}[a-z]{5}$`, token); !matched {
		t.Fatalf("unexpected token shape: %q", token)
	}

	hash, err := store.TokenHash()
	if err != nil {
		t.Fatal(err)
	}
	if hash == nil {
		t.Fatal("expected a stored token hash")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
		t.Fatalf("stored hash does not match the token: %v", err)
	}
}
