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
	"io"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/riserctl/riserctl/pkg/config"
	"github.com/riserctl/riserctl/pkg/launch"
	"github.com/riserctl/riserctl/pkg/log"
	pb "github.com/riserctl/riserctl/pkg/pb/control"
	"github.com/riserctl/riserctl/pkg/proc"
	"github.com/riserctl/riserctl/pkg/runlog"
	"github.com/riserctl/riserctl/pkg/streaming"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// controlServer launches tool runs on the agent's host and supervises them:
// every launch gets a registry record, a reaper goroutine waiting on the
// child, and a watchdog entry if the run is bounded.
type controlServer struct {
	logger   *log.Logger
	store    *runlog.Store
	cfg      config.Config
	watchdog *watchdog

	mu      sync.Mutex
	running map[string]*proc.Managed
	// reasons carries stop intent to the reaper, which records whatever
	// ending it actually observes.
	reasons map[string]string
}

var _ pb.ControlServiceServer = &controlServer{}

func newControlServer(logger *log.Logger, store *runlog.Store, cfg config.Config) *controlServer {
	return &controlServer{
		logger:  logger,
		store:   store,
		cfg:     cfg,
		running: make(map[string]*proc.Managed),
		reasons: make(map[string]string),
	}
}

func (s *controlServer) LaunchRun(ctx context.Context, req *pb.LaunchRunRequest) (*pb.LaunchRunResponse, error) {
	iv := s.cfg.Invocation(launch.Mode(req.Mode))
	iv.Duration = time.Duration(req.DurationSeconds) * time.Second
	if req.ShortFlags {
		iv.ShortFlags = true
	}
	if req.LogPath != "" {
		iv.LogPath = req.LogPath
	}

	if iv.Mode == launch.Enrich {
		target, err := launch.ParseClass(req.Target)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		iv.Target = target
	} else {
		iv.Target = launch.Class(req.Target)
	}
	if err := iv.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	rec, err := s.launch(&iv)
	if err != nil {
		return nil, err
	}
	return &pb.LaunchRunResponse{Run: WireRecord(rec)}, nil
}

func (s *controlServer) launch(iv *launch.Invocation) (*runlog.Record, error) {
	id, err := runlog.NewRunID()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	managed, err := proc.StartManaged(iv.Argv(), iv.WorkDir, iv.LogFile())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "unable to start %s: %v", iv, err)
	}

	rec := runlog.NewRecord(id, iv, managed.PID(), false, time.Now())
	if err := s.store.Create(rec); err != nil {
		// The child is already running, and without a record nobody would
		// ever find it again; put it down before reporting the failure.
		proc.Kill(managed.PID())
		managed.Wait()
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.mu.Lock()
	s.running[id] = managed
	s.mu.Unlock()

	s.watchdog.arm(id, rec.Deadline)
	go s.reap(id, managed)

	s.logger.Infof("launched run %s: %s (pid %d)", id, iv, managed.PID())
	return rec, nil
}

// reap records the ending the child actually had. A run that is interrupted
// but still exits cleanly counts as completed; the stop intent, if any, only
// annotates signal deaths.
func (s *controlServer) reap(id string, managed *proc.Managed) {
	st, err := managed.Wait()

	s.mu.Lock()
	delete(s.running, id)
	reason := s.reasons[id]
	delete(s.reasons, id)
	s.mu.Unlock()
	s.watchdog.disarm(id)

	state, exitCode, errText := runlog.StateCompleted, 0, ""
	switch {
	case err != nil:
		state, exitCode, errText = runlog.StateFailed, -1, err.Error()
	case st.Signaled:
		state, exitCode, errText = runlog.StateStopped, -1, reason
	case st.Code != 0:
		state, exitCode, errText = runlog.StateFailed, st.Code, ""
	}

	if err := s.store.Finish(id, state, exitCode, errText); err != nil {
		if err == runlog.ErrIllegalTransition {
			s.logger.Debugf("run %s was already finished elsewhere", id)
			return
		}
		s.logger.Errorf("unable to record end of run %s: %v", id, err)
		return
	}
	s.logger.Infof("run %s ended %s (exit code %d)", id, state, exitCode)
}

func (s *controlServer) GetRun(ctx context.Context, req *pb.GetRunRequest) (*pb.GetRunResponse, error) {
	rec, err := s.store.Get(req.Id)
	if err == runlog.ErrNotFound {
		return nil, status.Errorf(codes.NotFound, "no run %s", req.Id)
	}
	if err != nil {
		return nil, err
	}
	return &pb.GetRunResponse{Run: WireRecord(rec)}, nil
}

func (s *controlServer) ListRuns(ctx context.Context, req *pb.ListRunsRequest) (*pb.ListRunsResponse, error) {
	var recs []*runlog.Record
	var err error
	if req.RunningOnly {
		recs, err = s.store.Running()
	} else {
		recs, err = s.store.List()
	}
	if err != nil {
		return nil, err
	}

	resp := &pb.ListRunsResponse{Runs: make([]*pb.RunRecord, 0, len(recs))}
	for _, rec := range recs {
		resp.Runs = append(resp.Runs, WireRecord(rec))
	}
	return resp, nil
}

func (s *controlServer) StopRun(ctx context.Context, req *pb.StopRunRequest) (*pb.StopRunResponse, error) {
	rec, err := s.store.Get(req.Id)
	if err == runlog.ErrNotFound {
		return nil, status.Errorf(codes.NotFound, "no run %s", req.Id)
	}
	if err != nil {
		return nil, err
	}
	if rec.State.Terminal() {
		// Stopping a finished run is a no-op, not an error.
		return &pb.StopRunResponse{Run: WireRecord(rec)}, nil
	}

	grace := s.cfg.Grace
	if req.GraceSeconds > 0 {
		grace = time.Duration(req.GraceSeconds) * time.Second
	}

	s.mu.Lock()
	_, supervised := s.running[req.Id]
	if supervised {
		s.reasons[req.Id] = "stopped by operator"
	}
	s.mu.Unlock()

	forced, err := proc.Terminate(s.logger, rec.PID, grace)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "unable to stop run %s: %v", req.Id, err)
	}

	if supervised {
		rec, err = s.awaitTerminal(req.Id, 2*time.Second)
	} else {
		// The process predates this agent, so no reaper is watching it;
		// record the ending here.
		s.watchdog.disarm(req.Id)
		err = s.store.Finish(req.Id, runlog.StateStopped, -1, "stopped by operator")
		if err == runlog.ErrIllegalTransition {
			err = nil
		}
		if err == nil {
			rec, err = s.store.Get(req.Id)
		}
	}
	if err != nil {
		return nil, err
	}
	return &pb.StopRunResponse{Run: WireRecord(rec), Forced: forced}, nil
}

// awaitTerminal gives the reaper a moment to record an ending it is about to
// observe.
func (s *controlServer) awaitTerminal(id string, patience time.Duration) (*runlog.Record, error) {
	deadline := time.Now().Add(patience)
	for {
		rec, err := s.store.Get(id)
		if err != nil {
			return nil, err
		}
		if rec.State.Terminal() || time.Now().After(deadline) {
			return rec, nil
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// expire is the watchdog's callback: the run overran deadline+slack.
func (s *controlServer) expire(id string) {
	rec, err := s.store.Get(id)
	if err != nil {
		s.logger.Errorf("watchdog unable to read run %s: %v", id, err)
		return
	}
	if rec.State.Terminal() {
		return
	}
	s.logger.Warnf("run %s overran its deadline %v, stopping it",
		id, rec.Deadline.Format(time.RFC3339))

	s.mu.Lock()
	_, supervised := s.running[id]
	if supervised {
		s.reasons[id] = "stopped after overrunning its deadline"
	}
	s.mu.Unlock()

	if _, err := proc.Terminate(s.logger, rec.PID, s.cfg.Grace); err != nil {
		s.logger.Errorf("watchdog unable to stop run %s: %v", id, err)
		return
	}
	if !supervised {
		err := s.store.Finish(id, runlog.StateStopped, -1, "stopped after overrunning its deadline")
		if err != nil && err != runlog.ErrIllegalTransition {
			s.logger.Errorf("watchdog unable to record end of run %s: %v", id, err)
		}
	}
}

func (s *controlServer) StreamRunLog(req *pb.StreamRunLogRequest, stream pb.ControlService_StreamRunLogServer) error {
	rec, err := s.store.Get(req.Id)
	if err == runlog.ErrNotFound {
		return status.Errorf(codes.NotFound, "no run %s", req.Id)
	}
	if err != nil {
		return err
	}

	if !req.Follow {
		content, err := ioutil.ReadFile(rec.LogPath)
		if err != nil {
			if os.IsNotExist(err) {
				return status.Errorf(codes.NotFound, "run %s has no log at %s", req.Id, rec.LogPath)
			}
			return err
		}
		chunker := streaming.NewChunker(content)
		for chunker.Next() {
			if err := stream.Send(&pb.StreamRunLogResponse{Chunk: chunker.Value()}); err != nil {
				return err
			}
		}
		return nil
	}

	follower, err := streaming.OpenFollower(rec.LogPath, streaming.DefaultPollInterval)
	if err != nil {
		if os.IsNotExist(err) {
			return status.Errorf(codes.NotFound, "run %s has no log at %s", req.Id, rec.LogPath)
		}
		return err
	}
	defer follower.Close()

	stopped := func() bool {
		cur, err := s.store.Get(req.Id)
		if err != nil {
			return true
		}
		return cur.State.Terminal()
	}
	for {
		chunk, err := follower.Next(stream.Context(), stopped)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := stream.Send(&pb.StreamRunLogResponse{Chunk: chunk}); err != nil {
			return err
		}
	}
}

// WireRecord converts a registry record for the wire. Timestamps flatten to
// Unix seconds, zero meaning unset.
func WireRecord(rec *runlog.Record) *pb.RunRecord {
	w := &pb.RunRecord{
		Id:        rec.ID,
		Mode:      string(rec.Mode),
		Target:    string(rec.Target),
		Ejects:    string(rec.Ejects),
		Argv:      rec.Argv,
		WorkDir:   rec.WorkDir,
		LogPath:   rec.LogPath,
		Pid:       int64(rec.PID),
		Detached:  rec.Detached,
		State:     string(rec.State),
		ExitCode:  int64(rec.ExitCode),
		Error:     rec.Error,
		StartedAt: rec.StartedAt.Unix(),
	}
	if !rec.FinishedAt.IsZero() {
		w.FinishedAt = rec.FinishedAt.Unix()
	}
	if !rec.Deadline.IsZero() {
		w.Deadline = rec.Deadline.Unix()
	}
	return w
}

// RecordFromWire is WireRecord's inverse, used by commands rendering runs
// served by a remote agent.
func RecordFromWire(w *pb.RunRecord) *runlog.Record {
	rec := &runlog.Record{
		ID:        w.Id,
		Mode:      launch.Mode(w.Mode),
		Target:    launch.Class(w.Target),
		Ejects:    launch.Class(w.Ejects),
		Argv:      w.Argv,
		WorkDir:   w.WorkDir,
		LogPath:   w.LogPath,
		PID:       int(w.Pid),
		Detached:  w.Detached,
		State:     runlog.State(w.State),
		ExitCode:  int(w.ExitCode),
		Error:     w.Error,
		StartedAt: time.Unix(w.StartedAt, 0).UTC(),
	}
	if w.FinishedAt != 0 {
		rec.FinishedAt = time.Unix(w.FinishedAt, 0).UTC()
	}
	if w.Deadline != 0 {
		rec.Deadline = time.Unix(w.Deadline, 0).UTC()
	}
	return rec
}
