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

package streaming

import (
	"context"
	"io"
	"os"
	"time"
)

// Follower tails an append-only file, the way a run's log is written: read
// what exists, then poll for more.
type Follower struct {
	f    *os.File
	poll time.Duration
	buf  []byte
}

// OpenFollower opens path for following. A non-positive poll interval selects
// DefaultPollInterval.
func OpenFollower(path string, poll time.Duration) (*Follower, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Follower{f: f, poll: poll, buf: make([]byte, ChunkSize)}, nil
}

// Next returns the file's next chunk, at most ChunkSize bytes. At end of file
// it polls for appended data until ctx is done (returning ctx.Err()) or until
// stop reports that no further appends will come (returning io.EOF). A nil
// stop follows forever.
//
// stop is consulted before each read, so bytes written before stop turned
// true are always drained first.
func (fl *Follower) Next(ctx context.Context, stop func() bool) ([]byte, error) {
	for {
		stopped := stop != nil && stop()

		n, err := fl.f.Read(fl.buf)
		if n > 0 {
			out := make([]byte, n)
			copy(out, fl.buf[:n])
			return out, nil
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		if stopped {
			return nil, io.EOF
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(fl.poll):
		}
	}
}

// Close releases the underlying file.
func (fl *Follower) Close() error {
	return fl.f.Close()
}
