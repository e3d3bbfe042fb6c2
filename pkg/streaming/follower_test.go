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
	"io/ioutil"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func tempLog(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "follower-test")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "run.log")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return path, func() { os.RemoveAll(dir) }
}

func TestFollowerReadsExistingThenAppended(t *testing.T) {
	path, cleanup := tempLog(t, "existing\n")
	defer cleanup()

	fl, err := OpenFollower(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer fl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chunk, err := fl.Next(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(chunk) != "existing\n" {
		t.Errorf("expected existing content, got %q", chunk)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		f.WriteString("appended\n")
		f.Close()
	}()

	chunk, err = fl.Next(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(chunk) != "appended\n" {
		t.Errorf("expected appended content, got %q", chunk)
	}
}

func TestFollowerStopDrainsPendingBytes(t *testing.T) {
	path, cleanup := tempLog(t, "pending\n")
	defer cleanup()

	fl, err := OpenFollower(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer fl.Close()

	ctx := context.Background()
	stopped := func() bool { return true }

	// Bytes written before the stop condition turned true still arrive.
	chunk, err := fl.Next(ctx, stopped)
	if err != nil {
		t.Fatal(err)
	}
	if string(chunk) != "pending\n" {
		t.Errorf("expected pending content, got %q", chunk)
	}

	if _, err := fl.Next(ctx, stopped); err != io.EOF {
		t.Errorf("expected io.EOF after drain, got %v", err)
	}
}

func TestFollowerContextCancellation(t *testing.T) {
	path, cleanup := tempLog(t, "")
	defer cleanup()

	fl, err := OpenFollower(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer fl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if _, err := fl.Next(ctx, nil); err != context.DeadlineExceeded {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestFollowerStopFlipsMidFollow(t *testing.T) {
	path, cleanup := tempLog(t, "")
	defer cleanup()

	fl, err := OpenFollower(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer fl.Close()

	var done int32
	go func() {
		time.Sleep(50 * time.Millisecond)
		atomic.StoreInt32(&done, 1)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = fl.Next(ctx, func() bool { return atomic.LoadInt32(&done) == 1 })
	if err != io.EOF {
		t.Errorf("expected io.EOF once the stop condition flipped, got %v", err)
	}
}
