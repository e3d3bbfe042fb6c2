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

package rejectall

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/riserctl/riserctl/pkg/cli"
)

func TestDetachRejectedWithDuration(t *testing.T) {
	// The control tool never receives a duration, so a deadline is enforced
	// only by a supervising launcher. A detached run has no supervisor; a
	// bounded detached launch would record a deadline nothing acts on.
	cmd := &cli.Command{}
	cmd.FlagSet.SetOutput(ioutil.Discard)
	err := rejectAllCmdRun(cmd, []string{"-detach", "-duration", "2"})
	if err == nil {
		t.Fatal("expected -detach with -duration to be rejected")
	}
	if !strings.Contains(err.Error(), "-duration") {
		t.Errorf("expected the error to name -duration, got %v", err)
	}
}

func TestDetachRejectedWithAgent(t *testing.T) {
	cmd := &cli.Command{}
	cmd.FlagSet.SetOutput(ioutil.Discard)
	err := rejectAllCmdRun(cmd, []string{"-agent", "localhost:10970", "-detach"})
	if err == nil {
		t.Fatal("expected -agent with -detach to be rejected")
	}
	if !strings.Contains(err.Error(), "-agent") {
		t.Errorf("expected the error to name -agent, got %v", err)
	}
}
