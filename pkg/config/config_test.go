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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riserctl/riserctl/pkg/launch"
)

func writeConfig(t *testing.T, body string) (string, func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "riserctl-config")
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "riserctl.json")
	if err := ioutil.WriteFile(p, []byte(body), 0644); err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return p, func() { os.RemoveAll(dir) }
}

func TestLoadMissingImplicitPath(t *testing.T) {
	dir, err := ioutil.TempDir("", "riserctl-config")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults for a missing implicit config, got error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected %+v, got %+v", Default(), cfg)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load("/nonexistent/riserctl.json"); err == nil {
		t.Fatal("expected an error for a missing explicit config")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	p, cleanup := writeConfig(t, `{
		"interpreter": "python3.11",
		"work_dir": "/data/minknow",
		"agent_addr": "sequencer:10970",
		"agent_token": "lusab-babad-sanod-mabiv-fasuz-ruvah-gutuk-disab",
		"short_flags": true,
		"watchdog_slack": "5m"
	}`)
	defer cleanup()

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Interpreter != "python3.11" {
		t.Errorf("expected interpreter python3.11, got %q", cfg.Interpreter)
	}
	if cfg.WorkDir != "/data/minknow" {
		t.Errorf("expected work dir /data/minknow, got %q", cfg.WorkDir)
	}
	if cfg.AgentAddr != "sequencer:10970" {
		t.Errorf("expected agent addr sequencer:10970, got %q", cfg.AgentAddr)
	}
	if cfg.AgentToken != "lusab-babad-sanod-mabiv-fasuz-ruvah-gutuk-disab" {
		t.Errorf("unexpected agent token %q", cfg.AgentToken)
	}
	if !cfg.ShortFlags {
		t.Error("expected short flags enabled")
	}
	if cfg.WatchdogSlack != 5*time.Minute {
		t.Errorf("expected watchdog slack 5m, got %v", cfg.WatchdogSlack)
	}

	// Everything the file is silent on keeps its default.
	def := Default()
	if cfg.EnrichScript != def.EnrichScript || cfg.RejectScript != def.RejectScript {
		t.Errorf("expected default scripts, got %q and %q", cfg.EnrichScript, cfg.RejectScript)
	}
	if cfg.DBDir != def.DBDir {
		t.Errorf("expected default db dir, got %q", cfg.DBDir)
	}
	if cfg.Grace != def.Grace {
		t.Errorf("expected default grace, got %v", cfg.Grace)
	}
}

func TestLoadMalformed(t *testing.T) {
	for _, body := range []string{
		`{`,
		`{"watchdog_slack": "5 parsecs"}`,
		`{"grace": "soon"}`,
	} {
		p, cleanup := writeConfig(t, body)
		if _, err := Load(p); err == nil {
			t.Errorf("expected an error for %q", body)
		}
		cleanup()
	}
}

func TestInvocation(t *testing.T) {
	cfg := Default()
	cfg.Interpreter = "python3.11"
	cfg.WorkDir = "/data/minknow"
	cfg.ShortFlags = true

	iv := cfg.Invocation(launch.Enrich)
	if iv.Interpreter != "python3.11" || iv.Script != launch.EnrichScript {
		t.Errorf("expected configured interpreter with %s, got %q %q",
			launch.EnrichScript, iv.Interpreter, iv.Script)
	}
	if iv.WorkDir != "/data/minknow" || !iv.ShortFlags {
		t.Errorf("expected work dir and short flags carried over, got %+v", iv)
	}

	iv = cfg.Invocation(launch.RejectAll)
	if iv.Script != launch.RejectScript {
		t.Errorf("expected %s for reject-all, got %q", launch.RejectScript, iv.Script)
	}
}
