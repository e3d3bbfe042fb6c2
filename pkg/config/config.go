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

// Package config loads riserctl's optional JSON configuration file. The file
// pins per-host facts (where the tool scripts live, which directory holds the
// registry) so they need not be repeated on every command line; flags still
// override anything set here.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/riserctl/riserctl/pkg/launch"
	"github.com/riserctl/riserctl/pkg/proc"
)

// DefaultPath is consulted when no -config flag is given; a missing file
// there simply yields the defaults.
const DefaultPath = "riserctl.json"

// DefaultDBDir is the registry directory used when neither flag nor config
// name one.
const DefaultDBDir = "riserctl-db"

// Config carries the resolved settings.
type Config struct {
	Interpreter  string
	EnrichScript string
	RejectScript string
	WorkDir      string
	DBDir        string
	AgentAddr    string
	AgentToken   string
	ShortFlags   bool

	// WatchdogSlack is added to a run's deadline before the watchdog steps
	// in; the tool is expected to wind down on its own at the deadline.
	WatchdogSlack time.Duration
	// Grace is the pause between interrupt and kill when stopping a run.
	Grace time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interpreter:   launch.DefaultInterpreter,
		EnrichScript:  launch.EnrichScript,
		RejectScript:  launch.RejectScript,
		DBDir:         DefaultDBDir,
		WatchdogSlack: 10 * time.Minute,
		Grace:         proc.DefaultGrace,
	}
}

// fileConfig is the on-disk shape. Durations are Go duration strings.
type fileConfig struct {
	Interpreter   string `json:"interpreter"`
	EnrichScript  string `json:"enrich_script"`
	RejectScript  string `json:"reject_script"`
	WorkDir       string `json:"work_dir"`
	DBDir         string `json:"db_dir"`
	AgentAddr     string `json:"agent_addr"`
	AgentToken    string `json:"agent_token"`
	ShortFlags    *bool  `json:"short_flags"`
	WatchdogSlack string `json:"watchdog_slack"`
	Grace         string `json:"grace"`
}

// Load reads the configuration at path, layered over the defaults. An empty
// path means DefaultPath, and in that case a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	var fc fileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return cfg, fmt.Errorf("malformed config %s: %v", path, err)
	}

	if fc.Interpreter != "" {
		cfg.Interpreter = fc.Interpreter
	}
	if fc.EnrichScript != "" {
		cfg.EnrichScript = fc.EnrichScript
	}
	if fc.RejectScript != "" {
		cfg.RejectScript = fc.RejectScript
	}
	if fc.WorkDir != "" {
		cfg.WorkDir = fc.WorkDir
	}
	if fc.DBDir != "" {
		cfg.DBDir = fc.DBDir
	}
	if fc.AgentAddr != "" {
		cfg.AgentAddr = fc.AgentAddr
	}
	if fc.AgentToken != "" {
		cfg.AgentToken = fc.AgentToken
	}
	if fc.ShortFlags != nil {
		cfg.ShortFlags = *fc.ShortFlags
	}
	if fc.WatchdogSlack != "" {
		d, err := time.ParseDuration(fc.WatchdogSlack)
		if err != nil {
			return cfg, fmt.Errorf("malformed watchdog_slack in %s: %v", path, err)
		}
		cfg.WatchdogSlack = d
	}
	if fc.Grace != "" {
		d, err := time.ParseDuration(fc.Grace)
		if err != nil {
			return cfg, fmt.Errorf("malformed grace in %s: %v", path, err)
		}
		cfg.Grace = d
	}
	return cfg, nil
}

// Invocation builds a launch.Invocation for the given mode from the
// configured tool locations.
func (c Config) Invocation(mode launch.Mode) launch.Invocation {
	iv := launch.Invocation{
		Mode:        mode,
		Interpreter: c.Interpreter,
		Script:      c.EnrichScript,
		WorkDir:     c.WorkDir,
		ShortFlags:  c.ShortFlags,
	}
	if mode == launch.RejectAll {
		iv.Script = c.RejectScript
	}
	return iv
}
