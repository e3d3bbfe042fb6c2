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

// Package archivecmd implements 'riserctl archive', which copies finished
// runs into long-lived storage.
package archivecmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/riserctl/riserctl/pkg/archive"
	"github.com/riserctl/riserctl/pkg/cli"
	"github.com/riserctl/riserctl/pkg/config"
	"github.com/riserctl/riserctl/pkg/logflag"
	"github.com/riserctl/riserctl/pkg/runlog"
)

var ArchiveCmd = &cli.Command{
	Run:       archiveCmdRun,
	UsageLine: "archive [-backend local|gdrive] [-dir <path>] [-list] [run-id]",
	Short:     "archive a finished run's log and record",
	Long: `
Archive copies a finished run out of the registry into long-lived storage:
the tool's log file plus a JSON manifest carrying the run record, the log's
size, and its SHA-256. Only finished runs can be archived; a running tool
would keep appending behind the archive's back.

The local backend stores archives as files under -dir. The gdrive backend
stores them in Google Drive: -credentials names an OAuth2 client credentials
file, and the first use walks through a browser authorization whose token is
cached at -token-cache for later runs.

With -list, archive instead lists what the backend already holds.
    `,
}

func archiveCmdRun(cmd *cli.Command, args []string) error {
	var (
		backend     string
		dir         string
		credentials string
		tokenCache  string
		list        bool
		configPath  string
		dbStore     string
	)
	cmd.FlagSet.StringVar(&backend, "backend", "local", "Archive backend: local or gdrive")
	cmd.FlagSet.StringVar(&dir, "dir", "riserctl-archive",
		"Directory for the local backend's archives")
	cmd.FlagSet.StringVar(&credentials, "credentials", "credentials.json",
		"OAuth2 client credentials file for the gdrive backend")
	cmd.FlagSet.StringVar(&tokenCache, "token-cache", "token.json",
		"Cached OAuth2 token file for the gdrive backend")
	cmd.FlagSet.BoolVar(&list, "list", false, "List archived runs instead of archiving")
	cmd.FlagSet.StringVar(&configPath, "config", "", "Path to the riserctl config file")
	cmd.FlagSet.StringVar(&dbStore, "db-store", "",
		"Folder the run registry is stored in (overrides config)")
	logflags := logflag.Register(&cmd.FlagSet)

	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}
	logger := logflags.NewLogger()

	var store archive.Store
	var err error
	switch backend {
	case "local":
		store, err = archive.NewLocalStore(dir)
	case "gdrive":
		store, err = archive.NewDriveStore(logger, credentials, tokenCache)
	default:
		return cli.CmdParseError(fmt.Errorf("unknown backend %q, expected local or gdrive", backend))
	}
	if err != nil {
		return err
	}
	archiver := archive.NewArchiver(logger, store)

	if list {
		if cmd.FlagSet.NArg() != 0 {
			return cli.CmdParseError(fmt.Errorf("-list takes no run id"))
		}
		manifests, err := archiver.List()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMODE\tSTATE\tLOG BYTES\tARCHIVED")
		for _, m := range manifests {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				m.Run.ID, m.Run.Mode, m.Run.State, m.LogBytes,
				m.ArchivedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	}

	if cmd.FlagSet.NArg() != 1 {
		return cli.CmdParseError(fmt.Errorf("expected one run id, got %d arguments",
			cmd.FlagSet.NArg()))
	}
	id := cmd.FlagSet.Arg(0)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbStore != "" {
		cfg.DBDir = dbStore
	}

	registry, err := runlog.Open(logger, cfg.DBDir)
	if err != nil {
		return err
	}
	defer registry.Close()

	rec, err := registry.Get(id)
	if err != nil {
		return err
	}
	if archiver.Archived(id) {
		return fmt.Errorf("run %s is already archived", id)
	}

	m, err := archiver.Archive(rec)
	if err != nil {
		return err
	}
	fmt.Printf("%s\tarchived\t%d log bytes\n", id, m.LogBytes)
	return nil
}
