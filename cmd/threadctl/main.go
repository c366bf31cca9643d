// File: cmd/threadctl/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// threadctl drives the hioload-threads layer from the command line: contention
// runs, recursive and trylock walkthroughs, and backend probes.

package main

import (
	"os"

	"github.com/momentics/hioload-threads/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(1)
	}
}
