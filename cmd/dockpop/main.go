package main

import (
	"fmt"

	"github.com/bnema/dockpop/internal/cli/cmd"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersion(fmt.Sprintf("%s (%s, built %s)", version, commit, buildDate))
	cmd.Execute()
}
