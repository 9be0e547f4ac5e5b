// userd CLI - command-line interface for the userd user record server
package main

import (
	"github.com/ABHINAV2087/REST-API-Learning/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate

	cli.Execute()
}
