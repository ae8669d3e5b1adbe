// Package main is the entry point for the pgsql-hackers digest service
package main

import (
	"context"
	"os"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/cmd"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(context.Background()); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
