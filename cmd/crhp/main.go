// Command crhp builds lesson plans from the civil rights oral history archive.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/cli"
)

// Set by -ldflags "-X main.version=...".
var version string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
