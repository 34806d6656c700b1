// Package main provides the entry point for the chored CLI.
package main

import (
	"context"
	"os"

	"github.com/chored-dev/chored/internal/cli"
	"github.com/chored-dev/chored/internal/signal"
)

// Set at build time via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	handler := signal.NewHandler(context.Background())

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	handler.Stop()

	if code, ok := handler.ExitCode(); ok {
		os.Exit(code)
	}
	os.Exit(cli.ExitCodeForError(err))
}
