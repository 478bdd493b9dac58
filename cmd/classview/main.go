package main

import (
	"os"

	"github.com/conduit-lang/classview/internal/cli/commands"
)

// Version information is injected at build time, e.g.
//
//	go build -ldflags "-X github.com/conduit-lang/classview/internal/cli/commands.Version=v1.2.0"
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
