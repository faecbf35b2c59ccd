package main

import (
	"fmt"
	"os"

	"github.com/appfetch/appfetch/internal/source"
)

// Populated at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	source.SetUserAgentVersion(version)
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
