package main

import (
	"os"

	"github.com/tphakala/birdcatalog/cmd"
	"github.com/tphakala/birdcatalog/internal/buildinfo"
)

// Set with -ldflags "-X main.version=... -X main.buildDate=...".
var (
	version   string
	buildDate string
)

func main() {
	rootCmd := cmd.RootCommand(buildinfo.NewContext(version, buildDate))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
