// gdw — gross die per wafer calculator
//
// Build:
//
//	go build -o gdw ./cmd/gdw
//
// Version information is injected at build time:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/gdw
package main

import (
	"os"

	"github.com/dougthor42/gdw/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
