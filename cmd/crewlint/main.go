package main

import (
	"os"

	"github.com/crewlint/crewlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
