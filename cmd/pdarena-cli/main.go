// Package main provides the pdarena-cli operator entrypoint: a thin
// client over pdarena-service's public API.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"pdarena.dev/service/cli/cmd"
)

func main() {
	app := &cli.App{
		Name:  "pdarena-cli",
		Usage: "Operator CLI for pdarena-service",
		Commands: []*cli.Command{
			cmd.TailCommand(),
			cmd.VersionCommand("", "unknown"),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pdarena-cli: %v\n", err)
		os.Exit(1)
	}
}
