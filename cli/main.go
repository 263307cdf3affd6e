package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kmaitland/testhub/internal/signals"
	"github.com/kmaitland/testhub/internal/version"
)

func main() {
	app := cli.NewApp()
	app.Name = "testhub"
	app.Usage = "Manage projects, test cases, and test runs on a TestHub server"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "Log every API request and response to stderr",
		},
	}
	app.Commands = []*cli.Command{
		executionCommand,
		loginCommand,
		logoutCommand,
		projectCommand,
		registerCommand,
		testCaseCommand,
		whoamiCommand,
	}
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
