// Package main provides the rtcontrol command line tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dukex/rtcontrol/pkg/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func newCommand() *cli.Command {
	return &cli.Command{
		Name:                  "rtcontrol",
		Usage:                 "Inspect and validate real-time control models",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
		},
		Commands: []*cli.Command{
			ValidateCommand(),
			TriggersCommand(),
			InputsCommand(),
			TemplateCommand(),
			ServeCommand(),
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(command *cli.Command) {
	log.SetupWriter(command.Root().ErrWriter, command.String("log-level"))
}
