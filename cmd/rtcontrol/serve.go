package main

import (
	"context"
	"strconv"

	"github.com/dukex/rtcontrol/pkg/cmd"
	"github.com/dukex/rtcontrol/pkg/log"
	"github.com/dukex/rtcontrol/pkg/services"
	"github.com/dukex/rtcontrol/pkg/validation"
	"github.com/dukex/rtcontrol/pkg/web"
	"github.com/urfave/cli/v3"
)

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the model API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			setupLogging(command)

			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing RTC API")

			tracer, shutdown, err := cmd.NewTracer(ctx, command.Bool("tracing"), "rtcontrol-api")
			if err != nil {
				return err
			}

			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to shutdown tracer", "error", err)
				}
			}()

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			validator := validation.New(log.WithModule("validation"), validation.WithTracer(tracer))
			service := services.NewModel(persistence, validator, log.WithModule("services"), tracer)

			return web.NewAPIHandlers(service).App().Listen(":" + strconv.Itoa(command.Int("port")))
		},
	}
}
