package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dukex/rtcontrol/pkg/document"
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/templates"
	"github.com/dukex/rtcontrol/pkg/timeseries"
	"github.com/urfave/cli/v3"
)

func TemplateCommand() *cli.Command {
	return &cli.Command{
		Name:      "template",
		Aliases:   []string{"t"},
		Usage:     "Print a model holding a standard control group",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Control group name", Value: "Control group"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format (yaml, json)", Value: "yaml"},
			&cli.StringFlag{Name: "start", Usage: "Model start time (RFC 3339)"},
			&cli.StringFlag{Name: "stop", Usage: "Model stop time (RFC 3339)"},
			&cli.DurationFlag{Name: "step", Usage: "Model time step", Value: time.Hour},
			&cli.StringFlag{Name: "schedule", Usage: "Cron expression filling time series of the group"},
			&cli.FloatFlag{Name: "on", Usage: "Series value while the schedule fires", Value: 1},
			&cli.FloatFlag{Name: "off", Usage: "Series value otherwise", Value: 0},
			&cli.BoolFlag{Name: "list", Usage: "List the available kinds"},
		},
		Action: func(_ context.Context, command *cli.Command) error {
			setupLogging(command)

			w := command.Root().Writer

			if command.Bool("list") {
				for _, kind := range templates.Kinds() {
					fmt.Fprintln(w, kind)
				}

				return nil
			}

			group, err := templates.New(templates.Kind(command.Args().First()), command.String("name"))
			if err != nil {
				return err
			}

			model := models.NewRealTimeControlModel(command.String("name"))
			model.TimeStep = command.Duration("step")

			if model.StartTime, err = parseTime(command.String("start")); err != nil {
				return err
			}

			if model.StopTime, err = parseTime(command.String("stop")); err != nil {
				return err
			}

			if expr := command.String("schedule"); expr != "" {
				series, err := timeseries.FromSchedule(expr, model.StartTime, model.StopTime, model.TimeStep,
					command.Float("on"), command.Float("off"))
				if err != nil {
					return err
				}

				fillTimeSeries(group, series)
			}

			model.AddControlGroup(group)

			data, err := document.Encode(model, document.Format(command.String("format")))
			if err != nil {
				return err
			}

			_, err = w.Write(data)

			return err
		},
	}
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}

	return t, nil
}

// fillTimeSeries gives every series-driven rule and condition of group its own copy of series.
func fillTimeSeries(group *models.ControlGroup, series models.TimeSeries) {
	for _, rule := range group.Rules {
		switch r := rule.(type) {
		case *models.TimeRule:
			r.TimeSeries = append(models.TimeSeries(nil), series...)
		case *models.PIDRule:
			if r.SetpointType == models.SetpointTimeSeries {
				r.TimeSeries = append(models.TimeSeries(nil), series...)
			}
		}
	}

	for _, condition := range group.Conditions {
		if tc, ok := condition.(*models.TimeCondition); ok {
			tc.TimeSeries = append(models.TimeSeries(nil), series...)
		}
	}
}
