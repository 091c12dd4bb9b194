package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dukex/rtcontrol/pkg/cmd"
	"github.com/dukex/rtcontrol/pkg/config"
	"github.com/dukex/rtcontrol/pkg/document"
	"github.com/dukex/rtcontrol/pkg/graph"
	"github.com/dukex/rtcontrol/pkg/log"
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/services"
	"github.com/dukex/rtcontrol/pkg/validation"
	"github.com/urfave/cli/v3"
)

var (
	ErrMissingFile = errors.New("model file argument is required")
	ErrInvalid     = errors.New("model is invalid")
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format (text, json)",
		Value:   "text",
	}
}

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a model document",
		ArgsUsage: "<model.yaml|model.json>",
		Flags: []cli.Flag{
			formatFlag(),
			&cli.StringFlag{Name: "coupling", Aliases: []string{"c"}, Usage: "Coupling YAML file overriding the one stored in the model"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			setupLogging(command)

			model, err := readModel(command)
			if err != nil {
				return err
			}

			tracer, shutdown, err := cmd.NewTracer(ctx, command.Bool("tracing"), "rtcontrol")
			if err != nil {
				return err
			}

			defer func() {
				if err := shutdown(ctx); err != nil {
					log.WithModule("cli").ErrorContext(ctx, "Failed to shutdown tracer", "error", err)
				}
			}()

			opts := []validation.Option{validation.WithTracer(tracer)}

			if path := command.String("coupling"); path != "" {
				coupling, err := config.LoadCoupling(path)
				if err != nil {
					return err
				}

				opts = append(opts, validation.WithEnvironment(coupling))
			}

			validator := validation.New(log.WithModule("validation"), opts...)

			report, err := validator.Validate(ctx, model)
			if err != nil {
				return err
			}

			w := command.Root().Writer
			if command.String("format") == "json" {
				if err := writeJSON(w, report); err != nil {
					return err
				}
			} else {
				writeReport(w, report)
			}

			if !report.IsValid() {
				return fmt.Errorf("%w: %d error(s), %d warning(s)", ErrInvalid, report.ErrorCount(), report.WarningCount())
			}

			return nil
		},
	}
}

func TriggersCommand() *cli.Command {
	return &cli.Command{
		Name:      "triggers",
		Usage:     "List the nodes evaluation of a control group starts from",
		ArgsUsage: "<model file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "group", Aliases: []string{"g"}, Usage: "Control group name or ID", Required: true},
			formatFlag(),
		},
		Action: func(_ context.Context, command *cli.Command) error {
			setupLogging(command)

			group, err := readControlGroup(command)
			if err != nil {
				return err
			}

			triggers, err := graph.RetrieveTriggerObjects(group)
			if err != nil {
				return err
			}

			return writeNodes(command, triggers)
		},
	}
}

func InputsCommand() *cli.Command {
	return &cli.Command{
		Name:      "inputs",
		Usage:     "List the inputs influencing an output",
		ArgsUsage: "<model file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "group", Aliases: []string{"g"}, Usage: "Control group name or ID", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output name or ID", Required: true},
			formatFlag(),
		},
		Action: func(_ context.Context, command *cli.Command) error {
			setupLogging(command)

			group, err := readControlGroup(command)
			if err != nil {
				return err
			}

			output, ok := services.FindOutput(group, command.String("output"))
			if !ok {
				return fmt.Errorf("%w: %q", services.ErrOutputNotFound, command.String("output"))
			}

			inputs, err := graph.InputItemsForOutput(group, output.ID)
			if err != nil {
				return err
			}

			nodes := make([]models.Node, len(inputs))
			for i, input := range inputs {
				nodes[i] = input
			}

			return writeNodes(command, nodes)
		},
	}
}

func readModel(command *cli.Command) (*models.RealTimeControlModel, error) {
	path := command.Args().First()
	if path == "" {
		return nil, ErrMissingFile
	}

	return document.ReadFile(path)
}

func readControlGroup(command *cli.Command) (*models.ControlGroup, error) {
	model, err := readModel(command)
	if err != nil {
		return nil, err
	}

	group, ok := services.FindControlGroup(model, command.String("group"))
	if !ok {
		return nil, fmt.Errorf("%w: %q", services.ErrControlGroupNotFound, command.String("group"))
	}

	return group, nil
}

func writeReport(w io.Writer, report *validation.Report) {
	report.Walk(func(r *validation.Report, depth int) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s\n", indent, r.Name)

		for _, issue := range r.Issues {
			fmt.Fprintf(w, "%s  %s\n", indent, issue)
		}
	})

	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", report.ErrorCount(), report.WarningCount())
}

type nodeOutput struct {
	Kind models.NodeKind `json:"kind"`
	ID   models.ID       `json:"id"`
	Name string          `json:"name"`
}

func writeNodes(command *cli.Command, nodes []models.Node) error {
	w := command.Root().Writer

	if command.String("format") == "json" {
		out := make([]nodeOutput, len(nodes))
		for i, n := range nodes {
			out[i] = nodeOutput{Kind: n.NodeKind(), ID: n.NodeID(), Name: n.NodeName()}
		}

		return writeJSON(w, out)
	}

	for _, n := range nodes {
		fmt.Fprintf(w, "%s\t%s\n", n.NodeKind(), n.NodeName())
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
