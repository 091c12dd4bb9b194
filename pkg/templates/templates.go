// Package templates builds ready-wired standard control groups. Inputs and
// outputs are left unlinked for the user to connect to the network.
package templates

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dukex/rtcontrol/pkg/models"
)

// Kind names a standard control group.
type Kind string

const (
	KindPID               Kind = "pid"
	KindInterval          Kind = "interval"
	KindTime              Kind = "time"
	KindRelativeTime      Kind = "relative_time"
	KindHydraulic         Kind = "hydraulic"
	KindInvertor          Kind = "invertor"
	KindTimeCondition     Kind = "time_condition"
	KindStandardCondition Kind = "standard_condition"
)

var ErrUnknownKind = errors.New("unknown control group template")

type factory func(group *models.ControlGroup)

var factories = map[Kind]factory{
	KindPID: func(g *models.ControlGroup) {
		measuredToSetting(g, models.NewPIDRule("PID"))
	},
	KindInterval: func(g *models.ControlGroup) {
		measuredToSetting(g, models.NewIntervalRule("Interval"))
	},
	KindTime: func(g *models.ControlGroup) {
		setting(g, models.NewTimeRule("Time"))
	},
	KindRelativeTime: func(g *models.ControlGroup) {
		rule := models.NewRelativeTimeRule("Relative time")
		rule.Table = []models.TablePoint{{X: 0, Y: 0}, {X: 3600, Y: 1}}
		setting(g, rule)
	},
	KindHydraulic: func(g *models.ControlGroup) {
		rule := models.NewHydraulicRule("Lookup table")
		rule.Table = []models.TablePoint{{X: 0, Y: 0}, {X: 1, Y: 1}}
		measuredToSetting(g, rule)
	},
	KindInvertor: func(g *models.ControlGroup) {
		measuredToSetting(g, models.NewInvertorRule("Invertor"))
	},
	KindTimeCondition: func(g *models.ControlGroup) {
		rule := models.NewTimeRule("Time")
		setting(g, rule)

		condition := models.NewTimeCondition("Time condition")
		condition.AddTrueOutput(models.RuleRef(rule.ID))
		g.AddCondition(condition)
	},
	KindStandardCondition: func(g *models.ControlGroup) {
		pid := models.NewPIDRule("PID")
		input := measuredToSetting(g, pid)

		fallback := models.NewFactorRule("Factor", 1)
		fallback.AddOutput(g.Outputs[0].ID)
		g.AddRule(fallback)

		condition := models.NewStandardCondition("Condition", models.OperationGreater, 0)
		condition.SetInput(models.InputRef(input.ID))
		condition.AddTrueOutput(models.RuleRef(pid.ID))
		condition.AddFalseOutput(models.RuleRef(fallback.ID))
		g.AddCondition(condition)
	},
}

// Kinds lists the available templates in name order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	return kinds
}

// New builds a control group of the given kind.
func New(kind Kind, name string) (*models.ControlGroup, error) {
	build, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	group := models.NewControlGroup(name)
	build(group)

	return group, nil
}

// setting adds an output driven by rule.
func setting(g *models.ControlGroup, rule models.Rule) {
	output := models.NewOutput("Setting", "", "")
	rule.Base().AddOutput(output.ID)

	g.AddOutput(output)
	g.AddRule(rule)
}

// measuredToSetting adds an input feeding rule and an output driven by it.
func measuredToSetting(g *models.ControlGroup, rule models.Rule) *models.Input {
	input := models.NewInput("Measured value", "", "")
	rule.Base().AddInput(models.InputRef(input.ID))

	g.AddInput(input)
	setting(g, rule)

	return input
}
