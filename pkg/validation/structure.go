package validation

import (
	"strings"

	"github.com/dukex/rtcontrol/pkg/models"
)

// checkStructure enforces the minimum content of a control group.
func checkStructure(group *models.ControlGroup, report *Report) {
	if len(group.Rules) == 0 {
		report.AddError(group, "Control group '%s' requires at least 1 rule.", group.Name)
	}

	if len(group.Outputs) == 0 {
		report.AddError(group, "Control group '%s' requires at least 1 output.", group.Name)
	}
}

// checkConnectivity reports nodes that are present but not wired into anything useful.
func checkConnectivity(group *models.ControlGroup, report *Report) {
	for _, input := range group.Inputs {
		if !input.IsConnected() {
			report.AddError(input, "Input '%s' is not linked to a location and parameter.", input.Name)
		}
	}

	for _, output := range group.Outputs {
		if !output.IsConnected() {
			report.AddError(output, "Output '%s' is not linked to a location and parameter.", output.Name)
		}
	}

	for _, rule := range group.Rules {
		if len(rule.Base().Outputs) == 0 {
			report.AddError(rule, "Rule '%s' has no output.", rule.NodeName())
		}
	}

	for _, condition := range group.Conditions {
		if condition.Type() == models.ConditionTypeStandard && condition.Base().Input == nil {
			report.AddError(condition, "Condition '%s' has no input.", condition.NodeName())
		}
	}

	for _, expression := range group.MathematicalExpressions {
		if len(expression.Inputs) == 0 {
			report.AddError(expression, "Mathematical expression '%s' has no inputs.", expression.Name)
		}

		if strings.TrimSpace(expression.Expression) == "" {
			report.AddError(expression, "Mathematical expression '%s' has an empty formula.", expression.Name)
		}
	}
}
