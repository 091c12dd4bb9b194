package validation

import (
	"strings"

	"github.com/dukex/rtcontrol/pkg/graph"
	"github.com/dukex/rtcontrol/pkg/models"
)

var (
	operandKinds   = []models.NodeKind{models.NodeKindInput, models.NodeKindExpression}
	successorKinds = []models.NodeKind{models.NodeKindRule, models.NodeKindCondition}
)

// checkReferences reports references to nodes that are not in the group or
// that point at a kind of node the referrer cannot use.
func checkReferences(group *models.ControlGroup, report *Report) {
	for _, rule := range group.Rules {
		for _, ref := range rule.Base().Inputs {
			checkRef(group, rule, ref, operandKinds, report)
		}

		for _, id := range rule.Base().Outputs {
			checkRef(group, rule, models.Ref{Kind: models.NodeKindOutput, ID: id}, []models.NodeKind{models.NodeKindOutput}, report)
		}
	}

	for _, condition := range group.Conditions {
		base := condition.Base()
		if base.Input != nil {
			checkRef(group, condition, *base.Input, operandKinds, report)
		}

		for _, ref := range base.Successors() {
			checkRef(group, condition, ref, successorKinds, report)
		}
	}

	for _, signal := range group.Signals {
		for _, ref := range signal.Inputs {
			checkRef(group, signal, ref, operandKinds, report)
		}

		for _, id := range signal.RuleBases {
			checkRef(group, signal, models.RuleRef(id), []models.NodeKind{models.NodeKindRule}, report)
		}
	}

	for _, expression := range group.MathematicalExpressions {
		for _, ref := range expression.Inputs {
			checkRef(group, expression, ref, operandKinds, report)
		}
	}
}

func checkRef(group *models.ControlGroup, subject models.Node, ref models.Ref, allowed []models.NodeKind, report *Report) {
	if !kindAllowed(ref.Kind, allowed) {
		report.AddError(subject, "%s '%s' has a reference of the wrong kind: %s.",
			kindLabel(subject.NodeKind()), subject.NodeName(), ref)

		return
	}

	if _, ok := group.Node(ref); !ok {
		report.AddError(subject, "%s '%s' references %s, which is not part of control group '%s'.",
			kindLabel(subject.NodeKind()), subject.NodeName(), ref, group.Name)
	}
}

func kindAllowed(kind models.NodeKind, allowed []models.NodeKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}

	return false
}

// checkCycles reports closed loops among expressions and among conditions.
func checkCycles(group *models.ControlGroup, report *Report) {
	for _, cycle := range graph.ExpressionCycles(group) {
		reportCycle(group, models.NodeKindExpression, cycle, report)
	}

	for _, cycle := range graph.ConditionCycles(group) {
		reportCycle(group, models.NodeKindCondition, cycle, report)
	}
}

func reportCycle(group *models.ControlGroup, kind models.NodeKind, cycle graph.Cycle, report *Report) {
	names := make([]string, 0, len(cycle)+1)

	for _, id := range cycle {
		names = append(names, nodeName(group, models.Ref{Kind: kind, ID: id}))
	}

	names = append(names, names[0])

	subject, ok := group.Node(models.Ref{Kind: kind, ID: cycle[0]})
	if !ok {
		return
	}

	report.AddError(subject, "%s form a cycle: %s.", pluralLabel(kind), strings.Join(names, " -> "))
}

func nodeName(group *models.ControlGroup, ref models.Ref) string {
	if n, ok := group.Node(ref); ok {
		return n.NodeName()
	}

	return string(ref.ID)
}

func pluralLabel(kind models.NodeKind) string {
	if kind == models.NodeKindExpression {
		return "Mathematical expressions"
	}

	return kindLabel(kind) + "s"
}
