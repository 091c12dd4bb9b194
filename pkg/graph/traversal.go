// Package graph answers read-only reachability queries over a control group.
//
// Every walk tracks the nodes it has visited, so cyclic expression or condition
// graphs terminate; cycles are reported by validation, not by traversal.
package graph

import (
	"errors"

	"github.com/dukex/rtcontrol/pkg/models"
)

// ErrNilControlGroup is returned when a traversal is asked to walk a nil group.
var ErrNilControlGroup = errors.New("control group cannot be nil")

// InputItemsForOutput returns every input that can influence the given output:
// the inputs of the rules driving it, the leaves of their expressions and,
// recursively, the inputs of the conditions routing into those rules.
// Each input appears once, in the order it was first reached.
func InputItemsForOutput(group *models.ControlGroup, outputID models.ID) ([]*models.Input, error) {
	if group == nil {
		return nil, ErrNilControlGroup
	}

	c := newCollector(group)

	for _, rule := range group.Rules {
		if !rule.Base().HasOutput(outputID) {
			continue
		}

		c.ruleInputs(rule)
	}

	return c.inputs, nil
}

// InputsForCondition returns the inputs a condition depends on: its own input
// and the inputs of every condition routing into it, deduplicated.
func InputsForCondition(group *models.ControlGroup, condition models.Condition) ([]*models.Input, error) {
	if group == nil {
		return nil, ErrNilControlGroup
	}

	c := newCollector(group)
	c.conditionInputs(condition)

	return c.inputs, nil
}

// ExpressionInputs flattens an expression tree into its input leaves, depth
// first and in operand order. An input used by several operands is returned
// once per use, and so is a sub-expression shared by several operands.
// An expression that refers back to one of its ancestors is not expanded.
func ExpressionInputs(group *models.ControlGroup, expression *models.MathematicalExpression) []*models.Input {
	if group == nil || expression == nil {
		return nil
	}

	var inputs []*models.Input

	onPath := map[models.ID]bool{expression.ID: true}

	var walk func(e *models.MathematicalExpression)
	walk = func(e *models.MathematicalExpression) {
		for _, ref := range e.Inputs {
			switch ref.Kind {
			case models.NodeKindInput:
				if input, ok := group.Input(ref.ID); ok {
					inputs = append(inputs, input)
				}
			case models.NodeKindExpression:
				if onPath[ref.ID] {
					continue
				}

				if nested, ok := group.Expression(ref.ID); ok {
					onPath[ref.ID] = true
					walk(nested)
					delete(onPath, ref.ID)
				}
			}
		}
	}

	walk(expression)

	return inputs
}

// RetrieveTriggerObjects returns the nodes evaluation starts from: every
// condition and top-level expression that no condition routes to.
// Conditions come first, then expressions, each in collection order.
// An expression is top-level when no other expression of the group uses it as an operand.
func RetrieveTriggerObjects(group *models.ControlGroup) ([]models.Node, error) {
	if group == nil {
		return nil, ErrNilControlGroup
	}

	routed := make(map[models.Ref]bool)

	for _, condition := range group.Conditions {
		for _, ref := range condition.Base().Successors() {
			routed[ref] = true
		}
	}

	nested := make(map[models.ID]bool)

	for _, expression := range group.MathematicalExpressions {
		for _, ref := range expression.Inputs {
			if ref.Kind == models.NodeKindExpression {
				nested[ref.ID] = true
			}
		}
	}

	triggers := make([]models.Node, 0, len(group.Conditions)+len(group.MathematicalExpressions))

	for _, condition := range group.Conditions {
		if !routed[models.RefTo(condition)] {
			triggers = append(triggers, condition)
		}
	}

	for _, expression := range group.MathematicalExpressions {
		if nested[expression.ID] || routed[models.RefTo(expression)] {
			continue
		}

		triggers = append(triggers, expression)
	}

	return triggers, nil
}

// collector accumulates distinct inputs while walking rules, conditions and expressions.
type collector struct {
	group       *models.ControlGroup
	inputs      []*models.Input
	seenInputs  map[models.ID]bool
	expressions map[models.ID]bool
	conditions  map[models.ID]bool
}

func newCollector(group *models.ControlGroup) *collector {
	return &collector{
		group:       group,
		seenInputs:  make(map[models.ID]bool),
		expressions: make(map[models.ID]bool),
		conditions:  make(map[models.ID]bool),
	}
}

func (c *collector) ruleInputs(rule models.Rule) {
	for _, ref := range rule.Base().Inputs {
		c.ref(ref)
	}

	ruleRef := models.RefTo(rule)

	for _, condition := range c.group.Conditions {
		if condition.Base().Routes(ruleRef) {
			c.conditionInputs(condition)
		}
	}
}

func (c *collector) conditionInputs(condition models.Condition) {
	base := condition.Base()
	if c.conditions[base.ID] {
		return
	}

	c.conditions[base.ID] = true

	if base.Input != nil {
		c.ref(*base.Input)
	}

	self := models.RefTo(condition)

	for _, parent := range c.group.Conditions {
		if parent.Base().Routes(self) {
			c.conditionInputs(parent)
		}
	}
}

func (c *collector) ref(ref models.Ref) {
	switch ref.Kind {
	case models.NodeKindInput:
		input, ok := c.group.Input(ref.ID)
		if !ok || c.seenInputs[input.ID] {
			return
		}

		c.seenInputs[input.ID] = true
		c.inputs = append(c.inputs, input)
	case models.NodeKindExpression:
		if c.expressions[ref.ID] {
			return
		}

		c.expressions[ref.ID] = true

		expression, ok := c.group.Expression(ref.ID)
		if !ok {
			return
		}

		for _, operand := range expression.Inputs {
			c.ref(operand)
		}
	}
}
