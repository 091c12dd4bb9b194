package graph

import (
	"testing"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputNames(inputs []*models.Input) []string {
	names := make([]string, len(inputs))
	for i, input := range inputs {
		names[i] = input.Name
	}

	return names
}

func nodeNames(nodes []models.Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.NodeName()
	}

	return names
}

func TestTriggerAndTraversalRoundTrip(t *testing.T) {
	group := models.NewControlGroup("group")
	i1 := models.NewInput("I1", "obs", "water_level")
	o1 := models.NewOutput("O1", "weir", "crest_level")
	r1 := models.NewPIDRule("R1")
	c1 := models.NewStandardCondition("C1", models.OperationGreater, 0)

	r1.AddInput(models.InputRef(i1.ID))
	r1.AddOutput(o1.ID)
	c1.AddTrueOutput(models.RuleRef(r1.ID))

	group.AddInput(i1)
	group.AddOutput(o1)
	group.AddRule(r1)
	group.AddCondition(c1)

	inputs, err := InputItemsForOutput(group, o1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"I1"}, inputNames(inputs))

	triggers, err := RetrieveTriggerObjects(group)
	require.NoError(t, err)
	assert.Equal(t, []string{"C1"}, nodeNames(triggers))
}

func TestInputItemsForOutput(t *testing.T) {
	group := models.NewControlGroup("group")

	level := models.NewInput("level", "obs-1", "water_level")
	discharge := models.NewInput("discharge", "obs-2", "discharge")
	rain := models.NewInput("rain", "obs-3", "precipitation")
	unrelated := models.NewInput("unrelated", "obs-4", "water_level")
	for _, input := range []*models.Input{level, discharge, rain, unrelated} {
		group.AddInput(input)
	}

	crest := models.NewOutput("crest", "weir-1", "crest_level")
	pump := models.NewOutput("pump", "pump-1", "capacity")
	idle := models.NewOutput("idle", "gate-1", "opening")
	group.AddOutput(crest)
	group.AddOutput(pump)
	group.AddOutput(idle)

	// (level + (discharge * level)) feeds the PID rule
	inner := models.NewMathematicalExpression("inner", "A * B")
	inner.AddInput(models.InputRef(discharge.ID))
	inner.AddInput(models.InputRef(level.ID))
	outer := models.NewMathematicalExpression("outer", "A + B")
	outer.AddInput(models.InputRef(level.ID))
	outer.AddInput(models.ExpressionRef(inner.ID))
	group.AddExpression(inner)
	group.AddExpression(outer)

	pid := models.NewPIDRule("pid")
	pid.AddInput(models.ExpressionRef(outer.ID))
	pid.AddOutput(crest.ID)
	group.AddRule(pid)

	// rain -> c1 -> c2 -> time rule -> pump
	timeRule := models.NewTimeRule("schedule")
	timeRule.AddOutput(pump.ID)
	group.AddRule(timeRule)

	c1 := models.NewStandardCondition("c1", models.OperationGreater, 10)
	c1.SetInput(models.InputRef(rain.ID))
	c2 := models.NewStandardCondition("c2", models.OperationLess, 2)
	c2.SetInput(models.InputRef(level.ID))
	c1.AddTrueOutput(models.ConditionRef(c2.ID))
	c2.AddFalseOutput(models.RuleRef(timeRule.ID))
	group.AddCondition(c1)
	group.AddCondition(c2)

	unused := models.NewFactorRule("unused", 2)
	unused.AddInput(models.InputRef(unrelated.ID))
	group.AddRule(unused)

	testCases := []struct {
		name   string
		output models.ID
		want   []string
	}{
		{name: "expression tree is flattened and deduplicated", output: crest.ID, want: []string{"level", "discharge"}},
		{name: "conditions feeding conditions are followed", output: pump.ID, want: []string{"level", "rain"}},
		{name: "output without rule", output: idle.ID, want: []string{}},
		{name: "unknown output", output: "missing", want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inputs, err := InputItemsForOutput(group, tc.output)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.want, inputNames(inputs))
		})
	}
}

func TestInputItemsForOutput_Idempotent(t *testing.T) {
	group := models.NewControlGroup("group")
	input := models.NewInput("in", "f", "p")
	output := models.NewOutput("out", "f", "p")
	rule := models.NewHydraulicRule("h")
	rule.AddInput(models.InputRef(input.ID))
	rule.AddOutput(output.ID)
	group.AddInput(input)
	group.AddOutput(output)
	group.AddRule(rule)

	first, err := InputItemsForOutput(group, output.ID)
	require.NoError(t, err)

	second, err := InputItemsForOutput(group, output.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestInputItemsForOutput_RuleWithoutInputs(t *testing.T) {
	group := models.NewControlGroup("group")
	output := models.NewOutput("out", "f", "p")
	rule := models.NewTimeRule("t")
	rule.AddOutput(output.ID)
	group.AddOutput(output)
	group.AddRule(rule)

	inputs, err := InputItemsForOutput(group, output.ID)
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestInputItemsForOutput_Cycles(t *testing.T) {
	group := models.NewControlGroup("group")
	input := models.NewInput("in", "f", "p")
	output := models.NewOutput("out", "f", "p")
	group.AddInput(input)
	group.AddOutput(output)

	a := models.NewMathematicalExpression("a", "A + B")
	b := models.NewMathematicalExpression("b", "A")
	a.AddInput(models.InputRef(input.ID))
	a.AddInput(models.ExpressionRef(b.ID))
	b.AddInput(models.ExpressionRef(a.ID))
	group.AddExpression(a)
	group.AddExpression(b)

	rule := models.NewPIDRule("pid")
	rule.AddInput(models.ExpressionRef(a.ID))
	rule.AddOutput(output.ID)
	group.AddRule(rule)

	c1 := models.NewStandardCondition("c1", models.OperationEqual, 1)
	c2 := models.NewStandardCondition("c2", models.OperationEqual, 1)
	c1.SetInput(models.ExpressionRef(b.ID))
	c1.AddTrueOutput(models.ConditionRef(c2.ID))
	c2.AddTrueOutput(models.ConditionRef(c1.ID))
	c2.AddFalseOutput(models.RuleRef(rule.ID))
	group.AddCondition(c1)
	group.AddCondition(c2)

	inputs, err := InputItemsForOutput(group, output.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"in"}, inputNames(inputs))

	assert.Equal(t, []string{"in"}, inputNames(ExpressionInputs(group, a)))

	triggers, err := RetrieveTriggerObjects(group)
	require.NoError(t, err)
	assert.Empty(t, triggers, "every node of a cycle is reached from another node")
}

func TestInputItemsForOutput_NilGroup(t *testing.T) {
	_, err := InputItemsForOutput(nil, "x")
	require.ErrorIs(t, err, ErrNilControlGroup)

	_, err = RetrieveTriggerObjects(nil)
	require.ErrorIs(t, err, ErrNilControlGroup)

	_, err = InputsForCondition(nil, models.NewTimeCondition("t"))
	require.ErrorIs(t, err, ErrNilControlGroup)
}

func TestInputItemsForOutput_DanglingReferences(t *testing.T) {
	group := models.NewControlGroup("group")
	output := models.NewOutput("out", "f", "p")
	rule := models.NewPIDRule("pid")
	rule.AddInput(models.InputRef("gone"))
	rule.AddInput(models.ExpressionRef("gone-too"))
	rule.AddOutput(output.ID)
	group.AddOutput(output)
	group.AddRule(rule)

	inputs, err := InputItemsForOutput(group, output.ID)
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestExpressionInputs_PreOrderWithDuplicates(t *testing.T) {
	group := models.NewControlGroup("group")
	x := models.NewInput("x", "f", "p")
	y := models.NewInput("y", "f", "p")
	group.AddInput(x)
	group.AddInput(y)

	inner := models.NewMathematicalExpression("inner", "A - B")
	inner.AddInput(models.InputRef(y.ID))
	inner.AddInput(models.InputRef(x.ID))

	outer := models.NewMathematicalExpression("outer", "A + B + C")
	outer.AddInput(models.InputRef(x.ID))
	outer.AddInput(models.ExpressionRef(inner.ID))
	outer.AddInput(models.InputRef(y.ID))

	group.AddExpression(inner)
	group.AddExpression(outer)

	assert.Equal(t, []string{"x", "y", "x", "y"}, inputNames(ExpressionInputs(group, outer)))
	assert.Nil(t, ExpressionInputs(group, nil))
}

func TestExpressionInputs_SharedSubExpression(t *testing.T) {
	group := models.NewControlGroup("group")
	x := models.NewInput("x", "f", "p")
	y := models.NewInput("y", "f", "p")
	group.AddInput(x)
	group.AddInput(y)

	shared := models.NewMathematicalExpression("shared", "A * B")
	shared.AddInput(models.InputRef(x.ID))
	shared.AddInput(models.InputRef(y.ID))

	left := models.NewMathematicalExpression("left", "A + 1")
	left.AddInput(models.ExpressionRef(shared.ID))

	top := models.NewMathematicalExpression("top", "A - B")
	top.AddInput(models.ExpressionRef(left.ID))
	top.AddInput(models.ExpressionRef(shared.ID))

	group.AddExpression(shared)
	group.AddExpression(left)
	group.AddExpression(top)

	assert.Equal(t, []string{"x", "y", "x", "y"}, inputNames(ExpressionInputs(group, top)))
}

func TestInputsForCondition(t *testing.T) {
	group := models.NewControlGroup("group")
	a := models.NewInput("a", "f", "p")
	b := models.NewInput("b", "f", "p")
	group.AddInput(a)
	group.AddInput(b)

	parent := models.NewStandardCondition("parent", models.OperationGreater, 0)
	parent.SetInput(models.InputRef(a.ID))
	child := models.NewStandardCondition("child", models.OperationGreater, 0)
	child.SetInput(models.InputRef(b.ID))
	parent.AddTrueOutput(models.ConditionRef(child.ID))
	clock := models.NewTimeCondition("clock")
	clock.AddFalseOutput(models.ConditionRef(child.ID))

	group.AddCondition(parent)
	group.AddCondition(child)
	group.AddCondition(clock)

	inputs, err := InputsForCondition(group, child)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, inputNames(inputs))

	inputs, err = InputsForCondition(group, clock)
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestRetrieveTriggerObjects(t *testing.T) {
	group := models.NewControlGroup("group")

	c1 := models.NewTimeCondition("c1")
	c2 := models.NewStandardCondition("c2", models.OperationLess, 1)
	c3 := models.NewStandardCondition("c3", models.OperationLess, 1)
	c1.AddTrueOutput(models.ConditionRef(c2.ID))

	leaf := models.NewMathematicalExpression("leaf", "A")
	root := models.NewMathematicalExpression("root", "A * 2")
	root.AddInput(models.ExpressionRef(leaf.ID))
	lone := models.NewMathematicalExpression("lone", "A")

	group.AddCondition(c1)
	group.AddCondition(c2)
	group.AddCondition(c3)
	group.AddExpression(leaf)
	group.AddExpression(root)
	group.AddExpression(lone)

	triggers, err := RetrieveTriggerObjects(group)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c3", "root", "lone"}, nodeNames(triggers))

	empty, err := RetrieveTriggerObjects(models.NewControlGroup("empty"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCycles(t *testing.T) {
	group := models.NewControlGroup("group")

	a := models.NewMathematicalExpression("a", "A")
	b := models.NewMathematicalExpression("b", "A")
	self := models.NewMathematicalExpression("self", "A")
	a.AddInput(models.ExpressionRef(b.ID))
	b.AddInput(models.ExpressionRef(a.ID))
	self.AddInput(models.ExpressionRef(self.ID))
	group.AddExpression(a)
	group.AddExpression(b)
	group.AddExpression(self)

	c1 := models.NewStandardCondition("c1", models.OperationLess, 1)
	c2 := models.NewStandardCondition("c2", models.OperationLess, 1)
	c1.AddTrueOutput(models.ConditionRef(c2.ID))
	group.AddCondition(c1)
	group.AddCondition(c2)

	expressionCycles := ExpressionCycles(group)
	require.Len(t, expressionCycles, 2)
	assert.Equal(t, Cycle{a.ID, b.ID}, expressionCycles[0])
	assert.Equal(t, Cycle{self.ID}, expressionCycles[1])

	assert.Empty(t, ConditionCycles(group))

	c2.AddFalseOutput(models.ConditionRef(c1.ID))
	conditionCycles := ConditionCycles(group)
	require.Len(t, conditionCycles, 1)
	assert.Equal(t, Cycle{c1.ID, c2.ID}, conditionCycles[0])

	assert.Nil(t, ExpressionCycles(nil))
	assert.Nil(t, ConditionCycles(nil))
}
