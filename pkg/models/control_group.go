package models

// ControlGroup is a self-contained control-logic graph. It owns every node it
// references; nodes refer to each other by ID only.
type ControlGroup struct {
	ID                      ID                        `validate:"required"`
	Name                    string                    `validate:"required,max=255,excludesall=/"`
	Inputs                  []*Input                  `validate:"-"`
	Outputs                 []*Output                 `validate:"-"`
	Rules                   []Rule                    `validate:"-"`
	Conditions              []Condition               `validate:"-"`
	Signals                 []*Signal                 `validate:"-"`
	MathematicalExpressions []*MathematicalExpression `validate:"-"`
}

// NewControlGroup creates an empty control group.
func NewControlGroup(name string) *ControlGroup {
	return &ControlGroup{ID: NewID(), Name: name}
}

func (g *ControlGroup) NodeID() ID         { return g.ID }
func (g *ControlGroup) NodeName() string   { return g.Name }
func (g *ControlGroup) NodeKind() NodeKind { return NodeKindControlGroup }

func (g *ControlGroup) AddInput(input *Input) {
	g.Inputs = append(g.Inputs, input)
}

func (g *ControlGroup) AddOutput(output *Output) {
	g.Outputs = append(g.Outputs, output)
}

func (g *ControlGroup) AddRule(rule Rule) {
	g.Rules = append(g.Rules, rule)
}

func (g *ControlGroup) AddCondition(condition Condition) {
	g.Conditions = append(g.Conditions, condition)
}

func (g *ControlGroup) AddSignal(signal *Signal) {
	g.Signals = append(g.Signals, signal)
}

func (g *ControlGroup) AddExpression(expression *MathematicalExpression) {
	g.MathematicalExpressions = append(g.MathematicalExpressions, expression)
}

// Remove drops the node with the given reference from its collection.
// References held by other nodes are left untouched.
func (g *ControlGroup) Remove(ref Ref) bool {
	switch ref.Kind {
	case NodeKindInput:
		return removeByID(&g.Inputs, ref.ID)
	case NodeKindOutput:
		return removeByID(&g.Outputs, ref.ID)
	case NodeKindRule:
		return removeByID(&g.Rules, ref.ID)
	case NodeKindCondition:
		return removeByID(&g.Conditions, ref.ID)
	case NodeKindSignal:
		return removeByID(&g.Signals, ref.ID)
	case NodeKindExpression:
		return removeByID(&g.MathematicalExpressions, ref.ID)
	default:
		return false
	}
}

func removeByID[T Node](nodes *[]T, id ID) bool {
	for i, n := range *nodes {
		if n.NodeID() == id {
			*nodes = append((*nodes)[:i], (*nodes)[i+1:]...)

			return true
		}
	}

	return false
}

func findByID[T Node](nodes []T, id ID) (T, bool) {
	for _, n := range nodes {
		if n.NodeID() == id {
			return n, true
		}
	}

	var zero T

	return zero, false
}

// Input returns the input with the given ID.
func (g *ControlGroup) Input(id ID) (*Input, bool) {
	return findByID(g.Inputs, id)
}

// Output returns the output with the given ID.
func (g *ControlGroup) Output(id ID) (*Output, bool) {
	return findByID(g.Outputs, id)
}

// Rule returns the rule with the given ID.
func (g *ControlGroup) Rule(id ID) (Rule, bool) {
	return findByID(g.Rules, id)
}

// Condition returns the condition with the given ID.
func (g *ControlGroup) Condition(id ID) (Condition, bool) {
	return findByID(g.Conditions, id)
}

// Signal returns the signal with the given ID.
func (g *ControlGroup) Signal(id ID) (*Signal, bool) {
	return findByID(g.Signals, id)
}

// Expression returns the mathematical expression with the given ID.
func (g *ControlGroup) Expression(id ID) (*MathematicalExpression, bool) {
	return findByID(g.MathematicalExpressions, id)
}

// Node resolves a reference of any kind.
func (g *ControlGroup) Node(ref Ref) (Node, bool) {
	var (
		node Node
		ok   bool
	)

	switch ref.Kind {
	case NodeKindInput:
		node, ok = g.Input(ref.ID)
	case NodeKindOutput:
		node, ok = g.Output(ref.ID)
	case NodeKindRule:
		node, ok = g.Rule(ref.ID)
	case NodeKindCondition:
		node, ok = g.Condition(ref.ID)
	case NodeKindSignal:
		node, ok = g.Signal(ref.ID)
	case NodeKindExpression:
		node, ok = g.Expression(ref.ID)
	}

	if !ok {
		return nil, false
	}

	return node, true
}

// NodeByName finds the first node of the given kind with the given name.
func (g *ControlGroup) NodeByName(kind NodeKind, name string) (Node, bool) {
	for _, n := range g.nodesOf(kind) {
		if n.NodeName() == name {
			return n, true
		}
	}

	return nil, false
}

// Nodes returns every node of the group, collection by collection.
func (g *ControlGroup) Nodes() []Node {
	kinds := []NodeKind{
		NodeKindInput, NodeKindOutput, NodeKindRule,
		NodeKindCondition, NodeKindSignal, NodeKindExpression,
	}

	var nodes []Node
	for _, kind := range kinds {
		nodes = append(nodes, g.nodesOf(kind)...)
	}

	return nodes
}

func (g *ControlGroup) nodesOf(kind NodeKind) []Node {
	switch kind {
	case NodeKindInput:
		return asNodes(g.Inputs)
	case NodeKindOutput:
		return asNodes(g.Outputs)
	case NodeKindRule:
		return asNodes(g.Rules)
	case NodeKindCondition:
		return asNodes(g.Conditions)
	case NodeKindSignal:
		return asNodes(g.Signals)
	case NodeKindExpression:
		return asNodes(g.MathematicalExpressions)
	default:
		return nil
	}
}

func asNodes[T Node](items []T) []Node {
	nodes := make([]Node, len(items))
	for i, item := range items {
		nodes[i] = item
	}

	return nodes
}

// IsRouted reports whether any condition of the group routes to ref.
func (g *ControlGroup) IsRouted(ref Ref) bool {
	for _, c := range g.Conditions {
		if c.Base().Routes(ref) {
			return true
		}
	}

	return false
}
