// Package models defines the control-group graph model for real-time control.
package models

import (
	"github.com/google/uuid"
)

// ID identifies a node within its control group.
type ID string

// NewID returns a fresh random node identifier.
func NewID() ID {
	return ID(uuid.New().String())
}

// NodeKind represents the category of a node in a control group.
type NodeKind string

const (
	NodeKindInput      NodeKind = "input"      // Measured model quantity
	NodeKindOutput     NodeKind = "output"     // Actuated model quantity
	NodeKindRule       NodeKind = "rule"       // Control law producing outputs
	NodeKindCondition  NodeKind = "condition"  // Boolean branch
	NodeKindSignal     NodeKind = "signal"     // Enable/select state for rules
	NodeKindExpression NodeKind = "expression" // Mathematical expression over inputs

	NodeKindControlGroup NodeKind = "control_group"
	NodeKindModel        NodeKind = "model"
)

// Node is implemented by every entity of a control group.
type Node interface {
	NodeID() ID
	NodeName() string
	NodeKind() NodeKind
}

// Ref is a typed reference to a node of the same control group.
type Ref struct {
	Kind NodeKind `json:"kind" validate:"required"`
	ID   ID       `json:"id"   validate:"required"`
}

// RefTo creates a reference to the given node.
func RefTo(n Node) Ref {
	return Ref{Kind: n.NodeKind(), ID: n.NodeID()}
}

// InputRef creates a reference to an input.
func InputRef(id ID) Ref {
	return Ref{Kind: NodeKindInput, ID: id}
}

// ExpressionRef creates a reference to a mathematical expression.
func ExpressionRef(id ID) Ref {
	return Ref{Kind: NodeKindExpression, ID: id}
}

// RuleRef creates a reference to a rule.
func RuleRef(id ID) Ref {
	return Ref{Kind: NodeKindRule, ID: id}
}

// ConditionRef creates a reference to a condition.
func ConditionRef(id ID) Ref {
	return Ref{Kind: NodeKindCondition, ID: id}
}

// String renders the reference as "{kind}:{id}".
func (r Ref) String() string {
	return string(r.Kind) + ":" + string(r.ID)
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

// containsRef reports whether refs holds a reference to id of the given kind.
func containsRef(refs []Ref, kind NodeKind, id ID) bool {
	for _, r := range refs {
		if r.Kind == kind && r.ID == id {
			return true
		}
	}

	return false
}

func removeRef(refs []Ref, ref Ref) []Ref {
	for i, r := range refs {
		if r == ref {
			return append(refs[:i], refs[i+1:]...)
		}
	}

	return refs
}

// Input is a measured location/parameter pair feeding the control graph.
type Input struct {
	ID        ID     `json:"id"        validate:"required"`
	Name      string `json:"name"      validate:"required"`
	Feature   string `json:"feature"`   // Location in the controlled network
	Parameter string `json:"parameter"` // Quantity measured at Feature, e.g. "water_level"
}

// NewInput creates an input with a generated ID.
func NewInput(name, feature, parameter string) *Input {
	return &Input{ID: NewID(), Name: name, Feature: feature, Parameter: parameter}
}

func (i *Input) NodeID() ID         { return i.ID }
func (i *Input) NodeName() string   { return i.Name }
func (i *Input) NodeKind() NodeKind { return NodeKindInput }

// IsConnected reports whether the input is linked to a network feature.
func (i *Input) IsConnected() bool {
	return i.Feature != "" && i.Parameter != ""
}

// Output is an actuated location/parameter pair driven by rules.
type Output struct {
	ID        ID     `json:"id"        validate:"required"`
	Name      string `json:"name"      validate:"required"`
	Feature   string `json:"feature"`
	Parameter string `json:"parameter"` // e.g. "crest_level", "capacity"
}

// NewOutput creates an output with a generated ID.
func NewOutput(name, feature, parameter string) *Output {
	return &Output{ID: NewID(), Name: name, Feature: feature, Parameter: parameter}
}

func (o *Output) NodeID() ID         { return o.ID }
func (o *Output) NodeName() string   { return o.Name }
func (o *Output) NodeKind() NodeKind { return NodeKindOutput }

// IsConnected reports whether the output is linked to a network feature.
func (o *Output) IsConnected() bool {
	return o.Feature != "" && o.Parameter != ""
}
