package models

// ConditionType distinguishes the condition variants.
type ConditionType string

const (
	ConditionTypeStandard ConditionType = "standard"
	ConditionTypeTime     ConditionType = "time"
)

// Condition evaluates to a boolean and routes control to its true or false successors.
// The set of implementations is closed: StandardCondition and TimeCondition.
type Condition interface {
	Node
	Base() *ConditionBase
	Type() ConditionType
}

// ConditionBase holds what all conditions share.
type ConditionBase struct {
	ID           ID     `json:"id"            validate:"required"`
	Name         string `json:"name"          validate:"required"`
	Input        *Ref   `json:"input"`         // Input or MathematicalExpression, nil for clock driven conditions
	TrueOutputs  []Ref  `json:"true_outputs"`  // Rule or Condition references
	FalseOutputs []Ref  `json:"false_outputs"` // Rule or Condition references
}

func (c *ConditionBase) NodeID() ID           { return c.ID }
func (c *ConditionBase) NodeName() string     { return c.Name }
func (c *ConditionBase) NodeKind() NodeKind   { return NodeKindCondition }
func (c *ConditionBase) Base() *ConditionBase { return c }

// SetInput sets the evaluated input or expression.
func (c *ConditionBase) SetInput(ref Ref) {
	c.Input = &ref
}

// AddTrueOutput routes the true branch to a rule or condition.
func (c *ConditionBase) AddTrueOutput(ref Ref) {
	c.TrueOutputs = append(c.TrueOutputs, ref)
}

// AddFalseOutput routes the false branch to a rule or condition.
func (c *ConditionBase) AddFalseOutput(ref Ref) {
	c.FalseOutputs = append(c.FalseOutputs, ref)
}

// Unroute removes ref from both branches.
func (c *ConditionBase) Unroute(ref Ref) {
	c.TrueOutputs = removeRef(c.TrueOutputs, ref)
	c.FalseOutputs = removeRef(c.FalseOutputs, ref)
}

// Routes reports whether the condition has ref in either branch.
func (c *ConditionBase) Routes(ref Ref) bool {
	return containsRef(c.TrueOutputs, ref.Kind, ref.ID) || containsRef(c.FalseOutputs, ref.Kind, ref.ID)
}

// Successors returns the true outputs followed by the false outputs.
func (c *ConditionBase) Successors() []Ref {
	refs := make([]Ref, 0, len(c.TrueOutputs)+len(c.FalseOutputs))
	refs = append(refs, c.TrueOutputs...)

	return append(refs, c.FalseOutputs...)
}

func newConditionBase(name string) ConditionBase {
	return ConditionBase{ID: NewID(), Name: name}
}

// Operation is the comparison a standard condition applies.
type Operation string

const (
	OperationLess         Operation = "<"
	OperationLessEqual    Operation = "<="
	OperationEqual        Operation = "=="
	OperationGreaterEqual Operation = ">="
	OperationGreater      Operation = ">"
	OperationUnequal      Operation = "!="
)

// Reference selects whether the input value is compared as is or against its previous step.
type Reference string

const (
	ReferenceImplicit Reference = "implicit"
	ReferenceExplicit Reference = "explicit"
)

// StandardCondition compares its input against a constant.
type StandardCondition struct {
	ConditionBase

	Operation Operation `json:"operation" validate:"oneof=< <= == >= > !="`
	Value     float64   `json:"value"`
	Reference Reference `json:"reference" validate:"oneof=implicit explicit"`
}

// NewStandardCondition creates a standard condition.
func NewStandardCondition(name string, op Operation, value float64) *StandardCondition {
	return &StandardCondition{
		ConditionBase: newConditionBase(name),
		Operation:     op,
		Value:         value,
		Reference:     ReferenceImplicit,
	}
}

func (c *StandardCondition) Type() ConditionType { return ConditionTypeStandard }

// TimeCondition is true whenever its time series holds a non-zero value.
type TimeCondition struct {
	ConditionBase

	TimeSeries    TimeSeries    `json:"time_series"`
	Extrapolation Extrapolation `json:"extrapolation" validate:"oneof=constant linear periodic"`
}

// NewTimeCondition creates a clock driven condition.
func NewTimeCondition(name string) *TimeCondition {
	return &TimeCondition{ConditionBase: newConditionBase(name), Extrapolation: ExtrapolationConstant}
}

func (c *TimeCondition) Type() ConditionType { return ConditionTypeTime }
