package models

// MathematicalExpression combines inputs and other expressions with a formula.
// Operands are referenced positionally in Expression as A, B, C, ... in the order of Inputs.
type MathematicalExpression struct {
	ID         ID     `json:"id"         validate:"required"`
	Name       string `json:"name"       validate:"required"`
	Expression string `json:"expression"`
	Inputs     []Ref  `json:"inputs"` // Input or MathematicalExpression references, order significant
}

// NewMathematicalExpression creates an expression with the given formula.
func NewMathematicalExpression(name, expression string) *MathematicalExpression {
	return &MathematicalExpression{ID: NewID(), Name: name, Expression: expression}
}

func (e *MathematicalExpression) NodeID() ID         { return e.ID }
func (e *MathematicalExpression) NodeName() string   { return e.Name }
func (e *MathematicalExpression) NodeKind() NodeKind { return NodeKindExpression }

// AddInput appends an operand.
func (e *MathematicalExpression) AddInput(ref Ref) {
	e.Inputs = append(e.Inputs, ref)
}
