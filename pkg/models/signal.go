package models

// Signal provides enable/select state to the rules in RuleBases.
type Signal struct {
	ID        ID           `json:"id"         validate:"required"`
	Name      string       `json:"name"       validate:"required"`
	Inputs    []Ref        `json:"inputs"`     // Input or MathematicalExpression references
	RuleBases []ID         `json:"rule_bases"` // Rules receiving the signal
	Table     []TablePoint `json:"table"`      // Lookup from input value to signal value
}

// NewSignal creates a lookup signal.
func NewSignal(name string) *Signal {
	return &Signal{ID: NewID(), Name: name}
}

func (s *Signal) NodeID() ID         { return s.ID }
func (s *Signal) NodeName() string   { return s.Name }
func (s *Signal) NodeKind() NodeKind { return NodeKindSignal }

// AddRule wires the signal into a rule.
func (s *Signal) AddRule(id ID) {
	s.RuleBases = append(s.RuleBases, id)
}

// AddInput appends an input or expression reference.
func (s *Signal) AddInput(ref Ref) {
	s.Inputs = append(s.Inputs, ref)
}

// Drives reports whether the signal is wired into the given rule.
func (s *Signal) Drives(id ID) bool {
	for _, r := range s.RuleBases {
		if r == id {
			return true
		}
	}

	return false
}
