package models

import "time"

// RealTimeControlModel groups the control groups of one simulation together with
// the time frame they run in.
type RealTimeControlModel struct {
	ID            string          `validate:"required"`
	Name          string          `validate:"required"`
	StartTime     time.Time       `validate:"-"`
	StopTime      time.Time       `validate:"-"`
	TimeStep      time.Duration   `validate:"-"`
	ControlGroups []*ControlGroup `validate:"-"`
	Coupling      *Coupling       `validate:"-"` // Nil when the model is not part of a composite workflow
}

// NewRealTimeControlModel creates an empty model.
func NewRealTimeControlModel(name string) *RealTimeControlModel {
	return &RealTimeControlModel{ID: string(NewID()), Name: name}
}

func (m *RealTimeControlModel) NodeID() ID         { return ID(m.ID) }
func (m *RealTimeControlModel) NodeName() string   { return m.Name }
func (m *RealTimeControlModel) NodeKind() NodeKind { return NodeKindModel }

// AddControlGroup appends a control group.
func (m *RealTimeControlModel) AddControlGroup(group *ControlGroup) {
	m.ControlGroups = append(m.ControlGroups, group)
}

// RemoveControlGroup drops the control group with the given ID.
func (m *RealTimeControlModel) RemoveControlGroup(id ID) bool {
	for i, g := range m.ControlGroups {
		if g != nil && g.ID == id {
			m.ControlGroups = append(m.ControlGroups[:i], m.ControlGroups[i+1:]...)

			return true
		}
	}

	return false
}

// ControlGroup returns the first control group with the given name.
func (m *RealTimeControlModel) ControlGroup(name string) (*ControlGroup, bool) {
	for _, g := range m.ControlGroups {
		if g != nil && g.Name == name {
			return g, true
		}
	}

	return nil, false
}
