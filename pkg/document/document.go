// Package document reads and writes real-time control models as JSON or YAML
// documents. Documents refer to nodes by name within their control group.
package document

import (
	"time"

	"github.com/dukex/rtcontrol/pkg/models"
)

// Document is the serialized form of a RealTimeControlModel.
type Document struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	StartTime     time.Time        `json:"start_time"`
	StopTime      time.Time        `json:"stop_time"`
	TimeStep      string           `json:"time_step,omitempty"` // Go duration, e.g. "15m"
	ControlGroups []ControlGroup   `json:"control_groups"`
	Coupling      *models.Coupling `json:"coupling,omitempty"`
}

type ControlGroup struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Inputs      []Port       `json:"inputs,omitempty"`
	Outputs     []Port       `json:"outputs,omitempty"`
	Rules       []Rule       `json:"rules,omitempty"`
	Conditions  []Condition  `json:"conditions,omitempty"`
	Signals     []Signal     `json:"signals,omitempty"`
	Expressions []Expression `json:"expressions,omitempty"`
}

// Port is an input or an output.
type Port struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Feature   string `json:"feature,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// Rule holds the union of the rule variants' settings; Type selects which apply.
type Rule struct {
	Type    models.RuleType `json:"type"`
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Inputs  []string        `json:"inputs,omitempty"`
	Outputs []string        `json:"outputs,omitempty"`

	// pid
	Kp           float64             `json:"kp,omitempty"`
	Ki           float64             `json:"ki,omitempty"`
	Kd           float64             `json:"kd,omitempty"`
	Min          float64             `json:"min,omitempty"`
	Max          float64             `json:"max,omitempty"`
	SetpointType models.SetpointType `json:"setpoint_type,omitempty"`
	Setpoint     float64             `json:"setpoint,omitempty"`

	// interval
	Setting                *models.IntervalSetting `json:"setting,omitempty"`
	DeadbandAroundSetpoint float64                 `json:"deadband_around_setpoint,omitempty"`
	IntervalType           models.IntervalType     `json:"interval_type,omitempty"`
	FixedInterval          float64                 `json:"fixed_interval,omitempty"`

	// hydraulic, time, relative_time
	Table         []models.TablePoint  `json:"table,omitempty"`
	Interpolation models.Interpolation `json:"interpolation,omitempty"`
	Extrapolation models.Extrapolation `json:"extrapolation,omitempty"`
	Periodic      bool                 `json:"periodic,omitempty"`
	FromValue     bool                 `json:"from_value,omitempty"`
	MinimumPeriod int                  `json:"minimum_period,omitempty"`

	// factor
	Factor float64 `json:"factor,omitempty"`

	MaxSpeed   float64           `json:"max_speed,omitempty"`
	TimeSeries models.TimeSeries `json:"time_series,omitempty"`
}

// Condition holds the union of the condition variants' settings.
type Condition struct {
	Type         models.ConditionType `json:"type"`
	ID           string               `json:"id,omitempty"`
	Name         string               `json:"name"`
	Input        string               `json:"input,omitempty"`
	TrueOutputs  []string             `json:"true_outputs,omitempty"`
	FalseOutputs []string             `json:"false_outputs,omitempty"`

	// standard
	Operation models.Operation `json:"operation,omitempty"`
	Value     float64          `json:"value,omitempty"`
	Reference models.Reference `json:"reference,omitempty"`

	// time
	TimeSeries    models.TimeSeries    `json:"time_series,omitempty"`
	Extrapolation models.Extrapolation `json:"extrapolation,omitempty"`
}

type Signal struct {
	ID     string              `json:"id,omitempty"`
	Name   string              `json:"name"`
	Inputs []string            `json:"inputs,omitempty"`
	Rules  []string            `json:"rules,omitempty"`
	Table  []models.TablePoint `json:"table,omitempty"`
}

type Expression struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name"`
	Expression string   `json:"expression"`
	Inputs     []string `json:"inputs,omitempty"`
}
