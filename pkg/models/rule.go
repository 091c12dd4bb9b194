package models

// RuleType distinguishes the rule variants.
type RuleType string

const (
	RuleTypePID          RuleType = "pid"
	RuleTypeHydraulic    RuleType = "hydraulic"
	RuleTypeInterval     RuleType = "interval"
	RuleTypeTime         RuleType = "time"
	RuleTypeRelativeTime RuleType = "relative_time"
	RuleTypeFactor       RuleType = "factor"
)

// Rule is a control law computing outputs from inputs.
// The set of implementations is closed: PIDRule, HydraulicRule, IntervalRule,
// TimeRule, RelativeTimeRule and FactorRule.
type Rule interface {
	Node
	Base() *RuleBase
	Type() RuleType
	// IsLinkedFromSignal reports whether the rule expects its state from a signal.
	IsLinkedFromSignal() bool
}

// RuleBase holds what all rules share.
type RuleBase struct {
	ID      ID     `json:"id"      validate:"required"`
	Name    string `json:"name"    validate:"required"`
	Inputs  []Ref  `json:"inputs"`  // Input or MathematicalExpression references
	Outputs []ID   `json:"outputs"` // Output IDs
}

func (r *RuleBase) NodeID() ID         { return r.ID }
func (r *RuleBase) NodeName() string   { return r.Name }
func (r *RuleBase) NodeKind() NodeKind { return NodeKindRule }
func (r *RuleBase) Base() *RuleBase    { return r }

// IsLinkedFromSignal is false unless a variant says otherwise.
func (r *RuleBase) IsLinkedFromSignal() bool { return false }

// AddInput appends an input or expression reference.
func (r *RuleBase) AddInput(ref Ref) {
	r.Inputs = append(r.Inputs, ref)
}

// AddOutput appends an output reference.
func (r *RuleBase) AddOutput(id ID) {
	r.Outputs = append(r.Outputs, id)
}

// HasOutput reports whether the rule drives the given output.
func (r *RuleBase) HasOutput(id ID) bool {
	for _, o := range r.Outputs {
		if o == id {
			return true
		}
	}

	return false
}

func newRuleBase(name string) RuleBase {
	return RuleBase{ID: NewID(), Name: name}
}

// SetpointType selects where a PID rule reads its setpoint from.
type SetpointType string

const (
	SetpointConstant   SetpointType = "constant"
	SetpointSignal     SetpointType = "signal"
	SetpointTimeSeries SetpointType = "timeseries"
)

// PIDRule is a proportional-integral-derivative controller.
type PIDRule struct {
	RuleBase

	Kp           float64      `json:"kp"`
	Ki           float64      `json:"ki"`
	Kd           float64      `json:"kd"`
	Min          float64      `json:"min"`
	Max          float64      `json:"max"            validate:"gtefield=Min"`
	MaxSpeed     float64      `json:"max_speed"      validate:"gte=0"`
	SetpointType SetpointType `json:"setpoint_type"  validate:"oneof=constant signal timeseries"`
	Setpoint     float64      `json:"setpoint"`
	TimeSeries   TimeSeries   `json:"time_series,omitempty"`
}

// NewPIDRule creates a PID rule with a constant setpoint.
func NewPIDRule(name string) *PIDRule {
	return &PIDRule{RuleBase: newRuleBase(name), SetpointType: SetpointConstant}
}

func (r *PIDRule) Type() RuleType { return RuleTypePID }

func (r *PIDRule) IsLinkedFromSignal() bool {
	return r.SetpointType == SetpointSignal
}

// HydraulicRule maps its input onto its output through a lookup table.
type HydraulicRule struct {
	RuleBase

	Table         []TablePoint  `json:"table"         validate:"min=2"`
	Interpolation Interpolation `json:"interpolation" validate:"oneof=constant linear"`
	Extrapolation Extrapolation `json:"extrapolation" validate:"oneof=constant linear periodic"`
}

// NewHydraulicRule creates a lookup-table rule.
func NewHydraulicRule(name string) *HydraulicRule {
	return &HydraulicRule{
		RuleBase:      newRuleBase(name),
		Interpolation: InterpolationLinear,
		Extrapolation: ExtrapolationConstant,
	}
}

func (r *HydraulicRule) Type() RuleType { return RuleTypeHydraulic }

// IntervalType selects how the deadband of an interval rule is defined.
type IntervalType string

const (
	IntervalFixed    IntervalType = "fixed"
	IntervalVariable IntervalType = "variable"
	IntervalSignal   IntervalType = "signal"
)

// IntervalSetting holds the actuator settings of an interval rule.
type IntervalSetting struct {
	Below    float64 `json:"below"`
	Above    float64 `json:"above"`
	MaxSpeed float64 `json:"max_speed"`
}

// IntervalRule switches its output between two settings around a setpoint.
type IntervalRule struct {
	RuleBase

	Setting                IntervalSetting `json:"setting"`
	DeadbandAroundSetpoint float64         `json:"deadband_around_setpoint" validate:"gte=0"`
	IntervalType           IntervalType    `json:"interval_type"            validate:"oneof=fixed variable signal"`
	FixedInterval          float64         `json:"fixed_interval"           validate:"gte=0"`
	TimeSeries             TimeSeries      `json:"time_series,omitempty"` // Setpoint
}

// NewIntervalRule creates an interval rule with a fixed interval.
func NewIntervalRule(name string) *IntervalRule {
	return &IntervalRule{RuleBase: newRuleBase(name), IntervalType: IntervalFixed}
}

func (r *IntervalRule) Type() RuleType { return RuleTypeInterval }

func (r *IntervalRule) IsLinkedFromSignal() bool {
	return r.IntervalType == IntervalSignal
}

// TimeRule drives its output from a time series.
type TimeRule struct {
	RuleBase

	TimeSeries    TimeSeries    `json:"time_series"`
	Interpolation Interpolation `json:"interpolation" validate:"oneof=constant linear"`
	Periodic      bool          `json:"periodic"`
}

// NewTimeRule creates a time rule with constant interpolation.
func NewTimeRule(name string) *TimeRule {
	return &TimeRule{RuleBase: newRuleBase(name), Interpolation: InterpolationConstant}
}

func (r *TimeRule) Type() RuleType { return RuleTypeTime }

// RelativeTimeRule drives its output from a table relative to its activation.
type RelativeTimeRule struct {
	RuleBase

	Table         []TablePoint  `json:"table"` // X in seconds since activation
	Interpolation Interpolation `json:"interpolation"`
	FromValue     bool          `json:"from_value"`
	MinimumPeriod int           `json:"minimum_period" validate:"gte=0"`
}

// NewRelativeTimeRule creates a relative time rule.
func NewRelativeTimeRule(name string) *RelativeTimeRule {
	return &RelativeTimeRule{RuleBase: newRuleBase(name), Interpolation: InterpolationLinear}
}

func (r *RelativeTimeRule) Type() RuleType { return RuleTypeRelativeTime }

// FactorRule multiplies its input by a constant factor.
type FactorRule struct {
	RuleBase

	Factor float64 `json:"factor"`
}

// NewFactorRule creates a factor rule.
func NewFactorRule(name string, factor float64) *FactorRule {
	return &FactorRule{RuleBase: newRuleBase(name), Factor: factor}
}

// NewInvertorRule creates a factor rule that inverts its input.
func NewInvertorRule(name string) *FactorRule {
	return NewFactorRule(name, -1)
}

func (r *FactorRule) Type() RuleType { return RuleTypeFactor }
