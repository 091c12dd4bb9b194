package document

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/dukex/rtcontrol/pkg/models"
)

// Model builds the model the document describes. References that match no
// node are kept as they are so that validation can report them.
func (d *Document) Model() (*models.RealTimeControlModel, error) {
	model := &models.RealTimeControlModel{
		ID:        cmp.Or(d.ID, string(models.NewID())),
		Name:      d.Name,
		StartTime: d.StartTime,
		StopTime:  d.StopTime,
		Coupling:  d.Coupling,
	}

	if d.TimeStep != "" {
		step, err := time.ParseDuration(d.TimeStep)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidTimeStep, d.TimeStep, err)
		}

		model.TimeStep = step
	}

	for _, gd := range d.ControlGroups {
		group, err := gd.controlGroup()
		if err != nil {
			return nil, err
		}

		model.AddControlGroup(group)
	}

	return model, nil
}

func (gd ControlGroup) controlGroup() (*models.ControlGroup, error) {
	group := &models.ControlGroup{ID: nodeID(gd.ID), Name: gd.Name}

	for _, p := range gd.Inputs {
		group.AddInput(&models.Input{ID: nodeID(p.ID), Name: p.Name, Feature: p.Feature, Parameter: p.Parameter})
	}

	for _, p := range gd.Outputs {
		group.AddOutput(&models.Output{ID: nodeID(p.ID), Name: p.Name, Feature: p.Feature, Parameter: p.Parameter})
	}

	for _, rd := range gd.Rules {
		rule, err := rd.rule()
		if err != nil {
			return nil, fmt.Errorf("control group %q: %w", gd.Name, err)
		}

		group.AddRule(rule)
	}

	for _, cd := range gd.Conditions {
		condition, err := cd.condition()
		if err != nil {
			return nil, fmt.Errorf("control group %q: %w", gd.Name, err)
		}

		group.AddCondition(condition)
	}

	for _, sd := range gd.Signals {
		group.AddSignal(&models.Signal{ID: nodeID(sd.ID), Name: sd.Name, Table: sd.Table})
	}

	for _, ed := range gd.Expressions {
		group.AddExpression(&models.MathematicalExpression{ID: nodeID(ed.ID), Name: ed.Name, Expression: ed.Expression})
	}

	seen := make(map[models.Ref]bool)
	for _, n := range group.Nodes() {
		ref := models.RefTo(n)
		if seen[ref] {
			return nil, fmt.Errorf("%w: %s in control group %q", ErrDuplicateID, ref, gd.Name)
		}

		seen[ref] = true
	}

	gd.link(group)

	return group, nil
}

// link resolves the references of every node once all nodes exist.
func (gd ControlGroup) link(group *models.ControlGroup) {
	for i, rd := range gd.Rules {
		base := group.Rules[i].Base()

		for _, s := range rd.Inputs {
			base.AddInput(resolve(group, s, operandKinds...))
		}

		for _, s := range rd.Outputs {
			base.AddOutput(resolve(group, s, models.NodeKindOutput).ID)
		}
	}

	for i, cd := range gd.Conditions {
		base := group.Conditions[i].Base()

		if cd.Input != "" {
			base.SetInput(resolve(group, cd.Input, operandKinds...))
		}

		for _, s := range cd.TrueOutputs {
			base.AddTrueOutput(resolve(group, s, successorKinds...))
		}

		for _, s := range cd.FalseOutputs {
			base.AddFalseOutput(resolve(group, s, successorKinds...))
		}
	}

	for i, sd := range gd.Signals {
		signal := group.Signals[i]

		for _, s := range sd.Inputs {
			signal.AddInput(resolve(group, s, operandKinds...))
		}

		for _, s := range sd.Rules {
			signal.AddRule(resolve(group, s, models.NodeKindRule).ID)
		}
	}

	for i, ed := range gd.Expressions {
		expression := group.MathematicalExpressions[i]

		for _, s := range ed.Inputs {
			expression.AddInput(resolve(group, s, operandKinds...))
		}
	}
}

func (rd Rule) rule() (models.Rule, error) {
	base := models.RuleBase{ID: nodeID(rd.ID), Name: rd.Name}

	switch rd.Type {
	case models.RuleTypePID:
		return &models.PIDRule{
			RuleBase:     base,
			Kp:           rd.Kp,
			Ki:           rd.Ki,
			Kd:           rd.Kd,
			Min:          rd.Min,
			Max:          rd.Max,
			MaxSpeed:     rd.MaxSpeed,
			SetpointType: cmp.Or(rd.SetpointType, models.SetpointConstant),
			Setpoint:     rd.Setpoint,
			TimeSeries:   rd.TimeSeries,
		}, nil
	case models.RuleTypeHydraulic:
		return &models.HydraulicRule{
			RuleBase:      base,
			Table:         rd.Table,
			Interpolation: cmp.Or(rd.Interpolation, models.InterpolationLinear),
			Extrapolation: cmp.Or(rd.Extrapolation, models.ExtrapolationConstant),
		}, nil
	case models.RuleTypeInterval:
		rule := &models.IntervalRule{
			RuleBase:               base,
			DeadbandAroundSetpoint: rd.DeadbandAroundSetpoint,
			IntervalType:           cmp.Or(rd.IntervalType, models.IntervalFixed),
			FixedInterval:          rd.FixedInterval,
			TimeSeries:             rd.TimeSeries,
		}
		if rd.Setting != nil {
			rule.Setting = *rd.Setting
		}

		return rule, nil
	case models.RuleTypeTime:
		return &models.TimeRule{
			RuleBase:      base,
			TimeSeries:    rd.TimeSeries,
			Interpolation: cmp.Or(rd.Interpolation, models.InterpolationConstant),
			Periodic:      rd.Periodic,
		}, nil
	case models.RuleTypeRelativeTime:
		return &models.RelativeTimeRule{
			RuleBase:      base,
			Table:         rd.Table,
			Interpolation: cmp.Or(rd.Interpolation, models.InterpolationLinear),
			FromValue:     rd.FromValue,
			MinimumPeriod: rd.MinimumPeriod,
		}, nil
	case models.RuleTypeFactor:
		return &models.FactorRule{RuleBase: base, Factor: rd.Factor}, nil
	default:
		return nil, fmt.Errorf("%w %q for rule %q", ErrUnknownType, rd.Type, rd.Name)
	}
}

func (cd Condition) condition() (models.Condition, error) {
	base := models.ConditionBase{ID: nodeID(cd.ID), Name: cd.Name}

	switch cd.Type {
	case models.ConditionTypeStandard:
		return &models.StandardCondition{
			ConditionBase: base,
			Operation:     cd.Operation,
			Value:         cd.Value,
			Reference:     cmp.Or(cd.Reference, models.ReferenceImplicit),
		}, nil
	case models.ConditionTypeTime:
		return &models.TimeCondition{
			ConditionBase: base,
			TimeSeries:    cd.TimeSeries,
			Extrapolation: cmp.Or(cd.Extrapolation, models.ExtrapolationConstant),
		}, nil
	default:
		return nil, fmt.Errorf("%w %q for condition %q", ErrUnknownType, cd.Type, cd.Name)
	}
}

// FromModel builds the document describing model. Nil control groups are skipped.
func FromModel(model *models.RealTimeControlModel) *Document {
	d := &Document{
		ID:            model.ID,
		Name:          model.Name,
		StartTime:     model.StartTime,
		StopTime:      model.StopTime,
		ControlGroups: make([]ControlGroup, 0, len(model.ControlGroups)),
		Coupling:      model.Coupling,
	}

	if model.TimeStep != 0 {
		d.TimeStep = model.TimeStep.String()
	}

	for _, group := range model.ControlGroups {
		if group != nil {
			d.ControlGroups = append(d.ControlGroups, fromGroup(group))
		}
	}

	return d
}

func fromGroup(group *models.ControlGroup) ControlGroup {
	gd := ControlGroup{ID: string(group.ID), Name: group.Name}

	for _, input := range group.Inputs {
		gd.Inputs = append(gd.Inputs, Port{ID: string(input.ID), Name: input.Name, Feature: input.Feature, Parameter: input.Parameter})
	}

	for _, output := range group.Outputs {
		gd.Outputs = append(gd.Outputs, Port{ID: string(output.ID), Name: output.Name, Feature: output.Feature, Parameter: output.Parameter})
	}

	for _, rule := range group.Rules {
		gd.Rules = append(gd.Rules, fromRule(group, rule))
	}

	for _, condition := range group.Conditions {
		gd.Conditions = append(gd.Conditions, fromCondition(group, condition))
	}

	for _, signal := range group.Signals {
		sd := Signal{
			ID:     string(signal.ID),
			Name:   signal.Name,
			Inputs: refStrings(group, signal.Inputs, operandKinds...),
			Table:  signal.Table,
		}

		for _, id := range signal.RuleBases {
			sd.Rules = append(sd.Rules, refString(group, models.RuleRef(id), models.NodeKindRule))
		}

		gd.Signals = append(gd.Signals, sd)
	}

	for _, expression := range group.MathematicalExpressions {
		gd.Expressions = append(gd.Expressions, Expression{
			ID:         string(expression.ID),
			Name:       expression.Name,
			Expression: expression.Expression,
			Inputs:     refStrings(group, expression.Inputs, operandKinds...),
		})
	}

	return gd
}

func fromRule(group *models.ControlGroup, rule models.Rule) Rule {
	base := rule.Base()
	rd := Rule{
		Type:   rule.Type(),
		ID:     string(base.ID),
		Name:   base.Name,
		Inputs: refStrings(group, base.Inputs, operandKinds...),
	}

	for _, id := range base.Outputs {
		rd.Outputs = append(rd.Outputs, refString(group, models.Ref{Kind: models.NodeKindOutput, ID: id}, models.NodeKindOutput))
	}

	switch r := rule.(type) {
	case *models.PIDRule:
		rd.Kp, rd.Ki, rd.Kd = r.Kp, r.Ki, r.Kd
		rd.Min, rd.Max, rd.MaxSpeed = r.Min, r.Max, r.MaxSpeed
		rd.SetpointType, rd.Setpoint = r.SetpointType, r.Setpoint
		rd.TimeSeries = r.TimeSeries
	case *models.HydraulicRule:
		rd.Table, rd.Interpolation, rd.Extrapolation = r.Table, r.Interpolation, r.Extrapolation
	case *models.IntervalRule:
		setting := r.Setting
		rd.Setting = &setting
		rd.DeadbandAroundSetpoint = r.DeadbandAroundSetpoint
		rd.IntervalType, rd.FixedInterval = r.IntervalType, r.FixedInterval
		rd.TimeSeries = r.TimeSeries
	case *models.TimeRule:
		rd.TimeSeries, rd.Interpolation, rd.Periodic = r.TimeSeries, r.Interpolation, r.Periodic
	case *models.RelativeTimeRule:
		rd.Table, rd.Interpolation = r.Table, r.Interpolation
		rd.FromValue, rd.MinimumPeriod = r.FromValue, r.MinimumPeriod
	case *models.FactorRule:
		rd.Factor = r.Factor
	}

	return rd
}

func fromCondition(group *models.ControlGroup, condition models.Condition) Condition {
	base := condition.Base()
	cd := Condition{
		Type:         condition.Type(),
		ID:           string(base.ID),
		Name:         base.Name,
		TrueOutputs:  refStrings(group, base.TrueOutputs, successorKinds...),
		FalseOutputs: refStrings(group, base.FalseOutputs, successorKinds...),
	}

	if base.Input != nil {
		cd.Input = refString(group, *base.Input, operandKinds...)
	}

	switch c := condition.(type) {
	case *models.StandardCondition:
		cd.Operation, cd.Value, cd.Reference = c.Operation, c.Value, c.Reference
	case *models.TimeCondition:
		cd.TimeSeries, cd.Extrapolation = c.TimeSeries, c.Extrapolation
	}

	return cd
}

func nodeID(s string) models.ID {
	if s == "" {
		return models.NewID()
	}

	return models.ID(s)
}

var (
	operandKinds   = []models.NodeKind{models.NodeKindInput, models.NodeKindExpression}
	successorKinds = []models.NodeKind{models.NodeKindRule, models.NodeKindCondition}
)

var refKinds = []models.NodeKind{
	models.NodeKindInput, models.NodeKindOutput, models.NodeKindRule,
	models.NodeKindCondition, models.NodeKindSignal, models.NodeKindExpression,
}

// resolve turns "name", "id", "kind:name" or "kind:id" into a reference.
// Without a kind prefix each of kinds is tried in order, the first being the
// fallback when nothing matches. Within a kind, IDs take precedence over names.
func resolve(group *models.ControlGroup, s string, kinds ...models.NodeKind) models.Ref {
	key := s

	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		for _, k := range refKinds {
			if string(k) == prefix {
				kinds, key = []models.NodeKind{k}, rest

				break
			}
		}
	}

	for _, kind := range kinds {
		ref := models.Ref{Kind: kind, ID: models.ID(key)}
		if _, ok := group.Node(ref); ok {
			return ref
		}

		if n, ok := group.NodeByName(kind, key); ok {
			return models.RefTo(n)
		}
	}

	return models.Ref{Kind: kinds[0], ID: models.ID(key)}
}

// refString writes ref so that resolve reads it back: by name when the name
// identifies the node, by ID otherwise, with a kind prefix when the bare key
// would resolve to something else.
func refString(group *models.ControlGroup, ref models.Ref, kinds ...models.NodeKind) string {
	key := string(ref.ID)

	if n, ok := group.Node(ref); ok && identifiesNode(group, n) {
		key = n.NodeName()
	}

	if strings.Contains(key, ":") || resolve(group, key, kinds...) != ref {
		return string(ref.Kind) + ":" + key
	}

	return key
}

func identifiesNode(group *models.ControlGroup, n models.Node) bool {
	name := n.NodeName()
	if name == "" {
		return false
	}

	if _, ok := group.Node(models.Ref{Kind: n.NodeKind(), ID: models.ID(name)}); ok {
		return false
	}

	first, ok := group.NodeByName(n.NodeKind(), name)

	return ok && first.NodeID() == n.NodeID()
}

func refStrings(group *models.ControlGroup, refs []models.Ref, kinds ...models.NodeKind) []string {
	if len(refs) == 0 {
		return nil
	}

	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = refString(group, ref, kinds...)
	}

	return out
}
