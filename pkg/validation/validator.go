package validation

import (
	"context"
	"log/slog"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/otelhelper"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Report names used for the fixed levels of the tree.
const (
	ControlGroupsReport    = "Control groups"
	ControlledModelsReport = "Controlled models"
)

// Environment describes the composite workflow a model runs in: the data-item
// link graph and the activities run simultaneously with the model.
type Environment interface {
	DataItemsOwnedBy(activity string) []string
	LinkedTo(item string) []string
	LinkedBy(item string) []string
	Owner(item string) (string, bool)
	SimultaneousActivities() []string
}

// Validator runs every check against a model and collects the findings.
// It holds no state between calls and never mutates what it validates.
type Validator struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	validate *validator.Validate
	env      Environment
}

// Option configures a Validator.
type Option func(*Validator)

// WithTracer sets the tracer used for validation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(v *Validator) {
		v.tracer = tracer
	}
}

// WithStructValidator sets the validator used for struct tag invariants.
func WithStructValidator(validate *validator.Validate) Option {
	return func(v *Validator) {
		v.validate = validate
	}
}

// WithEnvironment overrides the coupling snapshot stored on the model.
func WithEnvironment(env Environment) Option {
	return func(v *Validator) {
		v.env = env
	}
}

// New creates a validator. A nil logger discards log output.
func New(logger *slog.Logger, opts ...Option) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v := &Validator{
		logger:   logger,
		tracer:   otelhelper.NoopTracer("validation"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate checks every control group of the model and the model's coupling.
// The returned error is non-nil only for a nil model or a nil control group.
func (v *Validator) Validate(ctx context.Context, model *models.RealTimeControlModel) (*Report, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	ctx, span := otelhelper.StartSpan(ctx, v.tracer, "validation.Validate",
		attribute.String(otelhelper.ModelIDKey, model.ID),
		attribute.String(otelhelper.ModelNameKey, model.Name),
	)
	defer span.End()

	report := NewReport(model.Name)

	groups := NewReport(ControlGroupsReport)
	checkControlGroupNames(model, groups)

	for _, group := range model.ControlGroups {
		if group == nil {
			return nil, ErrNilControlGroup
		}

		groups.AddReport(v.controlGroupReport(ctx, model, group))
	}

	report.AddReport(groups)
	report.AddReport(v.controlledModelsReport(model))

	span.SetAttributes(
		attribute.Int(otelhelper.ErrorCountKey, report.ErrorCount()),
		attribute.Int(otelhelper.WarningCountKey, report.WarningCount()),
	)

	v.logger.Debug("Validated real-time control model",
		"model_id", model.ID,
		"control_groups", len(model.ControlGroups),
		"errors", report.ErrorCount(),
		"warnings", report.WarningCount(),
	)

	return report, nil
}

// ValidateControlGroup checks a single control group against the time frame of its model.
func (v *Validator) ValidateControlGroup(ctx context.Context, model *models.RealTimeControlModel, group *models.ControlGroup) (*Report, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	if group == nil {
		return nil, ErrNilControlGroup
	}

	return v.controlGroupReport(ctx, model, group), nil
}

func (v *Validator) controlGroupReport(ctx context.Context, model *models.RealTimeControlModel, group *models.ControlGroup) *Report {
	_, span := otelhelper.StartSpan(ctx, v.tracer, "validation.ControlGroup",
		attribute.String(otelhelper.ControlGroupIDKey, string(group.ID)),
		attribute.String(otelhelper.ControlGroupNameKey, group.Name),
	)
	defer span.End()

	report := NewReport(group.Name)

	checkStructure(group, report)
	checkNames(group, report)
	checkSignals(group, report)
	checkTimeSeries(model, group, report)
	v.checkAttributes(group, report)
	checkReferences(group, report)
	checkCycles(group, report)
	checkConnectivity(group, report)

	span.SetAttributes(
		attribute.Int(otelhelper.ErrorCountKey, report.ErrorCount()),
		attribute.Int(otelhelper.WarningCountKey, report.WarningCount()),
	)

	v.logger.Debug("Validated control group",
		"control_group", group.Name,
		"errors", report.ErrorCount(),
		"warnings", report.WarningCount(),
	)

	return report
}

func (v *Validator) environment(model *models.RealTimeControlModel) Environment {
	if v.env != nil {
		return v.env
	}

	if model.Coupling != nil {
		return model.Coupling
	}

	return nil
}
