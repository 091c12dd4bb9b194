package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/rtcontrol/pkg/graph"
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/otelhelper"
	"github.com/dukex/rtcontrol/pkg/persistence"
	"github.com/dukex/rtcontrol/pkg/validation"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Model struct {
	persistence persistence.Persistence
	validator   *validation.Validator
	validate    *validator.Validate
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewModel creates a new model service. A nil tracer disables tracing.
func NewModel(persistence persistence.Persistence, v *validation.Validator, logger *slog.Logger, tracer trace.Tracer) *Model {
	if tracer == nil {
		tracer = otelhelper.NoopTracer("services")
	}

	return &Model{
		persistence: persistence,
		validator:   v,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
		tracer:      tracer,
	}
}

// HealthCheck checks the health of the persistence layer.
func (m *Model) HealthCheck(ctx context.Context) (string, bool) {
	if m.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := m.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every readable stored model. Unreadable models are logged and skipped.
func (m *Model) List(ctx context.Context) ([]*models.RealTimeControlModel, error) {
	all, err := m.persistence.Models(ctx)
	if err != nil && all == nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	if err != nil {
		m.logger.WarnContext(ctx, "Skipped unreadable models", "error", err)
	}

	return all, nil
}

// FetchByID loads a stored model.
func (m *Model) FetchByID(ctx context.Context, id string) (*models.RealTimeControlModel, error) {
	model, err := m.persistence.ModelByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return model, nil
}

// Create stores a new model, assigning an ID when it has none.
func (m *Model) Create(ctx context.Context, model *models.RealTimeControlModel) (*models.RealTimeControlModel, error) {
	if model == nil {
		return nil, ErrModelNil
	}

	if model.ID == "" {
		model.ID = string(models.NewID())
	}

	if err := m.validate.Struct(model); err != nil {
		return nil, NewValidationError("Create", "invalid_model", err.Error(), ErrInvalidRequest)
	}

	if err := m.persistence.SaveModel(ctx, model); err != nil {
		return nil, fmt.Errorf("failed to save model: %w", err)
	}

	m.logger.InfoContext(ctx, "Created model", "model_id", model.ID, "name", model.Name)

	return model, nil
}

// Delete removes a stored model.
func (m *Model) Delete(ctx context.Context, id string) error {
	if err := m.persistence.DeleteModel(ctx, id); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "Deleted model", "model_id", id)

	return nil
}

// Validate runs the validation engine on a stored model.
func (m *Model) Validate(ctx context.Context, id string) (*validation.Report, error) {
	model, err := m.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return m.ValidateModel(ctx, model)
}

// ValidateModel runs the validation engine on model.
func (m *Model) ValidateModel(ctx context.Context, model *models.RealTimeControlModel) (*validation.Report, error) {
	if model == nil {
		return nil, ErrModelNil
	}

	ctx, span := otelhelper.StartSpan(ctx, m.tracer, "services.ValidateModel",
		attribute.String(otelhelper.ModelIDKey, model.ID),
	)
	defer span.End()

	report, err := m.validator.Validate(ctx, model)
	if err != nil {
		otelhelper.SetError(span, err, attribute.String(otelhelper.ModelIDKey, model.ID))

		if errors.Is(err, validation.ErrNilControlGroup) {
			return nil, NewValidationError("ValidateModel", "nil_control_group", err.Error(), ErrInvalidRequest)
		}

		return nil, err
	}

	return report, nil
}

// Triggers returns the trigger objects of a control group of a stored model.
func (m *Model) Triggers(ctx context.Context, id, groupRef string) ([]models.Node, error) {
	group, err := m.controlGroup(ctx, id, groupRef)
	if err != nil {
		return nil, err
	}

	return graph.RetrieveTriggerObjects(group)
}

// InputsForOutput returns the inputs influencing an output of a stored model.
// Groups and outputs are looked up by name first, then by ID.
func (m *Model) InputsForOutput(ctx context.Context, id, groupRef, outputRef string) ([]*models.Input, error) {
	group, err := m.controlGroup(ctx, id, groupRef)
	if err != nil {
		return nil, err
	}

	ctx, span := otelhelper.StartSpan(ctx, m.tracer, "services.InputsForOutput",
		attribute.String(otelhelper.ControlGroupIDKey, string(group.ID)),
		attribute.String(otelhelper.OutputIDKey, outputRef),
	)
	defer span.End()

	output, ok := FindOutput(group, outputRef)
	if !ok {
		otelhelper.SetError(span, ErrOutputNotFound)

		return nil, fmt.Errorf("%w: %q in control group %q", ErrOutputNotFound, outputRef, group.Name)
	}

	inputs, err := graph.InputItemsForOutput(group, output.ID)
	if err != nil {
		return nil, err
	}

	m.logger.DebugContext(ctx, "Collected inputs for output", "output", output.Name, "inputs", len(inputs))

	return inputs, nil
}

func (m *Model) controlGroup(ctx context.Context, id, groupRef string) (*models.ControlGroup, error) {
	model, err := m.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group, ok := FindControlGroup(model, groupRef)
	if !ok {
		return nil, fmt.Errorf("%w: %q in model %s", ErrControlGroupNotFound, groupRef, id)
	}

	return group, nil
}

// FindControlGroup looks a control group up by name, then by ID.
func FindControlGroup(model *models.RealTimeControlModel, ref string) (*models.ControlGroup, bool) {
	if group, ok := model.ControlGroup(ref); ok {
		return group, true
	}

	for _, group := range model.ControlGroups {
		if group != nil && string(group.ID) == ref {
			return group, true
		}
	}

	return nil, false
}

// FindOutput looks an output up by name, then by ID.
func FindOutput(group *models.ControlGroup, ref string) (*models.Output, bool) {
	if n, ok := group.NodeByName(models.NodeKindOutput, ref); ok {
		output, ok := n.(*models.Output)

		return output, ok
	}

	return group.Output(models.ID(ref))
}
