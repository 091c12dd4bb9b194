package validation

import (
	"testing"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCoupling links the model's discharge item to a hydrodynamic model and a
// water quality model, and the water level of the hydrodynamic model back to it.
func newCoupling(modelID string, simultaneous ...string) *models.Coupling {
	coupling := &models.Coupling{
		DataItems: []models.DataItem{
			{ID: "rtc.discharge", Owner: modelID},
			{ID: "rtc.level", Owner: modelID},
			{ID: "flow.discharge", Owner: "flow"},
			{ID: "flow.level", Owner: "flow"},
			{ID: "quality.inflow", Owner: "quality"},
			{ID: "rtc.internal", Owner: modelID},
		},
		Simultaneous: simultaneous,
	}

	coupling.Link("rtc.discharge", "flow.discharge")
	coupling.Link("flow.level", "rtc.level")
	coupling.Link("rtc.discharge", "quality.inflow")
	coupling.Link("rtc.discharge", "rtc.internal")

	return coupling
}

func TestControlledActivities(t *testing.T) {
	coupling := newCoupling("rtc")

	assert.Equal(t, []string{"flow", "quality"}, ControlledActivities(coupling, "rtc"))
	assert.Equal(t, []string{"rtc"}, ControlledActivities(coupling, "flow"))
	assert.Empty(t, ControlledActivities(coupling, "unknown"))
}

func TestValidate_ControlledModels(t *testing.T) {
	tests := []struct {
		name         string
		simultaneous func(modelID string) []string
		want         []string
	}{
		{
			name:         "all simultaneous",
			simultaneous: func(id string) []string { return []string{id, "flow", "quality"} },
		},
		{
			name:         "model missing",
			simultaneous: func(string) []string { return []string{"flow", "quality"} },
			want: []string{
				"Model 'rtc model' controls 2 other model(s) but is not part of a composite workflow running them simultaneously.",
			},
		},
		{
			name:         "controlled model missing",
			simultaneous: func(id string) []string { return []string{id, "flow"} },
			want: []string{
				"Model 'rtc model' controls 'quality', which does not run simultaneously with it.",
			},
		},
		{
			name:         "nothing simultaneous",
			simultaneous: func(string) []string { return nil },
			want: []string{
				"Model 'rtc model' controls 2 other model(s) but is not part of a composite workflow running them simultaneously.",
				"Model 'rtc model' controls 'flow', which does not run simultaneously with it.",
				"Model 'rtc model' controls 'quality', which does not run simultaneously with it.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, _ := newModel(t)
			model.Coupling = newCoupling(model.ID, tt.simultaneous(model.ID)...)

			report := validate(t, model)

			controlled, ok := report.Child(ControlledModelsReport)
			require.True(t, ok)
			assert.Equal(t, tt.want, nonNil(messages(controlled.Issues)))

			for _, issue := range controlled.Issues {
				assert.Equal(t, Error, issue.Severity)
				assert.Equal(t, model.NodeID(), issue.Subject.NodeID())
			}
		})
	}
}

func TestValidate_ControlledModelsWithoutLinks(t *testing.T) {
	model, _ := newModel(t)
	model.Coupling = &models.Coupling{
		DataItems: []models.DataItem{{ID: "rtc.level", Owner: model.ID}},
	}

	report := validate(t, model)

	assert.True(t, report.IsValid())
}

func TestValidate_WithEnvironment(t *testing.T) {
	model, _ := newModel(t)
	model.Coupling = newCoupling(model.ID, model.ID, "flow", "quality")

	report := validate(t, model, WithEnvironment(newCoupling(model.ID)))

	controlled, ok := report.Child(ControlledModelsReport)
	require.True(t, ok)
	assert.Len(t, controlled.Issues, 3)
}

func nonNil(msgs []string) []string {
	if len(msgs) == 0 {
		return nil
	}

	return msgs
}
