// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/google/uuid"
)

// DefaultStart is the start time of models built by CreateTestModel.
var DefaultStart = time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

// CreateTestControlGroup creates a valid control group: a condition on the
// "lake level" input routing to a PID rule driving the "gate" output.
func CreateTestControlGroup(name string) *models.ControlGroup {
	group := models.NewControlGroup(name)
	level := models.NewInput("lake level", "lake", "water_level")
	gate := models.NewOutput("gate", "sluice-1", "gate_opening")

	pid := models.NewPIDRule("keep level")
	pid.AddInput(models.InputRef(level.ID))
	pid.AddOutput(gate.ID)

	high := models.NewStandardCondition("too high", models.OperationGreater, 2.1)
	high.SetInput(models.InputRef(level.ID))
	high.AddTrueOutput(models.RuleRef(pid.ID))

	group.AddInput(level)
	group.AddOutput(gate)
	group.AddRule(pid)
	group.AddCondition(high)

	return group
}

// CreateTestModel creates a valid model with one "sluice" control group and
// default values that can be overridden.
func CreateTestModel(overrides ...func(*models.RealTimeControlModel)) *models.RealTimeControlModel {
	model := &models.RealTimeControlModel{
		ID:        uuid.New().String(),
		Name:      "lake",
		StartTime: DefaultStart,
		StopTime:  DefaultStart.Add(48 * time.Hour),
		TimeStep:  10 * time.Minute,
	}

	model.AddControlGroup(CreateTestControlGroup("sluice"))

	for _, override := range overrides {
		override(model)
	}

	return model
}

// WithID sets the model ID.
func WithID(id string) func(*models.RealTimeControlModel) {
	return func(m *models.RealTimeControlModel) {
		m.ID = id
	}
}

// WithName sets the model name.
func WithName(name string) func(*models.RealTimeControlModel) {
	return func(m *models.RealTimeControlModel) {
		m.Name = name
	}
}

// WithTimeFrame sets the simulation period and time step.
func WithTimeFrame(start, stop time.Time, step time.Duration) func(*models.RealTimeControlModel) {
	return func(m *models.RealTimeControlModel) {
		m.StartTime = start
		m.StopTime = stop
		m.TimeStep = step
	}
}

// WithControlGroup adds a control group.
func WithControlGroup(group *models.ControlGroup) func(*models.RealTimeControlModel) {
	return func(m *models.RealTimeControlModel) {
		m.AddControlGroup(group)
	}
}
