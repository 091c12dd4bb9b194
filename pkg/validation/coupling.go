package validation

import (
	"slices"

	"github.com/dukex/rtcontrol/pkg/models"
)

// controlledModelsReport checks that every activity the model drives runs in
// the same composite workflow as the model. Without an environment the report is empty.
func (v *Validator) controlledModelsReport(model *models.RealTimeControlModel) *Report {
	report := NewReport(ControlledModelsReport)

	env := v.environment(model)
	if env == nil {
		return report
	}

	controlled := ControlledActivities(env, model.ID)
	if len(controlled) == 0 {
		return report
	}

	simultaneous := env.SimultaneousActivities()

	if !slices.Contains(simultaneous, model.ID) {
		report.AddError(model,
			"Model '%s' controls %d other model(s) but is not part of a composite workflow running them simultaneously.",
			model.Name, len(controlled))
	}

	for _, activity := range controlled {
		if !slices.Contains(simultaneous, activity) {
			report.AddError(model,
				"Model '%s' controls '%s', which does not run simultaneously with it.", model.Name, activity)
		}
	}

	return report
}

// ControlledActivities returns the activities owning a data item linked to or
// from an item of the given activity, in discovery order and without duplicates.
func ControlledActivities(env Environment, activity string) []string {
	var controlled []string

	visit := func(item string) {
		owner, ok := env.Owner(item)
		if !ok || owner == activity || slices.Contains(controlled, owner) {
			return
		}

		controlled = append(controlled, owner)
	}

	for _, item := range env.DataItemsOwnedBy(activity) {
		for _, linked := range env.LinkedTo(item) {
			visit(linked)
		}

		for _, linked := range env.LinkedBy(item) {
			visit(linked)
		}
	}

	return controlled
}
