package validation

import "github.com/dukex/rtcontrol/pkg/models"

// checkSignals verifies that rules expecting a signal get one and that signals
// are only wired into rules that use them.
func checkSignals(group *models.ControlGroup, report *Report) {
	for _, rule := range group.Rules {
		if !rule.IsLinkedFromSignal() {
			continue
		}

		if !isDrivenBySignal(group, rule.NodeID()) {
			report.AddError(rule, "Rule '%s' expects a signal but no signal is connected to it.", rule.NodeName())
		}
	}

	for _, signal := range group.Signals {
		for _, id := range signal.RuleBases {
			rule, ok := group.Rule(id)
			if !ok || rule.IsLinkedFromSignal() {
				continue
			}

			report.AddRelatedWarning(signal, rule,
				"Signal '%s' is connected to rule '%s', which does not take its input from a signal; the signal is ignored.",
				signal.Name, rule.NodeName())
		}
	}
}

func isDrivenBySignal(group *models.ControlGroup, id models.ID) bool {
	for _, signal := range group.Signals {
		if signal.Drives(id) {
			return true
		}
	}

	return false
}
