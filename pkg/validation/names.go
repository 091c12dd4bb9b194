package validation

import "github.com/dukex/rtcontrol/pkg/models"

// checkNames reports names shared within rules, within conditions and within signals.
func checkNames(group *models.ControlGroup, report *Report) {
	checkUniqueNames(asNodes(group.Rules), "rules", report)
	checkUniqueNames(asNodes(group.Conditions), "conditions", report)
	checkUniqueNames(asNodes(group.Signals), "signals", report)
}

// checkControlGroupNames reports control groups sharing a name within the model.
func checkControlGroupNames(model *models.RealTimeControlModel, report *Report) {
	nodes := make([]models.Node, 0, len(model.ControlGroups))

	for _, group := range model.ControlGroups {
		if group != nil {
			nodes = append(nodes, group)
		}
	}

	checkUniqueNames(nodes, "control groups", report)
}

// checkUniqueNames emits one Error per node whose name is used more than once.
func checkUniqueNames(nodes []models.Node, category string, report *Report) {
	counts := make(map[string]int, len(nodes))
	for _, n := range nodes {
		counts[n.NodeName()]++
	}

	for _, n := range nodes {
		if count := counts[n.NodeName()]; count > 1 {
			report.AddError(n, "Name '%s' is used by %d %s.", n.NodeName(), count, category)
		}
	}
}

func asNodes[T models.Node](items []T) []models.Node {
	nodes := make([]models.Node, len(items))
	for i, item := range items {
		nodes[i] = item
	}

	return nodes
}
