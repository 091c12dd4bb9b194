package graph

import "github.com/dukex/rtcontrol/pkg/models"

// Cycle is a closed path of node IDs; the first node follows the last.
type Cycle []models.ID

// ExpressionCycles finds expressions that reach themselves through their operands.
func ExpressionCycles(group *models.ControlGroup) []Cycle {
	if group == nil {
		return nil
	}

	ids := make([]models.ID, len(group.MathematicalExpressions))
	for i, e := range group.MathematicalExpressions {
		ids[i] = e.ID
	}

	return detectCycles(ids, func(id models.ID) []models.ID {
		expression, ok := group.Expression(id)
		if !ok {
			return nil
		}

		var next []models.ID

		for _, ref := range expression.Inputs {
			if ref.Kind == models.NodeKindExpression {
				next = append(next, ref.ID)
			}
		}

		return next
	})
}

// ConditionCycles finds conditions that reach themselves through their true or false outputs.
func ConditionCycles(group *models.ControlGroup) []Cycle {
	if group == nil {
		return nil
	}

	ids := make([]models.ID, len(group.Conditions))
	for i, c := range group.Conditions {
		ids[i] = c.NodeID()
	}

	return detectCycles(ids, func(id models.ID) []models.ID {
		condition, ok := group.Condition(id)
		if !ok {
			return nil
		}

		var next []models.ID

		for _, ref := range condition.Base().Successors() {
			if ref.Kind == models.NodeKindCondition {
				next = append(next, ref.ID)
			}
		}

		return next
	})
}

// detectCycles runs a depth-first search with three-colour marking. A back
// edge to a node on the current path closes a cycle.
func detectCycles(ids []models.ID, successors func(models.ID) []models.ID) []Cycle {
	const (
		white = iota // unvisited
		grey         // on the current path
		black        // fully explored
	)

	color := make(map[models.ID]int, len(ids))
	cycles := make([]Cycle, 0)

	var path []models.ID

	var visit func(id models.ID)
	visit = func(id models.ID) {
		color[id] = grey
		path = append(path, id)

		for _, next := range successors(id) {
			switch color[next] {
			case white:
				visit(next)
			case grey:
				cycles = append(cycles, closeCycle(path, next))
			}
		}

		path = path[:len(path)-1]
		color[id] = black
	}

	for _, id := range ids {
		if color[id] == white {
			visit(id)
		}
	}

	return cycles
}

func closeCycle(path []models.ID, start models.ID) Cycle {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == start {
			cycle := make(Cycle, len(path)-i)
			copy(cycle, path[i:])

			return cycle
		}
	}

	return Cycle{start}
}
