package validation

import (
	"errors"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/go-playground/validator/v10"
)

// checkAttributes runs the struct tag invariants of the group and of every
// node it owns. Each failed field becomes one Error on the owning node.
func (v *Validator) checkAttributes(group *models.ControlGroup, report *Report) {
	v.checkStruct(group, group, report)

	for _, node := range group.Nodes() {
		v.checkStruct(node, node, report)
	}
}

func (v *Validator) checkStruct(subject models.Node, value any, report *Report) {
	err := v.validate.Struct(value)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.logger.Warn("Struct validation failed", "subject", subject.NodeName(), "error", err)
		report.AddError(subject, "%s '%s' could not be checked: %v.", kindLabel(subject.NodeKind()), subject.NodeName(), err)

		return
	}

	for _, fe := range fieldErrors {
		report.AddError(subject, "%s '%s' has an invalid %s: %s.",
			kindLabel(subject.NodeKind()), subject.NodeName(), fe.Field(), constraint(fe))
	}
}

func constraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "required_if":
		return "value is required for this configuration"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "gte":
		return "must be at least " + fe.Param()
	case "gtefield":
		return "must not be less than " + fe.Param()
	case "min":
		return "needs at least " + fe.Param() + " entries"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "excludesall":
		return "must not contain any of '" + fe.Param() + "'"
	default:
		return "failed the '" + fe.Tag() + "' constraint"
	}
}

func kindLabel(kind models.NodeKind) string {
	switch kind {
	case models.NodeKindInput:
		return "Input"
	case models.NodeKindOutput:
		return "Output"
	case models.NodeKindRule:
		return "Rule"
	case models.NodeKindCondition:
		return "Condition"
	case models.NodeKindSignal:
		return "Signal"
	case models.NodeKindExpression:
		return "Mathematical expression"
	case models.NodeKindControlGroup:
		return "Control group"
	case models.NodeKindModel:
		return "Model"
	default:
		return string(kind)
	}
}
