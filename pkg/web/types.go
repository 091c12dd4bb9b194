package web

import (
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/validation"
)

// ModelSummary is the list representation of a stored model.
type ModelSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ControlGroups int    `json:"control_groups"`
}

// ValidationResponse wraps a validation report with its totals.
type ValidationResponse struct {
	Valid    bool               `json:"valid"`
	Errors   int                `json:"errors"`
	Warnings int                `json:"warnings"`
	Report   *validation.Report `json:"report"`
}

// NodeResponse identifies a node of a control group.
type NodeResponse struct {
	Kind models.NodeKind `json:"kind"`
	ID   models.ID       `json:"id"`
	Name string          `json:"name"`
}

// InputResponse is an input together with the model location it measures.
type InputResponse struct {
	ID        models.ID `json:"id"`
	Name      string    `json:"name"`
	Feature   string    `json:"feature"`
	Parameter string    `json:"parameter"`
}

func toModelSummary(model *models.RealTimeControlModel) ModelSummary {
	return ModelSummary{ID: model.ID, Name: model.Name, ControlGroups: len(model.ControlGroups)}
}

func toValidationResponse(report *validation.Report) ValidationResponse {
	return ValidationResponse{
		Valid:    report.IsValid(),
		Errors:   report.ErrorCount(),
		Warnings: report.WarningCount(),
		Report:   report,
	}
}

func toNodeResponses(nodes []models.Node) []NodeResponse {
	responses := make([]NodeResponse, len(nodes))
	for i, n := range nodes {
		responses[i] = NodeResponse{Kind: n.NodeKind(), ID: n.NodeID(), Name: n.NodeName()}
	}

	return responses
}

func toInputResponses(inputs []*models.Input) []InputResponse {
	responses := make([]InputResponse, len(inputs))
	for i, input := range inputs {
		responses[i] = InputResponse{ID: input.ID, Name: input.Name, Feature: input.Feature, Parameter: input.Parameter}
	}

	return responses
}
