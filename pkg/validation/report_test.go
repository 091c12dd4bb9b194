package validation

import (
	"encoding/json"
	"testing"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestSeverityText(t *testing.T) {
	for _, severity := range []Severity{Warning, Error} {
		text, err := severity.MarshalText()
		require.NoError(t, err)

		var decoded Severity
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, severity, decoded)
	}

	var s Severity
	err := s.UnmarshalText([]byte("fatal"))
	require.ErrorIs(t, err, ErrUnknownSeverity)
	assert.Equal(t, "unknown", Severity(7).String())
}

func TestReportTree(t *testing.T) {
	rule := models.NewFactorRule("factor", 2)
	output := models.NewOutput("crest", "weir", "crest_level")

	root := NewReport("model")
	groups := NewReport(ControlGroupsReport)
	group := NewReport("group")

	group.AddError(rule, "Rule '%s' is broken.", rule.Name)
	group.AddRelatedWarning(rule, output, "Rule '%s' drives '%s'.", rule.Name, output.Name)
	groups.AddWarning(nil, "Loose warning.")
	groups.AddReport(group)
	root.AddReport(groups)
	root.AddRelatedError(rule, output, "Second error.")

	assert.Equal(t, 2, root.ErrorCount())
	assert.Equal(t, 2, root.WarningCount())
	assert.False(t, root.IsValid())
	assert.True(t, NewReport("empty").IsValid())

	var visited []string
	root.Walk(func(r *Report, depth int) {
		visited = append(visited, r.Name)
		if r.Name == "group" {
			assert.Equal(t, 2, depth)
		}
	})
	assert.Equal(t, []string{"model", ControlGroupsReport, "group"}, visited)

	assert.Equal(t, []string{"Second error.", "Loose warning.", "Rule 'factor' is broken.", "Rule 'factor' drives 'crest'."},
		messages(root.AllIssues()))

	child, ok := root.Child(ControlGroupsReport)
	require.True(t, ok)
	assert.Same(t, groups, child)

	_, ok = root.Child("missing")
	assert.False(t, ok)
}

func TestReportErr(t *testing.T) {
	assert.NoError(t, NewReport("empty").Err())

	rule := models.NewFactorRule("factor", 2)
	report := NewReport("group")
	report.AddError(rule, "first")
	report.AddWarning(rule, "ignored")
	report.AddError(rule, "second")

	err := report.Err()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var issueErr *IssueError
	require.ErrorAs(t, errs[0], &issueErr)
	assert.Equal(t, "first", issueErr.Error())
	assert.Equal(t, rule.ID, issueErr.Issue.Subject.NodeID())
}

func TestIssueJSON(t *testing.T) {
	rule := models.NewFactorRule("factor", 2)
	output := models.NewOutput("crest", "weir", "crest_level")

	report := NewReport("group")
	report.AddRelatedWarning(rule, output, "Rule drives output.")
	report.AddError(nil, "Orphan.")

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded struct {
		Name   string `json:"name"`
		Issues []struct {
			Severity string            `json:"severity"`
			Message  string            `json:"message"`
			Subject  map[string]string `json:"subject"`
			Related  map[string]string `json:"related"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "warning", decoded.Issues[0].Severity)
	assert.Equal(t, map[string]string{"kind": "rule", "id": string(rule.ID), "name": "factor"}, decoded.Issues[0].Subject)
	assert.Equal(t, "output", decoded.Issues[0].Related["kind"])
	assert.Equal(t, "error", decoded.Issues[1].Severity)
	assert.Nil(t, decoded.Issues[1].Subject)
	assert.Equal(t, "[error] Orphan.", report.Issues[1].String())
}
