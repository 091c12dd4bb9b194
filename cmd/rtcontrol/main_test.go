package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/rtcontrol/pkg/document"
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/services"
	"github.com/dukex/rtcontrol/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	command := newCommand()
	command.Writer = &out
	command.ErrWriter = &errOut

	err := command.Run(t.Context(), append([]string{"rtcontrol"}, args...))

	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "testdata/weir.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Weir control\n  Control groups\n    weir\n")
	assert.Contains(t, out, "0 error(s), 0 warning(s)")
}

func TestValidateCommand_Invalid(t *testing.T) {
	out, err := run(t, "validate", "testdata/empty_group.yaml")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, out, "[error] Control group 'pumps' requires at least 1 rule.")
	assert.Contains(t, out, "[error] Control group 'pumps' requires at least 1 output.")
}

func TestValidateCommand_JSON(t *testing.T) {
	out, err := run(t, "validate", "--format", "json", "testdata/weir.yaml")
	require.NoError(t, err)

	var report map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Weir control", report["name"])
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := run(t, "validate")
	require.ErrorIs(t, err, ErrMissingFile)

	_, err = run(t, "validate", "testdata/missing.yaml")
	require.Error(t, err)
}

func TestTriggersCommand(t *testing.T) {
	out, err := run(t, "triggers", "--group", "weir", "testdata/weir.yaml")
	require.NoError(t, err)
	assert.Equal(t, "condition\thigh water\n", out)

	_, err = run(t, "triggers", "--group", "pumps", "testdata/weir.yaml")
	require.ErrorIs(t, err, services.ErrControlGroupNotFound)
}

func TestInputsCommand(t *testing.T) {
	out, err := run(t, "inputs", "--group", "weir", "--output", "crest", "--format", "json", "testdata/weir.yaml")
	require.NoError(t, err)

	var nodes []nodeOutput

	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "lake level", nodes[0].Name)
	assert.Equal(t, "inflow", nodes[1].Name)

	_, err = run(t, "inputs", "--group", "weir", "--output", "gate", "testdata/weir.yaml")
	require.ErrorIs(t, err, services.ErrOutputNotFound)
}

func TestTemplateCommand_List(t *testing.T) {
	out, err := run(t, "template", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "standard_condition\n")
	assert.Contains(t, out, "time_condition\n")
}

func TestTemplateCommand_Schedule(t *testing.T) {
	out, err := run(t, "template",
		"--name", "night pumping",
		"--format", "json",
		"--start", "2021-03-01T00:00:00Z",
		"--stop", "2021-03-02T00:00:00Z",
		"--step", "1h",
		"--schedule", "0 22 * * *",
		"--on", "2.5",
		string(templates.KindTime),
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "template.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	model, err := document.ReadFile(path)
	require.NoError(t, err)

	group, ok := model.ControlGroup("night pumping")
	require.True(t, ok)

	rule, ok := group.Rules[0].(*models.TimeRule)
	require.True(t, ok)
	require.Equal(t, 25, rule.TimeSeries.Len())

	for _, tv := range rule.TimeSeries {
		if tv.Time.Hour() == 22 {
			assert.InDelta(t, 2.5, tv.Value, 1e-9)
		} else {
			assert.Zero(t, tv.Value, tv.Time)
		}
	}
}

func TestTemplateCommand_Errors(t *testing.T) {
	_, err := run(t, "template", "fuzzy")
	require.ErrorIs(t, err, templates.ErrUnknownKind)

	_, err = run(t, "template", "--format", "xml", "pid")
	require.ErrorIs(t, err, document.ErrUnsupportedFormat)

	_, err = run(t, "template", "--start", "yesterday", "pid")
	require.Error(t, err)
}

func TestValidateCommand_Coupling(t *testing.T) {
	out, err := run(t, "validate", "--coupling", "testdata/coupling.yaml", "testdata/coupled.yaml")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, out, "Controlled models\n")
	assert.Contains(t, out, "[error] Model 'Coupled weir' controls 2 other model(s) but is not part of a composite workflow running them simultaneously.")
	assert.Contains(t, out, "[error] Model 'Coupled weir' controls 'quality', which does not run simultaneously with it.")
	assert.NotContains(t, out, "controls 'flow'")
}
