package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func newModel(name string) *models.RealTimeControlModel {
	model := models.NewRealTimeControlModel(name)
	model.StartTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	model.StopTime = model.StartTime.Add(24 * time.Hour)
	model.TimeStep = 15 * time.Minute

	group := models.NewControlGroup("weir control")
	level := models.NewInput("level", "lake", "water_level")
	crest := models.NewOutput("crest", "weir", "crest_level")
	pid := models.NewPIDRule("pid")
	pid.AddInput(models.InputRef(level.ID))
	pid.AddOutput(crest.ID)

	group.AddInput(level)
	group.AddOutput(crest)
	group.AddRule(pid)
	model.AddControlGroup(group)

	return model
}

func TestNewPersistence(t *testing.T) {
	p := NewPersistence("/tmp/test")
	assert.Equal(t, "/tmp/test", p.(*Persistence).root)

	p = NewPersistence("file:///tmp/test")
	assert.Equal(t, "/tmp/test", p.(*Persistence).root)
}

func TestPersistence_Close(t *testing.T) {
	assert.NoError(t, NewPersistence("./test-data").Close(t.Context()))
}

func TestPersistence_HealthCheck(t *testing.T) {
	assert.NoError(t, NewPersistence(t.TempDir()).HealthCheck(t.Context()))
	assert.ErrorIs(t, NewPersistence(filepath.Join(t.TempDir(), "missing")).HealthCheck(t.Context()), os.ErrNotExist)
}

func TestPersistence_SaveAndLoad(t *testing.T) {
	testDir := t.TempDir()
	p := NewPersistence(testDir)
	model := newModel("lake")

	require.NoError(t, p.SaveModel(t.Context(), model))

	info, err := os.Stat(filepath.Join(testDir, "models", model.ID+".json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := p.ModelByID(t.Context(), model.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Name, loaded.Name)
	assert.Equal(t, model.TimeStep, loaded.TimeStep)
	require.Len(t, loaded.ControlGroups, 1)

	group := loaded.ControlGroups[0]
	assert.Equal(t, model.ControlGroups[0].ID, group.ID)
	assert.Equal(t, model.ControlGroups[0].Rules[0].Base().Inputs, group.Rules[0].Base().Inputs)

	model.Name = "renamed"
	require.NoError(t, p.SaveModel(t.Context(), model))

	loaded, err = p.ModelByID(t.Context(), model.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", loaded.Name)
}

func TestPersistence_Models(t *testing.T) {
	testDir := t.TempDir()
	p := NewPersistence(testDir)

	all, err := p.Models(t.Context())
	require.NoError(t, err)
	assert.Empty(t, all)

	first, second := newModel("first"), newModel("second")
	require.NoError(t, p.SaveModel(t.Context(), first))
	require.NoError(t, p.SaveModel(t.Context(), second))

	all, err = p.Models(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, os.WriteFile(filepath.Join(testDir, "models", "broken.json"), []byte(`{"name":`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "models", "empty.json"), []byte(`{}`), 0600))

	all, err = p.Models(t.Context())
	require.Error(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestPersistence_NotFound(t *testing.T) {
	p := NewPersistence(t.TempDir())

	_, err := p.ModelByID(t.Context(), "missing")
	require.Error(t, err)
	assert.True(t, persistence.IsModelNotFound(err))

	err = p.DeleteModel(t.Context(), "missing")
	assert.True(t, persistence.IsModelNotFound(err))
}

func TestPersistence_Delete(t *testing.T) {
	p := NewPersistence(t.TempDir())
	model := newModel("lake")
	require.NoError(t, p.SaveModel(t.Context(), model))

	require.NoError(t, p.DeleteModel(t.Context(), model.ID))

	_, err := p.ModelByID(t.Context(), model.ID)
	assert.True(t, persistence.IsModelNotFound(err))
}

func TestPersistence_InvalidID(t *testing.T) {
	p := NewPersistence(t.TempDir())

	for _, id := range []string{"", "..", "../escape", `a\b`} {
		t.Run(id, func(t *testing.T) {
			_, err := p.ModelByID(t.Context(), id)
			assert.True(t, persistence.IsInvalidModelID(err))

			model := newModel("bad")
			model.ID = id
			assert.True(t, persistence.IsInvalidModelID(p.SaveModel(t.Context(), model)))
			assert.True(t, persistence.IsInvalidModelID(p.DeleteModel(t.Context(), id)))
		})
	}
}
