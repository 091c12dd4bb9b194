package persistence_test

import (
	"errors"
	"testing"

	"github.com/dukex/rtcontrol/pkg/persistence"
	"github.com/stretchr/testify/assert"
)

func TestModelErrors(t *testing.T) {
	t.Parallel()

	t.Run("error checking functions work correctly", func(t *testing.T) {
		notFound := persistence.NewModelError("ModelByID", "model-123", persistence.ErrModelNotFound)
		invalid := persistence.NewModelError("SaveModel", "../etc", persistence.ErrInvalidModelID)

		assert.True(t, persistence.IsModelNotFound(notFound))
		assert.False(t, persistence.IsModelNotFound(invalid))
		assert.True(t, persistence.IsInvalidModelID(invalid))
		assert.True(t, errors.Is(notFound, persistence.ErrModelNotFound))
		assert.False(t, persistence.IsModelNotFound(errors.New("model not found")))
	})

	t.Run("model error contains context", func(t *testing.T) {
		err := persistence.NewModelError("DeleteModel", "model-123", persistence.ErrModelNotFound)

		assert.Contains(t, err.Error(), "DeleteModel")
		assert.Contains(t, err.Error(), "model-123")
		assert.Contains(t, err.Error(), "model not found")
	})
}
