// Package file provides file-based persistence for real-time control models.
// Each model is stored as a JSON document under <root>/models/<id>.json.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dukex/rtcontrol/pkg/document"
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/persistence"
	"go.uber.org/multierr"
)

const modelsDir = "models"

// Persistence implements the persistence.Persistence interface using the file system.
type Persistence struct {
	root string
	mu   sync.RWMutex
}

// NewPersistence creates a new instance of Persistence with the specified root directory.
func NewPersistence(root string) persistence.Persistence {
	return &Persistence{root: strings.Replace(root, "file://", "", 1)}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the file persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) Models(_ context.Context) ([]*models.RealTimeControlModel, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	files, err := fs.Glob(os.DirFS(filepath.Join(fp.root, modelsDir)), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list model files: %w", err)
	}

	var errs error

	result := make([]*models.RealTimeControlModel, 0, len(files))
	for _, file := range files {
		model, err := fp.read(strings.TrimSuffix(file, ".json"))
		if err != nil {
			errs = multierr.Append(errs, err)

			continue
		}

		result = append(result, model)
	}

	return result, errs
}

func (fp *Persistence) ModelByID(_ context.Context, id string) (*models.RealTimeControlModel, error) {
	if err := checkID(id); err != nil {
		return nil, persistence.NewModelError("ModelByID", id, err)
	}

	fp.mu.RLock()
	defer fp.mu.RUnlock()

	model, err := fp.read(id)
	if err != nil {
		return nil, persistence.NewModelError("ModelByID", id, err)
	}

	return model, nil
}

func (fp *Persistence) SaveModel(_ context.Context, model *models.RealTimeControlModel) error {
	if err := checkID(model.ID); err != nil {
		return persistence.NewModelError("SaveModel", model.ID, err)
	}

	data, err := document.Encode(model, document.FormatJSON)
	if err != nil {
		return persistence.NewModelError("SaveModel", model.ID, err)
	}

	fp.mu.Lock()
	defer fp.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(fp.root, modelsDir), 0750); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}

	if err := os.WriteFile(fp.path(model.ID), data, 0600); err != nil {
		return persistence.NewModelError("SaveModel", model.ID, err)
	}

	return nil
}

func (fp *Persistence) DeleteModel(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return persistence.NewModelError("DeleteModel", id, err)
	}

	fp.mu.Lock()
	defer fp.mu.Unlock()

	err := os.Remove(fp.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return persistence.NewModelError("DeleteModel", id, persistence.ErrModelNotFound)
	}

	if err != nil {
		return persistence.NewModelError("DeleteModel", id, err)
	}

	return nil
}

func (fp *Persistence) path(id string) string {
	return filepath.Join(fp.root, modelsDir, id+".json")
}

// read loads a model; the caller holds the lock.
func (fp *Persistence) read(id string) (*models.RealTimeControlModel, error) {
	data, err := os.ReadFile(fp.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, persistence.ErrModelNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", id, err)
	}

	model, err := document.Decode(data, document.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", id, err)
	}

	return model, nil
}

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return persistence.ErrInvalidModelID
	}

	return nil
}
