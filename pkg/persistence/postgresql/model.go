package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/rtcontrol/pkg/document"
	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/persistence"
	"go.uber.org/multierr"
)

// ModelRepository handles model-related database operations.
type ModelRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewModelRepository creates a new model repository.
func NewModelRepository(db *sql.DB, logger *slog.Logger) *ModelRepository {
	return &ModelRepository{db: db, logger: logger}
}

// GetAll returns every model that is not deleted, oldest first. Rows whose
// document no longer decodes are skipped and reported in the returned error.
func (r *ModelRepository) GetAll(ctx context.Context) ([]*models.RealTimeControlModel, error) {
	query := `
		SELECT
			id
		  , document
		FROM rtc_models
		WHERE deleted_at IS NULL
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}

	defer func(ctx context.Context, r *ModelRepository) {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}(ctx, r)

	var errs error

	result := make([]*models.RealTimeControlModel, 0)

	for rows.Next() {
		var (
			id   string
			data []byte
		)

		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}

		model, err := decode(id, data)
		if err != nil {
			errs = multierr.Append(errs, err)

			continue
		}

		result = append(result, model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating models: %w", err)
	}

	return result, errs
}

func (r *ModelRepository) GetByID(ctx context.Context, id string) (*models.RealTimeControlModel, error) {
	if id == "" {
		return nil, persistence.NewModelError("ModelByID", id, persistence.ErrInvalidModelID)
	}

	query := `SELECT document FROM rtc_models WHERE id = $1 AND deleted_at IS NULL`

	var data []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewModelError("ModelByID", id, persistence.ErrModelNotFound)
	}

	if err != nil {
		return nil, persistence.NewModelError("ModelByID", id, fmt.Errorf("failed to scan model: %w", err))
	}

	model, err := decode(id, data)
	if err != nil {
		return nil, persistence.NewModelError("ModelByID", id, err)
	}

	return model, nil
}

// Save inserts the model or replaces the stored document. Saving a deleted
// model restores it.
func (r *ModelRepository) Save(ctx context.Context, model *models.RealTimeControlModel) error {
	if model.ID == "" {
		return persistence.NewModelError("SaveModel", model.ID, persistence.ErrInvalidModelID)
	}

	data, err := document.Encode(model, document.FormatJSON)
	if err != nil {
		return persistence.NewModelError("SaveModel", model.ID, err)
	}

	now := time.Now().UTC()

	// lib/pq sends []byte as bytea, so the JSONB column gets a string.
	query := `
		INSERT INTO rtc_models (id, name, document, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $4, NULL)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name
		  , document = EXCLUDED.document
		  , updated_at = EXCLUDED.updated_at
		  , deleted_at = NULL
	`

	if _, err := r.db.ExecContext(ctx, query, model.ID, model.Name, string(data), now); err != nil {
		return persistence.NewModelError("SaveModel", model.ID, fmt.Errorf("failed to save model: %w", err))
	}

	return nil
}

// Delete soft deletes a model. Deleting a missing or already deleted model
// reports ErrModelNotFound.
func (r *ModelRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return persistence.NewModelError("DeleteModel", id, persistence.ErrInvalidModelID)
	}

	query := `UPDATE rtc_models SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return persistence.NewModelError("DeleteModel", id, fmt.Errorf("failed to delete model: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.NewModelError("DeleteModel", id, persistence.ErrModelNotFound)
	}

	return nil
}

func decode(id string, data []byte) (*models.RealTimeControlModel, error) {
	model, err := document.Decode(data, document.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", id, err)
	}

	return model, nil
}
