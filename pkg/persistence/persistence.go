// Package persistence provides the storage abstraction for real-time control models.
package persistence

import (
	"context"

	"github.com/dukex/rtcontrol/pkg/models"
)

type Persistence interface {
	// Models returns every stored model. Models that cannot be read are
	// skipped and reported through the returned error.
	Models(ctx context.Context) ([]*models.RealTimeControlModel, error)
	SaveModel(ctx context.Context, model *models.RealTimeControlModel) error
	ModelByID(ctx context.Context, id string) (*models.RealTimeControlModel, error)
	DeleteModel(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
