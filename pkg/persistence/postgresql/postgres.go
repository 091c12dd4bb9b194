// Package postgresql provides PostgreSQL persistence for real-time control models.
// Each model is stored as its JSON document in a JSONB column.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/dukex/rtcontrol/pkg/persistence/sqlbase"
	_ "github.com/lib/pq"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db        *sql.DB
	logger    *slog.Logger
	modelRepo *ModelRepository
}

// NewPersistence connects to databaseURL and brings its schema up to date.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	if err = database.PingContext(ctx); err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	if err = migrationManager.RunMigrations(ctx); err != nil {
		_ = database.Close()

		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:        database,
		logger:    logger,
		modelRepo: NewModelRepository(database, logger),
	}, nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) Models(ctx context.Context) ([]*models.RealTimeControlModel, error) {
	return p.modelRepo.GetAll(ctx)
}

func (p *Persistence) ModelByID(ctx context.Context, id string) (*models.RealTimeControlModel, error) {
	return p.modelRepo.GetByID(ctx, id)
}

func (p *Persistence) SaveModel(ctx context.Context, model *models.RealTimeControlModel) error {
	return p.modelRepo.Save(ctx, model)
}

// DeleteModel soft deletes a model by setting its deleted_at timestamp.
func (p *Persistence) DeleteModel(ctx context.Context, id string) error {
	return p.modelRepo.Delete(ctx, id)
}
