// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/rtcontrol/pkg/log"
	"github.com/dukex/rtcontrol/pkg/otelhelper"
	"github.com/dukex/rtcontrol/pkg/persistence"
	"github.com/dukex/rtcontrol/pkg/persistence/file"
	"github.com/dukex/rtcontrol/pkg/persistence/postgresql"
	"go.opentelemetry.io/otel/trace"
)

var ErrUnsupportedPersistence = errors.New("unsupported persistence provider")

// NewPersistence opens the store named by databaseURL. A URL without a scheme
// is a directory for file persistence; postgres:// and postgresql:// URLs
// open a PostgreSQL database.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	provider := parsePersistenceProvider(databaseURL)

	switch provider {
	case "file":
		logger.DebugContext(ctx, "Using file persistence", "path", databaseURL)

		return file.NewPersistence(databaseURL), nil
	case "postgres", "postgresql":
		logger.DebugContext(ctx, "Using PostgreSQL persistence")

		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL persistence: %w", err)
		}

		return p, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPersistence, provider)
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return provider
}

// NewTracer returns an OTLP tracer when enabled, and a no-op tracer otherwise.
func NewTracer(ctx context.Context, enabled bool, serviceName string) (trace.Tracer, otelhelper.ShutdownFunc, error) {
	if !enabled {
		return otelhelper.NoopTracer(serviceName), func(context.Context) error { return nil }, nil
	}

	tracer, shutdown, err := otelhelper.NewTracer(ctx, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	log.WithModule("tracing").InfoContext(ctx, "Tracing enabled", "service", serviceName)

	return tracer, shutdown, nil
}
