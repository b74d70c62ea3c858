package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stethcare/checkout-api/internal/platform/config"
	"github.com/stethcare/checkout-api/internal/repositories"
	"github.com/stethcare/checkout-api/internal/services"
)

// Services bundles the service-layer contracts that handlers rely upon. Concrete implementations
// are assembled via dependency injection in NewContainer.
type Services struct {
	Drafts services.DraftService
	System services.SystemService
}

// Container wires repositories and services for runtime use.
type Container struct {
	Config       config.Config
	Repositories repositories.Registry
	Services     Services
}

// NewContainer constructs the runtime dependencies. Production wiring provides a
// Firestore-backed registry, while tests can supply in-memory registries. The logger
// is optional; when nil, services fall back to silent logging.
func NewContainer(ctx context.Context, cfg config.Config, reg repositories.Registry, logger *zap.Logger) (*Container, error) {
	if reg == nil {
		return nil, errors.New("repositories registry is required")
	}

	svc, err := buildServices(ctx, reg, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:       cfg,
		Repositories: reg,
		Services:     svc,
	}, nil
}

// Close releases resources such as repository clients.
func (c *Container) Close(ctx context.Context) error {
	if c == nil || c.Repositories == nil {
		return nil
	}
	return c.Repositories.Close(ctx)
}

func buildServices(_ context.Context, reg repositories.Registry, cfg config.Config, logger *zap.Logger) (Services, error) {
	var svc Services

	draftsRepo := reg.Drafts()
	mirrorRepo := reg.PaymentMirror()
	if draftsRepo == nil || mirrorRepo == nil {
		return Services{}, errors.New("draft and payment mirror repositories are required")
	}

	draftSvc, err := services.NewDraftService(services.DraftServiceDeps{
		Repository: draftsRepo,
		Mirror:     mirrorRepo,
		Clock:      time.Now,
		Logger:     serviceLogger(logger),
	})
	if err != nil {
		return Services{}, fmt.Errorf("build draft service: %w", err)
	}
	svc.Drafts = draftSvc

	if healthRepo := reg.Health(); healthRepo != nil {
		systemSvc, err := services.NewSystemService(services.SystemServiceDeps{
			HealthRepository: healthRepo,
			Clock:            time.Now,
			Build: services.BuildInfo{
				Environment: cfg.Environment,
				StartedAt:   time.Now().UTC(),
			},
		})
		if err != nil {
			return Services{}, fmt.Errorf("build system service: %w", err)
		}
		svc.System = systemSvc
	}

	return svc, nil
}

func serviceLogger(logger *zap.Logger) func(context.Context, string, map[string]any) {
	if logger == nil {
		return nil
	}
	return func(_ context.Context, msg string, attrs map[string]any) {
		fields := make([]zap.Field, 0, len(attrs))
		for key, value := range attrs {
			fields = append(fields, zap.Any(key, value))
		}
		logger.Info(msg, fields...)
	}
}
