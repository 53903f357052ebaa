package backend

import (
	"context"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

func (a *BackendAdapter) ListServices(ctx context.Context) ([]domain.Service, error) {
	a.logger.Info("backend.services.fetch", out.LogFields{})

	var services []domain.Service
	if err := a.getJSON(ctx, "backend.services.fetch", servicesPath, &services); err != nil {
		return nil, err
	}

	a.logger.Debug("backend.services.fetch_success", out.LogFields{
		"services": len(services),
	})

	return services, nil
}
