package out

import (
	"context"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
)

type ServicePort interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
}
