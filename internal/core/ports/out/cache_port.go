package out

import (
	"context"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

type CachePort interface {
	// Кэширование календаря по месяцам
	GetMonth(ctx context.Context, month json_types.Month) (*domain.CalendarMonth, bool)
	StoreMonth(ctx context.Context, month json_types.Month, calendar domain.CalendarMonth)
	InvalidateMonth(ctx context.Context, month json_types.Month)
	InvalidateAll(ctx context.Context)
}
