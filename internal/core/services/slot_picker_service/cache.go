package slot_picker_service

import (
	"context"

	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

// Инвалидация кэша календаря

func (s *SlotPickerService) InvalidateMonthCache(ctx context.Context, month json_types.Month) error {
	if !s.cacheEnabled() {
		return nil
	}

	s.cachePort.InvalidateMonth(ctx, month)

	s.logger.Debug("calendar.month.cache.invalidated", out.LogFields{
		"month": month.String(),
	})

	return nil
}

func (s *SlotPickerService) InvalidateAllCache(ctx context.Context) error {
	if !s.cacheEnabled() {
		return nil
	}

	s.cachePort.InvalidateAll(ctx)

	s.logger.Debug("calendar.cache.invalidated", out.LogFields{})

	return nil
}
