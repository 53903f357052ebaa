package out

import (
	"context"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
)

type CalendarPort interface {
	// Календарь ближайших месяцев с окнами доступности и записями
	GetUpcomingCalendar(ctx context.Context) ([]domain.CalendarYear, error)
}
