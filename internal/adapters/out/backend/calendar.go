package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

func (a *BackendAdapter) GetUpcomingCalendar(ctx context.Context) ([]domain.CalendarYear, error) {
	a.logger.Info("backend.calendar.fetch", out.LogFields{})

	req, err := a.newRequest(ctx, http.MethodGet, upcomingCalendarPath, nil)
	if err != nil {
		a.logger.Error("backend.calendar.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.calendar.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("backend.calendar.fetch_failed: %w: %v", domain.ErrCalendarUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("backend.calendar.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
			"body":   readErrorBody(resp),
		})
		return nil, fmt.Errorf("backend.calendar.fetch_failed: %w: %v", domain.ErrCalendarUnavailable, unexpectedStatus(resp))
	}

	var years []domain.CalendarYear
	if err := json.NewDecoder(resp.Body).Decode(&years); err != nil {
		a.logger.Error("backend.calendar.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("backend.calendar.decode_failed: %w: %v", domain.ErrMalformedCalendar, err)
	}

	days := 0
	for _, year := range years {
		for _, month := range year.Months {
			days += len(month.Days)
		}
	}

	a.logger.Debug("backend.calendar.fetch_success", out.LogFields{
		"years": len(years),
		"days":  days,
	})

	return years, nil
}
