package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

const (
	upcomingCalendarPath = "/api/AdminCalender/GetUpcomingSlotsOnly"
	bookingsPath         = "/api/Bookings"
	servicesPath         = "/api/Services"
)

// BackendAdapter клиент REST-бэкенда записи: календарь коуча, услуги и записи
type BackendAdapter struct {
	client  *http.Client
	baseURL string
	token   string
	logger  out.LoggerPort
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	timeout := cfg.Backend.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &BackendAdapter{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.Backend.URL, "/"),
		token:   cfg.Backend.Token,
		logger:  logger,
	}
}

func (a *BackendAdapter) newRequest(ctx context.Context, method string, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	return req, nil
}

// readErrorBody короткий фрагмент тела ответа для логов
func readErrorBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// getJSON выполняет GET и разбирает ответ в target,
// сетевые ошибки и статусы кроме 200 возвращаются как domain.ErrBackendUnavailable
func (a *BackendAdapter) getJSON(ctx context.Context, event string, path string, target interface{}) error {
	req, err := a.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error(event+"_failed", out.LogFields{
			"error": err.Error(),
		})
		return fmt.Errorf("%s_failed: %w: %v", event, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error(event+"_failed", out.LogFields{
			"status": resp.StatusCode,
			"body":   readErrorBody(resp),
		})
		return fmt.Errorf("%s_failed: %w: %v", event, domain.ErrBackendUnavailable, unexpectedStatus(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		a.logger.Error(event+".decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return fmt.Errorf("%s.decode_failed: %w: %v", event, domain.ErrMalformedBackendResponse, err)
	}

	return nil
}

func unexpectedStatus(resp *http.Response) error {
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
