package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

type errorMapping struct {
	target        error
	status        int
	code          string
	message       string
	retryable     bool
	// Текст ошибки уходит клиенту только для ошибок его собственного запроса,
	// ошибки бэкенда могут содержать адреса и тела ответов
	exposeDetails bool
}

// Порядок важен: первая подходящая ошибка определяет ответ
var errorMappings = []errorMapping{
	{domain.ErrInvalidSlotDuration, http.StatusUnprocessableEntity, "invalid_calendar", "Calendar has an invalid slot duration", false, false},
	{domain.ErrMalformedCalendar, http.StatusBadGateway, "invalid_calendar", "Calendar data could not be read", false, false},
	{domain.ErrMalformedBackendResponse, http.StatusBadGateway, "invalid_backend_response", "Booking service returned an unreadable response", false, false},
	{domain.ErrCalendarUnavailable, http.StatusServiceUnavailable, "calendar_unavailable", "Unable to load calendar, please try again", true, false},
	{domain.ErrBackendUnavailable, http.StatusServiceUnavailable, "backend_unavailable", "Booking service is temporarily unavailable, please try again", true, false},
	{domain.ErrSlotNoLongerAvailable, http.StatusConflict, "slot_no_longer_available", "This slot is no longer available, please choose another one", true, false},
	{domain.ErrSlotBooked, http.StatusConflict, "slot_booked", "This slot is already booked", false, true},
	{domain.ErrDateNotAvailable, http.StatusConflict, "date_not_available", "No slots are configured for this date", false, true},
	{domain.ErrInvalidTransition, http.StatusConflict, "invalid_transition", "This action is not available at the current step", false, true},
	{domain.ErrSlotNotFound, http.StatusNotFound, "slot_not_found", "Slot not found", false, true},
	{domain.ErrPickerNotFound, http.StatusNotFound, "picker_not_found", "Picker session not found or expired", false, true},
	{domain.ErrInvalidBookingData, http.StatusBadRequest, "invalid_booking", "Please fill in all required fields", false, true},
	{domain.ErrBookingRejected, http.StatusUnprocessableEntity, "booking_rejected", "Booking was rejected", false, false},
}

func (c *SlotPickerController) writeError(ctx *gin.Context, err error) {
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.target) {
			response := gin.H{
				"error":     mapping.message,
				"code":      mapping.code,
				"retryable": mapping.retryable,
			}
			if mapping.exposeDetails {
				response["details"] = err.Error()
			} else {
				c.logger.Warn("http.request.upstream_failed", out.LogFields{
					"path":  ctx.FullPath(),
					"code":  mapping.code,
					"error": err.Error(),
				})
			}
			ctx.JSON(mapping.status, response)
			return
		}
	}

	c.logger.Error("http.request.failed", out.LogFields{
		"path":  ctx.FullPath(),
		"error": err.Error(),
	})
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"code":      "internal_error",
		"retryable": false,
	})
}
