package utils

import (
	"time"

	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

// CurrentMonth месяц, в который попадает момент t в указанной таймзоне
func CurrentMonth(t time.Time, location *time.Location) json_types.Month {
	if location == nil {
		location = time.UTC
	}
	local := t.In(location)
	return json_types.NewMonth(local.Year(), local.Month())
}
