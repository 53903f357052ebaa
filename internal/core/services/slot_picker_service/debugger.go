package slot_picker_service

import (
	"sync"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
)

// SlotPickerServiceDebug замеры стадий одного запроса, отдаются при ?debug=true
type SlotPickerServiceDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func (d *SlotPickerServiceDebug) AddDebugInfo(info domain.DebugInfo) {
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}
