package domain

import (
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

type Slot struct {
	Date     json_types.Date `json:"date"`
	Start    json_types.Time `json:"start"`
	End      json_types.Time `json:"end"`
	IsBooked bool            `json:"booked"`
	SlotID   json_types.ID   `json:"slotId"`
}

// SlotSelection выбранный пользователем слот, передается в оформление записи
type SlotSelection struct {
	Date   json_types.Date `json:"date"`
	Start  json_types.Time `json:"start"`
	End    json_types.Time `json:"end"`
	SlotID json_types.ID   `json:"slotId"`
}

func (s Slot) Selection() SlotSelection {
	return SlotSelection{
		Date:   s.Date,
		Start:  s.Start,
		End:    s.End,
		SlotID: s.SlotID,
	}
}
