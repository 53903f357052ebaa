package domain

import "github.com/suchimauz/coaching-slot-picker/internal/core/json_types"

// Service услуга коуча из каталога бэкенда
type Service struct {
	ID          json_types.ID `json:"uniqueId"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Cost        float64       `json:"cost"`
}
