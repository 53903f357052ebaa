package slot_picker_service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// pickerSessions открытые сценарии выбора слота, живут TTL с момента создания
type pickerSessions struct {
	cache *expirable.LRU[string, *Picker]
}

func newPickerSessions(size int, ttl time.Duration) *pickerSessions {
	if size <= 0 {
		size = 1
	}
	return &pickerSessions{
		cache: expirable.NewLRU[string, *Picker](size, nil, ttl),
	}
}

func (s *pickerSessions) get(id string) (*Picker, bool) {
	return s.cache.Get(id)
}

func (s *pickerSessions) store(picker *Picker) {
	s.cache.Add(picker.ID(), picker)
}

func (s *pickerSessions) remove(id string) {
	s.cache.Remove(id)
}
