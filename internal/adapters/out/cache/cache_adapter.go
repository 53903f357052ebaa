package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

type monthCacheEntry struct {
	Calendar  domain.CalendarMonth
	Timestamp time.Time
}

// CacheAdapter LRU месяцев календаря, запись живет не дольше TTL
type CacheAdapter struct {
	cache  *lru.Cache[string, *monthCacheEntry]
	ttl    time.Duration
	mu     sync.RWMutex
	logger out.LoggerPort
	now    func() time.Time
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	lruMonthsCache, err := lru.New[string, *monthCacheEntry](cfg.Cache.MonthsSize)
	if err != nil {
		logger.Error("cache.months.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.MonthsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  lruMonthsCache,
		ttl:    cfg.Cache.TTL,
		logger: logger.WithModule("CacheAdapter"),
		now:    time.Now,
	}, nil
}

func (c *CacheAdapter) expired(entry *monthCacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(entry.Timestamp) > c.ttl
}

func (c *CacheAdapter) GetMonth(ctx context.Context, month json_types.Month) (*domain.CalendarMonth, bool) {
	c.mu.RLock()
	entry, exists := c.cache.Get(month.String())
	c.mu.RUnlock()

	if !exists {
		c.logger.Debug("cache.months.get.miss", out.LogFields{
			"month": month.String(),
		})
		return nil, false
	}

	if c.expired(entry) {
		c.logger.Debug("cache.months.get.expired", out.LogFields{
			"month":    month.String(),
			"storedAt": entry.Timestamp,
		})
		c.InvalidateMonth(ctx, month)
		return nil, false
	}

	// Отдаем копию, чтобы вызывающий код не мог изменить закэшированные дни
	calendar := entry.Calendar
	calendar.Days = append([]domain.DayCalendar(nil), entry.Calendar.Days...)

	return &calendar, true
}

func (c *CacheAdapter) StoreMonth(ctx context.Context, month json_types.Month, calendar domain.CalendarMonth) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.months.store", out.LogFields{
		"month": month.String(),
		"days":  len(calendar.Days),
	})

	c.cache.Add(month.String(), &monthCacheEntry{
		Calendar:  calendar,
		Timestamp: c.now(),
	})
}

func (c *CacheAdapter) InvalidateMonth(ctx context.Context, month json_types.Month) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(month.String())
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}
