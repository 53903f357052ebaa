package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

const redisMonthKeyPrefix = "slot-picker:calendar:month:"

// RedisCacheAdapter общий кэш месяцев для нескольких реплик сервиса
type RedisCacheAdapter struct {
	client *redis.Client
	ttl    time.Duration
	logger out.LoggerPort
}

func NewRedisCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*RedisCacheAdapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("cache.redis.connect.failed", out.LogFields{
			"error": err.Error(),
			"addr":  cfg.Redis.Addr,
		})
		client.Close()
		return nil, err
	}

	return NewRedisCacheAdapterWithClient(client, cfg.Cache.TTL, logger), nil
}

func NewRedisCacheAdapterWithClient(client *redis.Client, ttl time.Duration, logger out.LoggerPort) *RedisCacheAdapter {
	return &RedisCacheAdapter{
		client: client,
		ttl:    ttl,
		logger: logger.WithModule("RedisCacheAdapter"),
	}
}

func monthKey(month json_types.Month) string {
	return redisMonthKeyPrefix + month.String()
}

func (c *RedisCacheAdapter) GetMonth(ctx context.Context, month json_types.Month) (*domain.CalendarMonth, bool) {
	data, err := c.client.Get(ctx, monthKey(month)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache.redis.get.failed", out.LogFields{
				"month": month.String(),
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var calendar domain.CalendarMonth
	if err := json.Unmarshal(data, &calendar); err != nil {
		c.logger.Warn("cache.redis.decode.failed", out.LogFields{
			"month": month.String(),
			"error": err.Error(),
		})
		return nil, false
	}

	return &calendar, true
}

func (c *RedisCacheAdapter) StoreMonth(ctx context.Context, month json_types.Month, calendar domain.CalendarMonth) {
	data, err := json.Marshal(calendar)
	if err != nil {
		c.logger.Warn("cache.redis.encode.failed", out.LogFields{
			"month": month.String(),
			"error": err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, monthKey(month), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache.redis.store.failed", out.LogFields{
			"month": month.String(),
			"error": err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateMonth(ctx context.Context, month json_types.Month) {
	if err := c.client.Del(ctx, monthKey(month)).Err(); err != nil {
		c.logger.Warn("cache.redis.invalidate.failed", out.LogFields{
			"month": month.String(),
			"error": err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, redisMonthKeyPrefix+"*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache.redis.scan.failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache.redis.invalidate_all.failed", out.LogFields{
			"keys":  len(keys),
			"error": err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) Close() error {
	return c.client.Close()
}
