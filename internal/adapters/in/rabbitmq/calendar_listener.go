package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/in"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

// CalendarCacheListener слушает события бэкенда записи и сбрасывает кэш календаря
type CalendarCacheListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.SlotPickerUseCase
	cfg     *config.Config
	logger  out.LoggerPort

	mu              sync.Mutex
	consumerCancels []chan struct{}
	consumerWg      sync.WaitGroup
	closed          bool
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll      CacheHitResourceType = "_all_"
	CacheHitResourceTypeCalendar CacheHitResourceType = "calendar"
	CacheHitResourceTypeBooking  CacheHitResourceType = "booking"
)

const (
	CacheHitTypeStore      CacheHitType = "store"
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

const setupAttempts = 3

func NewCalendarCacheListener(useCase in.SlotPickerUseCase, cfg *config.Config, logger out.LoggerPort) (*CalendarCacheListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CalendarCacheListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CalendarCacheListener) Start(ctx context.Context) error {
	if err := l.startCalendarQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("calendar.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.CalendarQueueName,
	})
	return nil
}

func (l *CalendarCacheListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	l.mu.Lock()
	for _, cancel := range l.consumerCancels {
		close(cancel)
	}
	l.consumerCancels = nil
	l.mu.Unlock()

	l.consumerWg.Wait()
	return l.shutdown()
}

func (l *CalendarCacheListener) addConsumerCancel(cancel chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consumerCancels = append(l.consumerCancels, cancel)
}

func (l *CalendarCacheListener) closeConnection(reason string) {
	l.logger.Warn("rabbitmq.connection.closing", out.LogFields{
		"reason": reason,
	})
	if err := l.shutdown(); err != nil {
		l.logger.Error("rabbitmq.connection.close_failed", out.LogFields{
			"error": err.Error(),
		})
	}
}

func (l *CalendarCacheListener) shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.channel.Close(); err != nil && err != amqp.ErrClosed {
		l.conn.Close()
		return err
	}
	if err := l.conn.Close(); err != nil && err != amqp.ErrClosed {
		return err
	}
	return nil
}

// retry повторяет шаг настройки очереди, после последней неудачи закрывает соединение
func (l *CalendarCacheListener) retry(step string, fields out.LogFields, fn func() error) error {
	var err error
	for attempts := 0; attempts < setupAttempts; attempts++ {
		if err = fn(); err == nil {
			l.logger.Info("rabbitmq."+step+".success", fields)
			return nil
		}

		l.logger.Warn("rabbitmq."+step+".retry", mergeFields(fields, out.LogFields{
			"attempt": attempts + 1,
			"error":   err.Error(),
		}))

		if attempts < setupAttempts-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	l.closeConnection(fmt.Sprintf("failed to %s: %s", step, err.Error()))
	return fmt.Errorf("failed to %s: %w", step, err)
}

func mergeFields(base out.LogFields, extra out.LogFields) out.LogFields {
	merged := make(out.LogFields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// Пример routingKey:
// booking.slot-picker-svc.calendar.month.invalidate
// booking.slot-picker-svc.booking.day.store
// booking.slot-picker-svc._all_.any.invalidate
func ParseCacheMessageRoutingKey(routingKey string) (CacheMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[4]),
	}, nil
}
