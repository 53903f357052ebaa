package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

// CacheCalendarMessage тело события: месяц или конкретный день, день важнее
type CacheCalendarMessage struct {
	Month string `json:"month"`
	Date  string `json:"date"`
}

func (l *CalendarCacheListener) startCalendarQueue(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	queueConfig := l.cfg.RabbitMq.QueueConfig
	exchangeName := queueConfig.CalendarQueueExchange

	err := l.retry("exchange_declare", out.LogFields{"exchange": exchangeName}, func() error {
		return l.channel.ExchangeDeclare(
			exchangeName, // имя обменника
			"topic",      // тип обменника
			true,         // durable
			false,        // auto-delete
			false,        // internal
			false,        // no-wait
			nil,          // аргументы
		)
	})
	if err != nil {
		return err
	}

	var queue amqp.Queue
	err = l.retry("queue_declare", out.LogFields{"queue": queueConfig.CalendarQueueName}, func() error {
		var declareErr error
		queue, declareErr = l.channel.QueueDeclare(
			queueConfig.CalendarQueueName,
			true,  // durable
			true,  // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		return declareErr
	})
	if err != nil {
		return err
	}

	bindFields := out.LogFields{
		"queue":    queue.Name,
		"binding":  queueConfig.CalendarQueueBind,
		"exchange": exchangeName,
	}
	err = l.retry("queue_bind", bindFields, func() error {
		return l.channel.QueueBind(
			queue.Name,
			queueConfig.CalendarQueueBind,
			exchangeName,
			false, // no-wait
			nil,   // аргументы
		)
	})
	if err != nil {
		return err
	}

	consumerID := fmt.Sprintf("consumer-%s-%d", queue.Name, time.Now().UnixNano())
	var msgs <-chan amqp.Delivery
	err = l.retry("consume", out.LogFields{"queue": queue.Name, "consumerID": consumerID}, func() error {
		var consumeErr error
		msgs, consumeErr = l.channel.Consume(
			queue.Name,
			consumerID,
			false, // auto-ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,   // args
		)
		return consumeErr
	})
	if err != nil {
		return err
	}

	consumerCancel := make(chan struct{})
	l.addConsumerCancel(consumerCancel)
	l.consumerWg.Add(1)

	go func() {
		defer l.consumerWg.Done()

		for {
			select {
			case <-ctx.Done():
				l.logger.Info("rabbitmq.consumer.stopping_by_context", out.LogFields{
					"queue": queue.Name,
				})
				return
			case <-consumerCancel:
				l.logger.Info("rabbitmq.consumer.stopping_by_cancel", out.LogFields{
					"queue": queue.Name,
				})
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("rabbitmq.consumer.channel_closed", out.LogFields{
						"queue": queue.Name,
					})
					l.closeConnection(fmt.Sprintf("consumer channel closed for queue %s", queue.Name))
					return
				}

				l.logger.Debug("rabbitmq.message.received", out.LogFields{
					"queue":      queue.Name,
					"routingKey": msg.RoutingKey,
					"messageId":  msg.MessageId,
				})

				if err := l.processCalendarMessage(ctx, msg.RoutingKey, msg.Body); err != nil {
					l.logger.Error("rabbitmq.process_message.failed", out.LogFields{
						"queue":      queue.Name,
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					// Битое сообщение не вернется в очередь
					if err := msg.Nack(false, false); err != nil {
						l.logger.Error("rabbitmq.message.nack_failed", out.LogFields{
							"error": err.Error(),
						})
					}
					continue
				}

				if err := msg.Ack(false); err != nil {
					l.logger.Error("rabbitmq.message.ack_failed", out.LogFields{
						"error": err.Error(),
					})
				}
			}
		}
	}()

	return nil
}

func (l *CalendarCacheListener) processCalendarMessage(ctx context.Context, routingKey string, body []byte) error {
	routing, err := ParseCacheMessageRoutingKey(routingKey)
	if err != nil {
		return err
	}

	// Любое изменение календаря или записей означает устаревшую занятость
	invalidateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch routing.ResourceType {
	case CacheHitResourceTypeAll:
		if routing.CacheHitType != CacheHitTypeInvalidate {
			return nil
		}
		if err := l.useCase.InvalidateAllCache(invalidateCtx); err != nil {
			return err
		}
		l.logger.Info("_all_.message.invalidated", out.LogFields{
			"calendar_cache": true,
		})
		return nil
	case CacheHitResourceTypeCalendar, CacheHitResourceTypeBooking:
	default:
		l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
			"resourceType": string(routing.ResourceType),
		})
		return nil
	}

	month, err := parseMessageMonth(body)
	if err != nil {
		return err
	}

	if err := l.useCase.InvalidateMonthCache(invalidateCtx, month); err != nil {
		return err
	}

	l.logger.Info("calendar.message.invalidated", out.LogFields{
		"resourceType": string(routing.ResourceType),
		"cacheHitType": string(routing.CacheHitType),
		"month":        month.String(),
	})

	return nil
}

func parseMessageMonth(body []byte) (json_types.Month, error) {
	var msg CacheCalendarMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return json_types.Month{}, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	if msg.Date != "" {
		date, err := json_types.ParseDate(msg.Date)
		if err != nil {
			return json_types.Month{}, fmt.Errorf("invalid date in message: %w", err)
		}
		return date.Month(), nil
	}

	month, err := json_types.ParseMonth(msg.Month)
	if err != nil {
		return json_types.Month{}, fmt.Errorf("invalid month in message: %w", err)
	}
	return month, nil
}
