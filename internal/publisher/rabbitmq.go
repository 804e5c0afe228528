package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"safetube/internal/domain"
)

const (
	RoutingKeyProgress = "progress"
	RoutingKeyWatch    = "watch"
)

type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger

	// publishes share one channel
	mu sync.Mutex
}

type Config struct {
	URL       string
	Exchange  string
	QueueName string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range []string{RoutingKeyProgress, RoutingKeyWatch} {
		if err := ch.QueueBind(q.Name, key, cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue %s: %w", key, err)
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
	)

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		logger:   logger,
	}, nil
}

type ProgressMessage struct {
	Type      string          `json:"type"`
	Progress  domain.Progress `json:"progress"`
	Timestamp time.Time       `json:"timestamp"`
}

type WatchMessage struct {
	Type      string            `json:"type"`
	ProfileID string            `json:"profile_id"`
	Event     domain.WatchEvent `json:"event"`
	Timestamp time.Time         `json:"timestamp"`
}

// PublishProgress sends a transient per-channel progress event.
func (r *RabbitMQ) PublishProgress(ctx context.Context, progress domain.Progress) error {
	msg := ProgressMessage{
		Type:      RoutingKeyProgress,
		Progress:  progress,
		Timestamp: time.Now().UTC(),
	}

	if err := r.publish(ctx, RoutingKeyProgress, msg, amqp.Transient); err != nil {
		return err
	}

	r.logger.Debug("published progress",
		"profile_id", progress.ProfileID,
		"channel_id", progress.ChannelID,
		"completed", progress.Completed,
		"total", progress.Total,
	)
	return nil
}

// PublishWatch sends a persistent watch event.
func (r *RabbitMQ) PublishWatch(ctx context.Context, profileID string, event domain.WatchEvent) error {
	msg := WatchMessage{
		Type:      RoutingKeyWatch,
		ProfileID: profileID,
		Event:     event,
		Timestamp: time.Now().UTC(),
	}

	if err := r.publish(ctx, RoutingKeyWatch, msg, amqp.Persistent); err != nil {
		return err
	}

	r.logger.Debug("published watch",
		"profile_id", profileID,
		"video_id", event.VideoID,
	)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, msg any, mode uint8) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: mode,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
