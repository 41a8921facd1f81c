package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Events are published to a fanout exchange so every subscriber gets its own copy.
// DefaultQueue is the application's own audit queue bound to it; other consumers
// bind their own queues to DefaultExchange.
const (
	DefaultExchange = "blog.events"
	DefaultQueue    = "blog_events"
)

// ErrClosed is returned when the client has no open channel.
var ErrClosed = errors.New("rabbitmq: channel is not available")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	log      *zap.Logger

	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
	Queue    string
}

func (cfg Config) withDefaults() Config {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}
	return cfg
}

// NewClient connects to RabbitMQ, opens a channel, declares the event exchange and
// binds the audit queue to it.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	cfg = cfg.withDefaults()

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declare(ch, cfg.Exchange, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("rabbitmq client connected",
		zap.String("exchange", cfg.Exchange),
		zap.String("queue", cfg.Queue))

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
		log:      log,
	}, nil
}

func declare(ch *amqp.Channel, exchange, queue string) error {
	err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", queue, err)
	}

	if err := ch.QueueBind(queue, "", exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s to %s: %w", queue, exchange, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish marshals body to JSON and sends it to the event exchange as a persistent
// message. eventType is carried as the AMQP message type and routing key.
func (c *Client) Publish(ctx context.Context, messageID, eventType string, body interface{}) error {
	if c == nil || c.channel == nil {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.Publish(
		c.exchange,
		eventType, // routing key, ignored by fanout
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    messageID,
			Type:         eventType,
			Body:         payload,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debug("sent event", zap.String("type", eventType), zap.String("message_id", messageID))
	return nil
}

// Consume registers handler on the audit queue. Deliveries are acked when the
// handler returns nil and nacked without requeue otherwise, so a poison message
// cannot loop forever. Processing runs on its own goroutine until the channel closes.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	if c == nil || c.channel == nil {
		return ErrClosed
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info("waiting for events", zap.String("queue", c.queue))

	go func() {
		for msg := range msgs {
			Dispatch(msg, handler, c.log)
		}
		c.log.Info("event consumer stopped", zap.String("queue", c.queue))
	}()

	return nil
}

// Acknowledger is the part of amqp.Delivery that Dispatch settles.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Dispatch runs handler on msg and settles it.
func Dispatch(msg amqp.Delivery, handler func(msg amqp.Delivery) error, log *zap.Logger) {
	settle(msg, handler(msg), log)
}

func settle(ack Acknowledger, handlerErr error, log *zap.Logger) {
	if handlerErr != nil {
		log.Warn("error processing event", zap.Error(handlerErr))
		if err := ack.Nack(false, false); err != nil {
			log.Error("error nacking event", zap.Error(err))
		}
		return
	}
	if err := ack.Ack(false); err != nil {
		log.Error("error acking event", zap.Error(err))
	}
}

// LogEvents returns a handler that writes each delivered event to log. Bodies
// that are not JSON are rejected.
func LogEvents(log *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var fields map[string]interface{}
		if err := json.Unmarshal(msg.Body, &fields); err != nil {
			return fmt.Errorf("decode %s event %s: %w", msg.Type, msg.MessageId, err)
		}
		log.Info("event received",
			zap.String("type", msg.Type),
			zap.String("message_id", msg.MessageId),
			zap.Any("event", fields))
		return nil
	}
}
