package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Handler reacts to one decoded event. A non-nil error leaves the message
// uncommitted.
type Handler func(context.Context, Event) error

// Consumer reads entity-change events and hands them to a Handler. All
// instances join the configured group, so each event is handled once; the
// response cache they invalidate is one shared redis.
type Consumer struct {
	reader  KafkaReader
	logger  *zap.Logger
	handler Handler
}

func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
		Dialer:  kafka.DefaultDialer,
	}), logger)
}

func newConsumer(reader KafkaReader, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader:  reader,
		logger:  logger.Named("kafka_consumer"),
		handler: func(context.Context, Event) error { return nil },
	}
}

func (c *Consumer) RegisterHandler(fn Handler) {
	c.handler = fn
}

// Start consumes in the background until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					return
				}
				c.logger.Error("Failed to fetch message", zap.Error(err))
				continue
			}
			c.process(ctx, msg)
		}
	}()
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to parse event",
			zap.Error(err),
			zap.ByteString("value", msg.Value),
		)
		// Poison messages are committed so they are not redelivered forever.
		c.commit(ctx, msg, "")
		return
	}

	if err := c.handler(ctx, event); err != nil {
		c.logger.Error("Failed to handle event",
			zap.Error(err),
			zap.String("event", event.Name()),
		)
		return
	}
	c.commit(ctx, msg, event.Name())
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message, name string) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message",
			zap.Error(err),
			zap.String("event", name),
		)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
