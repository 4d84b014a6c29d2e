// Package eventbus publishes domain events through Watermill, either over an
// in-process channel or over NATS.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	nc "github.com/nats-io/nats.go"
)

const correlationMetadataKey = "correlation_id"

// Publisher is what the application services depend on.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// EventBus publishes JSON payloads as Watermill messages.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// New picks NATS when natsURL is set and an in-process channel otherwise.
func New(natsURL string, logger *slog.Logger) (*EventBus, error) {
	if natsURL == "" {
		return NewInProcess(logger), nil
	}
	return NewNATS(natsURL, logger)
}

// NewInProcess creates an EventBus backed by a Go channel. Publish blocks
// until subscribers ack, so events are handled before the caller moves on.
func NewInProcess(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            64,
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NewSlogLogger(logger))

	return &EventBus{
		publisher:  pubSub,
		subscriber: pubSub,
		logger:     logger,
	}
}

// NewNATS creates an EventBus publishing to core NATS subjects.
func NewNATS(natsURL string, logger *slog.Logger) (*EventBus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:       natsURL,
		Marshaler: marshaler,
		NatsOptions: []nc.Option{
			nc.RetryOnFailedConnect(true),
		},
		JetStream: wmnats.JetStreamConfig{Disabled: true},
	}, watermillLogger)
	if err != nil {
		logger.Error("Failed to create Watermill publisher", attr.Error(err))
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:         natsURL,
		Unmarshaler: marshaler,
		NatsOptions: []nc.Option{
			nc.RetryOnFailedConnect(true),
		},
		JetStream: wmnats.JetStreamConfig{Disabled: true},
	}, watermillLogger)
	if err != nil {
		publisher.Close()
		logger.Error("Failed to create Watermill subscriber", attr.Error(err))
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &EventBus{
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
	}, nil
}

// Publish marshals payload and publishes it on topic, tagging the message
// with the context's correlation id.
func (b *EventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if id := attr.CorrelationID(ctx); id != "" {
		msg.Metadata.Set(correlationMetadataKey, id)
	}

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the message channel for topic.
func (b *EventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// LogEvents logs and acks every message on the given topics until ctx is done.
func (b *EventBus) LogEvents(ctx context.Context, topics ...string) error {
	for _, topic := range topics {
		messages, err := b.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				b.logger.InfoContext(ctx, "Domain event",
					attr.String("topic", topic),
					attr.String("message_id", msg.UUID),
					attr.String(correlationMetadataKey, msg.Metadata.Get(correlationMetadataKey)),
					attr.String("payload", string(msg.Payload)),
				)
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}

// Close shuts down the publisher and subscriber.
func (b *EventBus) Close() error {
	pubErr := b.publisher.Close()
	var subErr error
	if b.subscriber != nil && any(b.subscriber) != any(b.publisher) {
		subErr = b.subscriber.Close()
	}
	if pubErr != nil {
		return fmt.Errorf("failed to close publisher: %w", pubErr)
	}
	if subErr != nil {
		return fmt.Errorf("failed to close subscriber: %w", subErr)
	}
	return nil
}
