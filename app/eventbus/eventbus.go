// Package eventbus carries round events between modules over watermill.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"

	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/config"
)

// EventBus publishes and subscribes to round events.
type EventBus interface {
	message.Publisher
	message.Subscriber

	// PublishEvent marshals payload as JSON and publishes it on topic.
	PublishEvent(ctx context.Context, topic string, payload any) error
}

// eventBus implements EventBus over a watermill publisher and subscriber.
type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// NewEventBus creates the configured pub/sub. The gochannel backend keeps events in
// process; the nats backend fans events out to every replica.
func NewEventBus(cfg config.EventsConfig, logger *slog.Logger) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	switch cfg.Backend {
	case "", config.EventsGoChannel:
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		return &eventBus{publisher: ch, subscriber: ch, logger: logger}, nil

	case config.EventsNATS:
		marshaler := &nats.NATSMarshaler{}
		options := []nc.Option{nc.RetryOnFailedConnect(true), nc.Name("golf-stableford")}

		publisher, err := nats.NewPublisher(nats.PublisherConfig{
			URL:         cfg.NATSURL,
			Marshaler:   marshaler,
			NatsOptions: options,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		}, wmLogger)
		if err != nil {
			logger.Error("Failed to create Watermill publisher", attr.Error(err))
			return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
		}

		subscriber, err := nats.NewSubscriber(nats.SubscriberConfig{
			URL:         cfg.NATSURL,
			Unmarshaler: marshaler,
			NatsOptions: options,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		}, wmLogger)
		if err != nil {
			publisher.Close()
			logger.Error("Failed to create Watermill subscriber", attr.Error(err))
			return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
		}
		return &eventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil

	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	return eb.publisher.Publish(topic, messages...)
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return eb.subscriber.Subscribe(ctx, topic)
}

func (eb *eventBus) PublishEvent(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if id := attr.CorrelationID(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}

	if err := eb.publisher.Publish(topic, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish message",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	eb.logger.DebugContext(ctx, "Message published",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

// Close closes the publisher and, when distinct, the subscriber.
func (eb *eventBus) Close() error {
	var firstErr error
	if err := eb.publisher.Close(); err != nil {
		eb.logger.Error("Error closing publisher", attr.Error(err))
		firstErr = err
	}
	if s, ok := eb.subscriber.(message.Publisher); !ok || s != eb.publisher {
		if err := eb.subscriber.Close(); err != nil {
			eb.logger.Error("Error closing subscriber", attr.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NewRouter creates the watermill router shared by all modules, with correlation id
// propagation and panic recovery.
func NewRouter(logger *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)
	return router, nil
}

// Decode unmarshals a message payload and returns a context carrying its correlation id.
func Decode[T any](msg *message.Message) (context.Context, *T, error) {
	ctx := msg.Context()
	if id := middleware.MessageCorrelationID(msg); id != "" {
		ctx = attr.WithCorrelationID(ctx, id)
	}
	payload := new(T)
	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return ctx, nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return ctx, payload, nil
}
