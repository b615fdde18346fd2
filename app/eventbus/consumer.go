package eventbus

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
)

// ConsumerDeps bundles what every module needs to register event consumers.
type ConsumerDeps struct {
	Router     *message.Router
	Subscriber message.Subscriber
	Logger     *slog.Logger
	Tracer     trace.Tracer
}

// AddConsumer registers a typed handler for topic. Payloads that fail to decode are
// logged and acknowledged so they are not redelivered forever; handler errors nack.
func AddConsumer[T any](deps ConsumerDeps, handlerName, topic string, handle func(context.Context, *T) error) {
	deps.Router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.Subscriber,
		func(msg *message.Message) error {
			ctx, payload, err := Decode[T](msg)
			if err != nil {
				deps.Logger.ErrorContext(ctx, "Dropping undecodable message",
					attr.ExtractCorrelationID(ctx),
					attr.String("handler", handlerName),
					attr.String("message_id", msg.UUID),
					attr.Error(err),
				)
				return nil
			}

			ctx, span := deps.Tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("topic", topic),
				attribute.String("message_id", msg.UUID),
			))
			defer span.End()

			if err := handle(ctx, payload); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				deps.Logger.ErrorContext(ctx, "Handler failed",
					attr.ExtractCorrelationID(ctx),
					attr.String("handler", handlerName),
					attr.Error(err),
				)
				return err
			}
			return nil
		},
	)
}
