package kafka

import (
	"context"
	"errors"
	"time"

	"sportsassist/infras/otel"
	"sportsassist/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	otelGlobal "go.opentelemetry.io/otel"
)

const (
	retryMinBackoff = 500 * time.Millisecond
	retryMaxBackoff = 30 * time.Second
)

// ErrMalformed marks a message that can never be decoded. Handlers returning
// it get the message committed instead of retried.
var ErrMalformed = errors.New("malformed kafka message")

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

// backoff doubles its delay from low up to high.
type backoff struct {
	low, high time.Duration
	next      time.Duration
}

func (b *backoff) reset() {
	b.next = b.low
}

// wait sleeps for the current delay and reports false if ctx ended first.
func (b *backoff) wait(ctx context.Context) bool {
	delay := max(b.next, b.low)
	b.next = min(delay*2, b.high)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

type consumer struct {
	reader  messageReader
	topic   string
	handler Handler
	otel    otel.Otel
	low     time.Duration
	high    time.Duration
}

func newConsumer(reader messageReader, topic string, handler Handler, ot otel.Otel) *consumer {
	return &consumer{
		reader:  reader,
		topic:   topic,
		handler: handler,
		otel:    ot,
		low:     retryMinBackoff,
		high:    retryMaxBackoff,
	}
}

func done(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// run fetches until ctx ends. An offset is committed only once its message
// was handled or found malformed, so an unhandled message is redelivered
// after a restart.
func (c *consumer) run(ctx context.Context) {
	fetch := &backoff{low: c.low, high: c.high}

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if done(ctx, err) {
				log.Info().Str("topic", c.topic).Msg("Consumer context done.")

				return
			}

			log.Error().Err(err).Str("topic", c.topic).Msg("Failed to read message from Kafka.")

			if !fetch.wait(ctx) {
				return
			}

			continue
		}

		fetch.reset()

		if !c.handle(ctx, msg) {
			log.Warn().Str("topic", c.topic).Int64("offset", msg.Offset).Msg("Consumer stopped before the message was handled.")

			return
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", c.topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message.")
		}
	}
}

// handle retries the handler with backoff until it succeeds or reports a
// malformed message. It returns false when ctx ends first.
func (c *consumer) handle(ctx context.Context, msg kafkaGo.Message) bool {
	retry := &backoff{low: c.low, high: c.high}

	for attempt := 1; ; attempt++ {
		err := c.process(ctx, msg)
		if err == nil {
			return true
		}

		if errors.Is(err, ErrMalformed) {
			log.Error().Err(err).Str("topic", c.topic).Int64("offset", msg.Offset).Msg("Discarding malformed Kafka message.")

			return true
		}

		log.Error().Err(err).
			Str("topic", c.topic).
			Str("key", string(msg.Key)).
			Int("attempt", attempt).
			Msg("Failed to handle Kafka message, retrying.")

		if !retry.wait(ctx) {
			return false
		}
	}
}

func (c *consumer) process(ctx context.Context, msg kafkaGo.Message) (err error) {
	carrier := HeaderCarrier(msg.Headers)
	msgCtx := otelGlobal.GetTextMapPropagator().Extract(ctx, &carrier)

	msgCtx, scope := c.otel.NewScope(msgCtx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Consume."+c.topic)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return c.handler(msgCtx, msg)
}
