package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	EventRegistrationCreated       = "registration.created"
	EventRegistrationStatusChanged = "registration.status_changed"
	EventCampMessageSent           = "camp_message.sent"
	EventSlotBookingCreated        = "slot_booking.created"
	EventSlotBookingCancelled      = "slot_booking.cancelled"
)

// Event is the envelope every domain event is published in.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

func NewEvent(eventType string, occurredAt time.Time, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
	}

	return Event{
		Type:       eventType,
		OccurredAt: occurredAt,
		Data:       raw,
	}, nil
}

// Publish wraps data in an Event and sends it keyed by key. Failures are only
// logged, a domain event never fails the request that caused it.
func Publish(ctx context.Context, client Client, topic, key, eventType string, occurredAt time.Time, data any) {
	if !client.Enabled() {
		return
	}

	event, err := NewEvent(eventType, occurredAt, data)
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to build domain event")

		return
	}

	if err = client.SendMessages(ctx, topic, Message{Key: key, Value: event}); err != nil {
		log.Error().Err(err).Str("event", eventType).Str("key", key).Msg("failed to publish domain event")
	}
}

// DecodeEventData reads an Event from msg and unmarshals its data into T.
func DecodeEventData[T any](msg kafkaGo.Message) (Event, T, error) {
	var data T

	event, err := DecodeKafkaMessage[Event](msg)
	if err != nil {
		return event, data, err
	}

	if err = json.Unmarshal(event.Data, &data); err != nil {
		return event, data, fmt.Errorf("%w: failed to unmarshal %s event data: %w", ErrMalformed, event.Type, err)
	}

	return event, data, nil
}

// HeaderCarrier adapts kafka headers to the otel TextMapCarrier interface.
type HeaderCarrier []kafkaGo.Header

func (c *HeaderCarrier) Get(key string) string {
	for _, header := range *c {
		if header.Key == key {
			return string(header.Value)
		}
	}

	return ""
}

func (c *HeaderCarrier) Set(key, value string) {
	for i, header := range *c {
		if header.Key == key {
			(*c)[i].Value = []byte(value)

			return
		}
	}

	*c = append(*c, kafkaGo.Header{Key: key, Value: []byte(value)})
}

func (c *HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(*c))
	for _, header := range *c {
		keys = append(keys, header.Key)
	}

	return keys
}
