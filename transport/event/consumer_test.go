package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/infras/kafka"
	kafkaMocks "sportsassist/infras/kafka/mocks"
	notificationMocks "sportsassist/internal/domains/notification/service/mocks"
	registrationDto "sportsassist/internal/domains/registration/model/dto"
	"sportsassist/shared/constant"
	"sportsassist/transport/event"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func encode(t *testing.T, eventType string, data any) kafkaGo.Message {
	t.Helper()

	envelope, err := kafka.NewEvent(eventType, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), data)
	require.NoError(t, err)

	message := kafka.Message{Key: "camp-1", Value: envelope}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)

	return msg
}

func TestConsumer_HandleRegistration(t *testing.T) {
	changed := registrationDto.Event{
		RegistrationID: "reg-1",
		CampID:         "camp-1",
		ParentID:       "parent-1",
		Status:         constant.RegistrationStatusConfirmed,
		PreviousStatus: constant.RegistrationStatusWaitlisted,
		ChangedBy:      "staff-1",
	}

	tests := []struct {
		name      string
		msg       func(t *testing.T) kafkaGo.Message
		setupMock func(notification *notificationMocks.MockNotification)
		wantErr   bool
	}{
		{
			name: "forwards status changes",
			msg: func(t *testing.T) kafkaGo.Message {
				return encode(t, kafka.EventRegistrationStatusChanged, changed)
			},
			setupMock: func(notification *notificationMocks.MockNotification) {
				notification.EXPECT().RegistrationStatusChanged(gomock.Any(), changed).Return(nil)
			},
		},
		{
			name: "ignores created events",
			msg: func(t *testing.T) kafkaGo.Message {
				return encode(t, kafka.EventRegistrationCreated, changed)
			},
			setupMock: func(_ *notificationMocks.MockNotification) {},
		},
		{
			name: "returns notification failure",
			msg: func(t *testing.T) kafkaGo.Message {
				return encode(t, kafka.EventRegistrationStatusChanged, changed)
			},
			setupMock: func(notification *notificationMocks.MockNotification) {
				notification.EXPECT().RegistrationStatusChanged(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
			},
			wantErr: true,
		},
		{
			name: "rejects malformed payload",
			msg: func(_ *testing.T) kafkaGo.Message {
				return kafkaGo.Message{Value: []byte("not json")}
			},
			setupMock: func(_ *notificationMocks.MockNotification) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notification := notificationMocks.NewMockNotification(ctrl)
			tt.setupMock(notification)

			consumer := event.New(&config.Config{}, kafkaMocks.NewMockClient(ctrl), notification)

			err := consumer.HandleRegistration(context.Background(), tt.msg(t))

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestConsumer_HandleAudit(t *testing.T) {
	ctrl := gomock.NewController(t)
	consumer := event.New(&config.Config{}, kafkaMocks.NewMockClient(ctrl), notificationMocks.NewMockNotification(ctrl))

	msg := encode(t, kafka.EventSlotBookingCreated, map[string]string{"booking_id": "booking-1"})
	assert.NoError(t, consumer.HandleAudit(context.Background(), msg))

	assert.Error(t, consumer.HandleAudit(context.Background(), kafkaGo.Message{Value: []byte("{")}))
}

func TestConsumer_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.External.Kafka.ConsumerGroup = "sportsassist-worker"
	cfg.External.Kafka.Topics.Registration = "registrations"
	cfg.External.Kafka.Topics.CampMessage = "camp-messages"
	cfg.External.Kafka.Topics.SlotBooking = "slot-bookings"

	for _, topic := range []string{"registrations", "camp-messages", "slot-bookings"} {
		client.EXPECT().Consume(gomock.Any(), "sportsassist-worker", topic, gomock.Any()).
			Do(func(ctx context.Context, _, _ string, _ kafka.Handler) {
				<-ctx.Done()
			})
	}

	consumer := event.New(cfg, client, notificationMocks.NewMockNotification(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, consumer.Run(ctx))
}
