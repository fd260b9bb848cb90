package event

import (
	"context"

	"sportsassist/config"
	"sportsassist/infras/kafka"
	notificationService "sportsassist/internal/domains/notification/service"
	registrationDto "sportsassist/internal/domains/registration/model/dto"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

// Consumer reads the domain event topics and reacts to them outside the
// request path.
type Consumer struct {
	Config       *config.Config
	Client       kafka.Client
	Notification notificationService.Notification
}

func New(cfg *config.Config, client kafka.Client, notification notificationService.Notification) *Consumer {
	return &Consumer{
		Config:       cfg,
		Client:       client,
		Notification: notification,
	}
}

// Run consumes every topic until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	topics := c.Config.External.Kafka.Topics
	handlers := map[string]kafka.Handler{
		topics.Registration: c.HandleRegistration,
		topics.CampMessage:  c.HandleAudit,
		topics.SlotBooking:  c.HandleAudit,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for topic, handler := range handlers {
		group.Go(func() error {
			log.Info().Str("topic", topic).Msg("Starting consumer")

			c.Client.Consume(groupCtx, c.Config.External.Kafka.ConsumerGroup, topic, handler)

			return nil
		})
	}

	return group.Wait()
}

func (c *Consumer) HandleRegistration(ctx context.Context, msg kafkaGo.Message) error {
	event, data, err := kafka.DecodeEventData[registrationDto.Event](msg)
	if err != nil {
		return err
	}

	if event.Type != kafka.EventRegistrationStatusChanged {
		return nil
	}

	return c.Notification.RegistrationStatusChanged(ctx, data)
}

// HandleAudit records events nothing else reacts to yet.
func (c *Consumer) HandleAudit(_ context.Context, msg kafkaGo.Message) error {
	event, err := kafka.DecodeKafkaMessage[kafka.Event](msg)
	if err != nil {
		return err
	}

	log.Info().
		Str("topic", msg.Topic).
		Str("key", string(msg.Key)).
		Str("event", event.Type).
		Time("occurred_at", event.OccurredAt).
		Msg("domain event received")

	return nil
}

func (c *Consumer) Close() error {
	return c.Client.Close()
}
