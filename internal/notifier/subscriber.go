package notifier

import (
	"context"
	"encoding/json"

	"foxi-food/internal/common/logger"
	"foxi-food/internal/connections/rabbitmq"
)

// Subscriber drains the notifications queue and logs each event. It stands
// in for the channels (email, push) that would hang off this queue.
type Subscriber struct {
	client *rabbitmq.Client
	log    *logger.Logger
}

func New(client *rabbitmq.Client, log *logger.Logger) *Subscriber {
	return &Subscriber{client: client, log: log}
}

func (s *Subscriber) Run(ctx context.Context) error {
	deliveries, err := s.client.Consume(rabbitmq.NotificationsQueue, "notification-subscriber", 10)
	if err != nil {
		return err
	}
	s.log.Info("subscriber_started", map[string]any{"queue": rabbitmq.NotificationsQueue})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			var payload map[string]any
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				s.log.Warn("notification_discarded", map[string]any{"reason": "malformed payload"})
				_ = d.Nack(false, false)
				continue
			}
			s.log.Info("notification_received", payload)
			_ = d.Ack(false)
		}
	}
}
