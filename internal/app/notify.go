package app

import (
	"context"
	"errors"
	"fmt"

	"foxi-food/internal/common/logger"
	"foxi-food/internal/config"
	"foxi-food/internal/connections/rabbitmq"
	"foxi-food/internal/notifier"
)

// RunNotifier consumes the notifications queue until the context is
// cancelled.
func RunNotifier(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	mq, err := rabbitmq.Dial(cfg.RabbitMQURL())
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	defer mq.Close()
	if err := mq.DeclareTopology(); err != nil {
		return fmt.Errorf("failed to declare rabbitmq topology: %w", err)
	}

	err = notifier.New(mq, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
