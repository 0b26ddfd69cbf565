// Package notify boots the SMS notification subscriber.
package notify

import (
	"context"

	"beverage-shop/internal/common/config"
	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/connections/rabbitmq"
	"beverage-shop/internal/notifier"
)

func Run(ctx context.Context, cfg config.App) error {
	lg := logger.New("notification-subscriber")

	mq, err := rabbitmq.Dial(rabbitmq.Config{
		Host:     cfg.Rabbit.Host,
		Port:     cfg.Rabbit.Port,
		User:     cfg.Rabbit.User,
		Password: cfg.Rabbit.Pass,
	})
	if err != nil {
		return err
	}
	defer mq.Close()
	lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host, "sender_id": cfg.SMS.SenderID})

	sub := notifier.NewSubscriber(mq, &notifier.LogSender{Log: lg}, lg)
	return sub.Run(ctx)
}
