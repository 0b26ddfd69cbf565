// Package api boots the HTTP service: config, Postgres, RabbitMQ, services,
// router.
package api

import (
	"context"
	"strconv"

	"beverage-shop/internal/common/config"
	"beverage-shop/internal/common/httpx"
	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/connections/database"
	"beverage-shop/internal/connections/rabbitmq"
	"beverage-shop/internal/handlers"
	"beverage-shop/internal/notifier"
	"beverage-shop/internal/repository"
	"beverage-shop/internal/service"
	"beverage-shop/internal/validate"
)

func Run(ctx context.Context, cfg config.App, port int) error {
	lg := logger.New("api-service")

	db, err := database.Connect(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Pass,
		Database: cfg.Database.Name,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	lg.Info("db_connected", map[string]any{"host": cfg.Database.Host})

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
	lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host})

	pub, err := notifier.NewPublisher(mq)
	if err != nil {
		return err
	}

	repo := repository.NewPostgres(db)
	vcfg := validate.Config{
		Disabled:           cfg.Validation.Disabled,
		IncludeNonEditable: cfg.Validation.IncludeNonEditable,
	}
	svc := service.New(repo, pub, vcfg, lg)
	h := handlers.New(svc, repo.Users, lg)

	srv := httpx.New(":"+strconv.Itoa(port), handlers.Router(h))
	lg.Info("listening", map[string]any{"port": port})
	return srv.Run(ctx)
}
