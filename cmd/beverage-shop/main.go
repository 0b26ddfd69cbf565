package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"beverage-shop/internal/app/api"
	"beverage-shop/internal/app/notify"
	"beverage-shop/internal/common/config"
	"beverage-shop/internal/common/logger"
)

func main() {
	mode := flag.String("mode", "", "api-service | notification-subscriber")
	port := flag.Int("port", 3000, "api-service: http port")
	cfgPath := flag.String("config", "", "path to config.yaml (default: auto-discover)")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := *cfgPath
	if path == "" {
		var err error
		path, err = config.FindConfig()
		if err != nil {
			lg.Error("config_not_found", err, nil)
			os.Exit(1)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_invalid", err, map[string]any{"path": path})
		os.Exit(1)
	}

	switch *mode {
	case "api-service":
		lg.Info("service_started", map[string]any{"service": "api-service", "port": *port})
		if err := api.Run(ctx, cfg, *port); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		lg.Info("service_started", map[string]any{"service": "notification-subscriber"})
		if err := notify.Run(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: api-service | notification-subscriber")
		os.Exit(2)
	}
}
