package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"clipflow/internal/bus"
	"clipflow/internal/config"
	"clipflow/internal/coordinator"
	"clipflow/internal/logging"
	"clipflow/internal/registry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg, "clipflowd")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := registry.Open(cfg)
	if err != nil {
		logger.Error("open registry", logging.Error(err))
		return
	}

	taskBus, err := bus.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("connect task bus", logging.Error(err))
		store.Close()
		return
	}
	defer taskBus.Close()

	c, err := coordinator.New(cfg, store, taskBus, logger)
	if err != nil {
		logger.Error("create coordinator", logging.Error(err))
		store.Close()
		return
	}
	defer c.Close()

	if err := c.Start(ctx); err != nil {
		logger.Error("start coordinator", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("clipflowd shutting down")
}
