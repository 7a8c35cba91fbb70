package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hr-recruitment/internal/app"
	"hr-recruitment/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	srv, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	logger := srv.Container.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("[Server] listening | addr=%s env=%s", addr, cfg.App.Environment)
		errCh <- srv.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Printf("[Server] stopped with error | err=%v", err)
		}
	case <-ctx.Done():
		logger.Printf("[Server] shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := srv.Fiber.ShutdownWithContext(sctx); err != nil {
			logger.Printf("[Server] shutdown error | err=%v", err)
		}
		cancel()
	}

	if err := cleanup(); err != nil {
		logger.Printf("[Server] cleanup error | err=%v", err)
	}
}
