package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yashkaddu/paygate"
	"github.com/yashkaddu/paygate/api"
	"github.com/yashkaddu/paygate/config"
	"github.com/yashkaddu/paygate/logger"
	"github.com/yashkaddu/paygate/metrics"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.NewZapLogger(cfg.LogLevel)

	gate, err := paygate.New(cfg,
		paygate.WithLogger(lg),
		paygate.WithMetrics(metrics.NewPrometheusRecorder()),
	)
	if err != nil {
		log.Fatalf("paygate: %v", err)
	}

	server := api.NewServer(gate, cfg, lg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.ListenAddr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	case sig := <-stop:
		lg.Info("shutting down", map[string]any{"signal": sig.String()})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			lg.Error("shutdown failed", map[string]any{"error": err.Error()})
		}
	}
}
