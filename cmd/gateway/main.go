// Command gateway is the public entry point. It forwards searches to the search service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookgateway/internal/backend"
	"bookgateway/internal/config"
	"bookgateway/internal/gateway"
	"bookgateway/internal/httpx"
	"bookgateway/internal/platform/logger"
	"bookgateway/internal/platform/outbound"
	"bookgateway/internal/server"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Require("search"); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client := outbound.NewClient(
		outbound.WithLogger(log.Named("outbound")),
		outbound.WithRateLimit(cfg.OutboundRPS),
		outbound.WithRequestID(httpx.RequestIDFromContext),
	)
	searchBackend, err := backend.NewSearch(client, cfg.Search)
	if err != nil {
		return err
	}

	handler := gateway.NewHTTPHandler(searchBackend, log.Named("gateway"))
	srv := server.New(server.Options{
		Addr:               cfg.Addr,
		Logger:             log,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		EnableHSTS:         cfg.EnableHSTS,
		MaxRequestBytes:    cfg.MaxRequestBytes,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		TrustedProxies:     cfg.TrustedProxies,
	}, handler.Register)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("gateway configured", zap.String("search", cfg.Search.BaseURI))
	return srv.Run(ctx)
}
