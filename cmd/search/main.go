// Command search serves the aggregated books and authors search.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookgateway/internal/backend"
	"bookgateway/internal/config"
	"bookgateway/internal/httpx"
	"bookgateway/internal/platform/logger"
	"bookgateway/internal/platform/outbound"
	"bookgateway/internal/search"
	"bookgateway/internal/server"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "search: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Require("books", "authors"); err != nil {
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
	books, err := backend.NewBooks(client, cfg.Books)
	if err != nil {
		return err
	}
	authors, err := backend.NewAuthors(client, cfg.Authors)
	if err != nil {
		return err
	}

	handler := search.NewHTTPHandler(search.NewService(books, authors, log.Named("search")))
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

	log.Info("search service configured",
		zap.String("books", cfg.Books.BaseURI),
		zap.String("authors", cfg.Authors.BaseURI),
	)
	return srv.Run(ctx)
}
