// Package server wires routes and middleware into an http.Server and runs it.
package server

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"time"

	"bookgateway/internal/httpx"
	"bookgateway/internal/metrics"

	"go.uber.org/zap"
)

type Options struct {
	Addr               string
	Logger             *zap.Logger
	CORSAllowedOrigins []string
	EnableHSTS         bool
	MaxRequestBytes    int64
	RateLimitRPS       float64
	RateLimitBurst     int
	TrustedProxies     []netip.Prefix
}

// Server is an http.Server plus the resources its middleware owns.
type Server struct {
	HTTP    *http.Server
	limiter *httpx.RateLimitMiddleware
	logger  *zap.Logger
}

// New builds the server. register mounts the application routes; health and
// metrics routes are added here.
func New(opts Options, register func(mux *http.ServeMux)) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := http.NewServeMux()
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", metrics.Handler())
	register(router)

	middleware := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(opts.EnableHSTS),
		httpx.CORSMiddleware(opts.CORSAllowedOrigins),
	}

	var limiter *httpx.RateLimitMiddleware
	if opts.RateLimitRPS > 0 {
		limiter = httpx.NewRateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst, opts.TrustedProxies)
		middleware = append(middleware, limiter.Middleware)
	}
	if opts.MaxRequestBytes > 0 {
		middleware = append(middleware, httpx.RequestSizeLimitMiddleware(opts.MaxRequestBytes))
	}

	// Instrumentation sits directly on the mux so the matched pattern is visible to it.
	handler := httpx.Chain(metrics.InstrumentHandler(router), middleware...)

	return &Server{
		HTTP: &http.Server{
			Addr:         opts.Addr,
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		if s.limiter != nil {
			s.limiter.Close()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.HTTP.Addr))
		if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
