package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/pricecalc/internal/config"
	"github.com/Simplici0/pricecalc/internal/logging"
	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
)

type server struct {
	cfg    config.Config
	logger *zap.Logger
	auth   *apiKeyAuth
}

func newServer(cfg config.Config, logger *zap.Logger) *server {
	return &server{cfg: cfg, logger: logger, auth: newAPIKeyAuth(cfg.APIKeys)}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.IsDev(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}
	if _, err := money.NewFormatter(cfg.DefaultCurrency, cfg.Locale); err != nil {
		logger.Fatal("invalid currency settings", zap.Error(err))
	}

	srv := newServer(cfg, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server shut down gracefully")
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logging.RequestID)
	r.Use(logging.Requests(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.middleware)

		r.Get("/calculate/text", s.handleCalculateText)
		r.Post("/calculate/text", s.handleCalculateText)

		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/calculate", s.handleCalculate)
			r.Post("/convert", s.handleConvert)
			r.Post("/pricing/solve", s.handleSolve)
			r.Post("/promos", s.handlePromos)
			r.Post("/fees", s.handleFees)
			r.Post("/imports", s.handleImports)
			r.Post("/services", s.handleServices)
			r.Post("/inventory", s.handleInventory)
			r.Post("/subscription", s.handleSubscription)
			r.Post("/mix", s.handleMix)
			r.Post("/elasticity", s.handleElasticity)
			r.Post("/vat", s.handleVAT)
		})
	})

	return r
}

// defaults is the base scenario requests are decoded on top of.
func (s *server) defaults() pricing.Input {
	in := pricing.DefaultInput()
	if s.cfg.DefaultCurrency != "" {
		in.Currency = s.cfg.DefaultCurrency
	}
	return in
}
