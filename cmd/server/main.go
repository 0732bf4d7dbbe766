package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/api"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/app"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/config"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/logger"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/metrics"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/receipt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	l := logger.Init("inventory-service", cfg.IsDevelopment(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stores")
	}
	defer stores.Close()

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)

	service := order.NewService(stores.Products, stores.Orders, stores.Movements,
		order.WithOrderCreated(app.LogOrderCreated),
		order.WithPrinter(receipt.Delayed(receipt.DirSink(cfg.ReceiptDir), cfg.PrintDelay)),
		order.WithMetrics(collector),
		order.WithLogger(l),
	)

	drafts := order.NewRegistry()
	go drafts.Run(ctx, cfg.DraftSweepInterval, cfg.DraftIdleTTL)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Deps{
			Products:  stores.Products,
			Movements: stores.Movements,
			Customers: stores.Customers,
			Orders:    service,
			Drafts:    drafts,
			Metrics:   collector,
			Gatherer:  reg,
			Logger:    l,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
