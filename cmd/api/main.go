package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tripbazaar/travel-backend/api/routes"
	internalbooking "github.com/tripbazaar/travel-backend/internal/booking"
	"github.com/tripbazaar/travel-backend/internal/documents"
	"github.com/tripbazaar/travel-backend/internal/hotels"
	"github.com/tripbazaar/travel-backend/internal/notify"
	"github.com/tripbazaar/travel-backend/internal/pricing"
	internalsearch "github.com/tripbazaar/travel-backend/internal/search"
	"github.com/tripbazaar/travel-backend/internal/supplier"
	internaltxns "github.com/tripbazaar/travel-backend/internal/transactions"
	"github.com/tripbazaar/travel-backend/internal/users"
	"github.com/tripbazaar/travel-backend/pkg/cache"
	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/db"
	"github.com/tripbazaar/travel-backend/pkg/db/models"
	"github.com/tripbazaar/travel-backend/pkg/logger"
	"github.com/tripbazaar/travel-backend/pkg/metrics"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.DB.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(
			&models.User{},
			&models.Hotel{},
			&models.MetaSearch{},
			&models.BookingPolicy{},
			&models.Transaction{},
			&models.MarkupRule{},
			&models.AppConfig{},
		); err != nil {
			logg.Error(context.Background(), "failed to run migrations", err)
			os.Exit(1)
		}
	}

	cacheClient, err := cache.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := cacheClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	supplierMetrics := metrics.NewSupplierMetrics(registry)
	cacheMetrics := metrics.NewCacheMetrics(registry)

	gateway := supplier.NewClient(cfg.Supplier, supplierMetrics, logg)

	dispatcher := notify.NewDispatcher(cfg.SMS, notify.NewHTTPSender(cfg.SMS), logg)
	dispatcher.Start(context.Background())
	defer dispatcher.Close()

	hotelsRepo := hotels.NewRepository(dbClient.DB())
	markup := pricing.NewApplier(pricing.NewRuleRepository(dbClient.DB()))

	searchService, err := internalsearch.NewService(
		gateway,
		cacheClient,
		hotelsRepo,
		markup,
		cfg.Supplier,
		cfg.Cache,
		cacheMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create search service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.NewRepository(dbClient.DB()), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	txnsRepo := internaltxns.NewRepository(dbClient.DB())

	bookingService, err := internalbooking.NewService(
		internalbooking.NewRepository(dbClient.DB()),
		hotelsRepo,
		txnsRepo,
		usersService,
		gateway,
		markup,
		dispatcher,
		cfg.Booking,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	transactionsService, err := internaltxns.NewService(txnsRepo, documents.NewGenerator(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create transactions service", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			cacheClient,
			registry,
			searchService,
			bookingService,
			transactionsService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		graceCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(graceCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
