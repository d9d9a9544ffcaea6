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

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/sequence"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/vendorwait"
)

type publisher interface {
	checkout.Notifier
	vendorwait.Notifier
	Close() error
}

func main() {
	logger, err := logging.New("booking-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Upstream order service
	sharedHTTP := &http.Client{Timeout: cfg.UpstreamTimeout}
	orderBase := clients.NewClient("order-service", cfg.OrderAPIURL, cfg.OrderAPIToken, sharedHTTP)

	m := metrics.New()
	gw := order.NewHTTPGateway(
		clients.NewOrderClient(orderBase),
		clients.NewLeadsClient(orderBase),
		clients.NewVendorClient(orderBase),
		logger, m,
	)

	// --- event sequence ---
	var seq events.Sequencer = sequence.NewMemory()
	if cfg.DatabaseDSN != "" {
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				logger.Fatal("db migrate", zap.Error(err))
			}
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		seq = sequence.NewPostgres(pool)
	} else {
		logger.Info("DATABASE_DSN not set, event sequences kept in memory")
	}

	// --- AMQP ---
	var pub publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatal("connect to RabbitMQ", zap.Error(err))
		}
		defer conn.Close()

		p, err := events.NewPublisher(conn, seq, events.PublisherOptions{Logger: logger})
		if err != nil {
			logger.Fatal("start publisher", zap.Error(err))
		}
		pub = p
	} else {
		logger.Info("RABBITMQ_URL not set, lifecycle events disabled")
	}
	defer func() { _ = pub.Close() }()

	// Vendor waits outlive requests but not the process.
	waitCtx, cancelWaits := context.WithCancel(context.Background())
	defer cancelWaits()
	waits := vendorwait.NewRegistry(waitCtx, vendorwait.Deps{
		Source: gw,
		Config: vendorwait.Config{
			Interval:       cfg.PollInterval,
			Timeout:        cfg.WaitTimeout,
			AcceptedStatus: order.Status(cfg.AcceptedStatus),
		},
		Notifier: pub,
		Logger:   logger,
		Metrics:  m,
	})

	coord := checkout.NewCoordinator(checkout.Deps{
		Gateway:             gw,
		Handoff:             waits,
		Notifier:            pub,
		Logger:              logger,
		Metrics:             m,
		RepeatUpdateOnRetry: cfg.RepeatUpdateOnRetry,
	})

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:       logger,
		Cfg:          cfg,
		Metrics:      m,
		Gateway:      gw,
		Carts:        cart.NewStore(gw, logger, m),
		Checkout:     coord,
		Waits:        waits,
		HealthProbes: []clients.HealthProbe{{Name: "order-service", Client: orderBase, Path: ""}},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := waits.Shutdown(shutdownCtx); err != nil {
		logger.Warn("vendor wait shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
