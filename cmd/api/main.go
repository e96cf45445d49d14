package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/coupon"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	"storefront/internal/messaging"
	"storefront/internal/messaging/kafka"
	"storefront/internal/payments"
	"storefront/internal/pricing"
	"storefront/internal/repository/cartstate"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
	anonymoussvc "storefront/internal/service/anonymous"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	checkoutsvc "storefront/internal/service/checkout"
	productsvc "storefront/internal/service/product"
)

const devSecret = "storefront-dev-secret"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatalw("api stopped", "error", err)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		defer pool.Close()
	}

	storage, closeStorage, err := openStorage(cfg, pool, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	var (
		products   productsvc.Source
		categories *categorysvc.Service
	)
	switch cfg.CatalogSource {
	case config.CatalogPostgres:
		products = productrepo.NewPostgres(pool, logger)
		categories = categorysvc.New(categoryrepo.NewPostgres(pool))
	default:
		static := catalog.NewStatic()
		products = static
		categories = categorysvc.New(static.CategoryList())
	}

	publisher, closePublisher := openPublisher(cfg, logger)
	defer closePublisher()

	gateways := payments.NewManager()
	simulated := payments.NewSimulated(cfg.PaymentDelay)
	gateways.RegisterGateway("card", simulated)
	gateways.RegisterGateway("paypal", simulated)

	secret := cfg.SessionSecret
	if secret == "" {
		logger.Warnw("SESSION_SECRET not set, using development secret")
		secret = devSecret
	}

	calc := pricing.New(cfg.Pricing)
	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		ProductSvc:  productsvc.New(products),
		CategorySvc: categories,
		CartSvc:     cartsvc.New(storage, coupon.Default(), calc, logger),
		CheckoutSvc: checkoutsvc.New(gateways, publisher, checkoutsvc.NewOrderNumberGenerator(secret), checkoutsvc.Config{
			Currency:   cfg.Currency,
			OrderTopic: cfg.OrderTopic,
		}, logger),
		AnonymousSvc: anonymoussvc.New(secret, cfg.SessionTTL),
		Storage:      storage,
		CORSOrigins:  cfg.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infow("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Infow("server stopped")
		return nil
	})
	return g.Wait()
}

func openStorage(cfg config.Config, pool *pgxpool.Pool, logger *zap.SugaredLogger) (cartstate.Repository, func(), error) {
	noop := func() {}
	logger.Infow("cart storage", "driver", cfg.StorageDriver)
	switch cfg.StorageDriver {
	case config.StorageFile:
		repo, err := cartstate.NewFile(cfg.StorageDir, logger)
		if err != nil {
			return nil, noop, fmt.Errorf("open cart storage dir: %w", err)
		}
		return repo, noop, nil
	case config.StoragePostgres:
		return cartstate.NewPostgres(pool, logger), noop, nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warnw("close redis client", "error", err)
			}
		}
		return cartstate.NewRedis(client, cfg.CartTTL, logger), closeFn, nil
	default:
		return cartstate.NewMemory(), noop, nil
	}
}

func openPublisher(cfg config.Config, logger *zap.SugaredLogger) (messaging.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Infow("order events go to the log, KAFKA_BROKERS not set")
		return messaging.NewLogPublisher(logger), func() {}
	}
	broker := kafka.NewKafkaPublisher(cfg.KafkaBrokers)
	logger.Infow("order events go to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.OrderTopic)
	return broker, func() {
		if err := broker.Close(); err != nil {
			logger.Warnw("close kafka writer", "error", err)
		}
	}
}
