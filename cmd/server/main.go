package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/cache"
	"kebab-sayank-be/internal/cart"
	"kebab-sayank-be/internal/category"
	"kebab-sayank-be/internal/config"
	"kebab-sayank-be/internal/dashboard"
	"kebab-sayank-be/internal/db"
	"kebab-sayank-be/internal/events"
	"kebab-sayank-be/internal/graph"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/metrics"
	"kebab-sayank-be/internal/middleware"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/product"
	"kebab-sayank-be/internal/receipt"
	"kebab-sayank-be/internal/transport"
	"kebab-sayank-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	publisherBuffer   = 256
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

var (
	loadConfigFunc  = config.LoadConfig
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := loadConfigFunc()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	rdb := cache.NewClient(cfg.RedisAddr)
	if rdb != nil {
		defer rdb.Close()
	}

	pub := newPublisher(cfg)
	defer pub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	router, err := newServer(cfg, database, rdb, pub, limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.L().Info("KAFKA_BROKERS not set, order events are not published")
		return events.NopPublisher{}
	}

	p := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic, publisherBuffer)
	p.Start()
	return p
}

// newCache falls back to process memory when redis is not configured.
func newCache(rdb *redis.Client, name string) cache.Cache {
	if rdb == nil {
		return cache.NewMemory()
	}
	return cache.NewRedisCache(rdb, name)
}

func newServer(cfg *config.Config, database *sql.DB, rdb *redis.Client, pub events.Publisher, limiter *middleware.RateLimiter) (http.Handler, error) {
	catalogCache := newCache(rdb, "catalog")

	userSvc := user.NewService(user.NewRepository(database), cfg.JWTSecret)
	categorySvc := category.NewService(category.NewRepository(database), catalogCache)
	productSvc := product.NewService(product.NewRepository(database), catalogCache)
	cartSvc := cart.NewService(cart.NewStore(newCache(rdb, "cart")), productSvc)
	orderSvc := order.NewService(order.NewRepository(database), cartSvc, newCache(rdb, "orders"), pub)
	dashboardSvc := dashboard.NewService(dashboard.NewRepository(database))

	store := receipt.StoreFromConfig(cfg)

	schema, err := graph.NewSchema(&graph.Resolver{
		UserSvc:        userSvc,
		CategorySvc:    categorySvc,
		ProductSvc:     productSvc,
		CartSvc:        cartSvc,
		OrderSvc:       orderSvc,
		DashboardSvc:   dashboardSvc,
		Store:          store,
		WhatsAppNumber: cfg.WhatsAppNumber,
		TokenTTL:       auth.DefaultTokenTTL,
		SecureCookies:  cfg.AppEnv == "production",
	})
	if err != nil {
		return nil, err
	}

	orders := &transport.OrderHandler{
		Orders:         orderSvc,
		Store:          store,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}

	return setupRouter(cfg, graph.Handler(schema), orders, limiter), nil
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func setupRouter(cfg *config.Config, gql http.Handler, orders *transport.OrderHandler, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware(routePattern))
	r.Use(middleware.CORS(cfg.CORSOrigin))
	// Auth before the limiter so signed in users are limited per account.
	r.Use(middleware.Auth(cfg.JWTSecret))
	r.Use(limiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/query", gql)

	r.Route("/orders/{id}", func(r chi.Router) {
		r.Use(middleware.RequireRole())
		r.Get("/receipt", orders.Receipt)
		r.Get("/whatsapp", orders.WhatsApp)
	})

	return r
}
