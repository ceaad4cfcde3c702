package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/luniksss/lunikiss-storefront/internal/admin"
	"github.com/luniksss/lunikiss-storefront/internal/booking"
	"github.com/luniksss/lunikiss-storefront/internal/config"
	"github.com/luniksss/lunikiss-storefront/internal/events"
	"github.com/luniksss/lunikiss-storefront/internal/httpapi"
	"github.com/luniksss/lunikiss-storefront/internal/oplock"
	"github.com/luniksss/lunikiss-storefront/internal/orders"
	"github.com/luniksss/lunikiss-storefront/internal/remote"
	"github.com/luniksss/lunikiss-storefront/internal/session"
	"github.com/luniksss/lunikiss-storefront/internal/stock"
)

func main() {
	// Logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log.Info().
		Str("port", cfg.Port).
		Str("remote", cfg.RemoteBaseURL).
		Str("redis", cfg.RedisAddr).
		Msg("starting storefront bff")

	var sessions session.Store
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("redis session store")
		}
		defer redisStore.Close()
		sessions = redisStore
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions are in-memory only")
		sessions = session.NewMemoryStore()
	}

	// Shared HTTP client for all retail-service calls.
	sharedHTTP := &http.Client{Timeout: cfg.UpstreamTimeout}
	base := remote.NewClient("retail-service", cfg.RemoteBaseURL, sharedHTTP, log.Logger)

	authClient := remote.NewAuthClient(base)
	catalogClient := remote.NewCatalogClient(base)
	orderClient := remote.NewOrderClient(base)
	stockClient := remote.NewStockClient(base)
	userClient := remote.NewUserClient(base)

	locks := oplock.New()
	bus := events.NewBus()
	registry := stock.NewRegistry(catalogClient, log.Logger)
	coordinator := booking.NewCoordinator(registry, orderClient, locks, log.Logger)
	lifecycle := orders.NewManager(orderClient, locks, bus, log.Logger)
	stockAdmin := admin.NewStockManager(registry, stockClient, locks, log.Logger)

	bus.Subscribe(func(ev events.OrderEmptied) {
		log.Info().
			Str("order_id", ev.OrderID).
			Time("occurred_at", ev.OccurredAt).
			Msg("order emptied and deleted")
	})

	router := httpapi.NewRouter(httpapi.Deps{
		Log:       log.Logger,
		Cfg:       cfg,
		Sessions:  sessions,
		Auth:      authClient,
		Catalog:   catalogClient,
		Orders:    orderClient,
		Users:     userClient,
		Registry:  registry,
		Booking:   coordinator,
		Lifecycle: lifecycle,
		Stock:     stockAdmin,
		Locks:     locks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("shutdown complete")
}
