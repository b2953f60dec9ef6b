package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/gamestore/internal"
	"github.com/dukerupert/gamestore/internal/catalog"
	"github.com/dukerupert/gamestore/internal/cookie"
	"github.com/dukerupert/gamestore/internal/handler"
	"github.com/dukerupert/gamestore/internal/handler/storefront"
	"github.com/dukerupert/gamestore/internal/middleware"
	"github.com/dukerupert/gamestore/internal/promo"
	"github.com/dukerupert/gamestore/internal/router"
	"github.com/dukerupert/gamestore/internal/routes"
	"github.com/dukerupert/gamestore/internal/service"
	"github.com/dukerupert/gamestore/internal/telemetry"
	"github.com/dukerupert/gamestore/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "gamestore"

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry
	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// ==========================================================================
	// Metrics
	// ==========================================================================

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics(metricsNamespace, registry)
	businessMetrics := telemetry.NewBusinessMetrics(metricsNamespace, registry)

	// ==========================================================================
	// Domain services
	// ==========================================================================

	promoRegistry := promo.DefaultRegistry(promo.WithTrimInput(cfg.Promo.TrimInput))

	storeConfig := service.SessionStoreConfig{
		TTL:           cfg.Session.TTL,
		SweepInterval: cfg.Session.SweepInterval,
		Metrics:       businessMetrics,
	}
	if cfg.Promo.SharedLedger {
		storeConfig.SharedLedger = promo.NewLedger()
		logger.Info("Promo activation limits are process-wide")
	}
	sessionStore := service.NewMemorySessionStore(storeConfig, promoRegistry, logger)
	defer sessionStore.Close()

	telemetry.ActiveSessionsGauge(metricsNamespace, registry, func() float64 {
		return float64(sessionStore.Len())
	})

	items := catalog.Default()
	cartService := service.NewCartService(sessionStore, items, cfg.Pricing.Rounding, businessMetrics, logger)

	// ==========================================================================
	// Handlers
	// ==========================================================================

	renderer, err := handler.NewRenderer(web.Templates())
	if err != nil {
		return fmt.Errorf("template parsing failed: %w", err)
	}

	faq := catalog.FAQ()
	support := catalog.NewSupportInfo(cfg.Support.Email, cfg.Support.Telegram, cfg.Support.Hours)
	cookies := cookie.NewConfig(cfg.Cookie.Domain, cfg.IsProduction(), cfg.Session.TTL)

	homeHandler := storefront.NewHomeHandler(items, cartService, renderer, faq, support)
	cartHandler := storefront.NewCartHandler(cartService, cookies)
	catalogHandler := storefront.NewCatalogHandler(items, faq, support)

	// ==========================================================================
	// Middleware
	// ==========================================================================

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if !cfg.IsProduction() {
		securityConfig = middleware.DevelopmentSecurityHeadersConfig()
	}

	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer defaultRateLimiter.Stop()
	promoRateLimiter := middleware.NewRateLimiter(middleware.PromoRateLimiterConfig())
	defer promoRateLimiter.Stop()

	chain := []router.Middleware{
		router.Recovery(logger),
		middleware.RequestID,
		middleware.Session,
		middleware.WithRequestLogger(logger),
		telemetry.SentryMiddleware(),
		httpMetrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		chain = append(chain, router.CORS(cfg.CORSAllowedOrigins))
	}
	chain = append(chain,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		router.Logger(logger),
	)

	// ==========================================================================
	// Routes
	// ==========================================================================

	r := router.New(chain...)

	routes.RegisterOpsRoutes(r, routes.OpsDeps{
		HealthHandler:  handler.Health(sessionStore.Len),
		MetricsHandler: httpMetrics.Handler(),
	})
	routes.RegisterAPIRoutes(r, routes.APIDeps{
		CatalogHandler: catalogHandler,
		CartHandler:    cartHandler,
		PromoLimiter:   promoRateLimiter.Middleware,
	})
	routes.RegisterStorefrontRoutes(r, routes.StorefrontDeps{
		HomeHandler:  homeHandler,
		CartHandler:  cartHandler,
		PromoLimiter: promoRateLimiter.Middleware,
		Static:       web.Static(),
	})

	// ==========================================================================
	// Serve
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      middleware.DefaultTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront server", "address", srv.Addr, "env", cfg.Env, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			telemetry.CaptureError(err)
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
