// Package app wires the store's dependencies together and runs the HTTP
// server.
package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/XVaheBabayanX/OnlineStore/internal/api"
	"github.com/XVaheBabayanX/OnlineStore/internal/catalog"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/order"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/payment"
	"github.com/XVaheBabayanX/OnlineStore/internal/promo"
	"github.com/XVaheBabayanX/OnlineStore/internal/storage/postgres"
	"github.com/XVaheBabayanX/OnlineStore/pkg/health"
	"github.com/XVaheBabayanX/OnlineStore/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations for the promo code store.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Static catalog from embedded seed data.
	cat, err := catalog.Load()
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	lg.Info("Catalog loaded", zap.Int("products", cat.Len()))

	// Promo resolution with a bloom prefilter over the known codes.
	promoRepo := postgres.NewPromoRepository(pool)
	resolver := promo.NewRepoResolver(promoRepo)
	if err := resolver.WarmFilter(ctx); err != nil {
		return errors.Wrap(err, "warm promo filter")
	}

	// Simulated payment gateways write their charge lines to stdout.
	payments := payment.NewRegistry(os.Stdout)

	checkout := order.NewService(cat, resolver, payments)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.SetReady(true)

	// HTTP handlers.
	h, err := api.NewHandler(cat, checkout, m.MeterProvider())
	if err != nil {
		return errors.Wrap(err, "create api handler")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)

	handler := httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins: cfg.CORS.Origins,
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       86400,
		}),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.LogRequests(),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(handler, "store-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
