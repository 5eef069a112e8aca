package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/physio-clinic/cmd/mainconfig"
	"github.com/wolfman30/physio-clinic/internal/api/router"
	"github.com/wolfman30/physio-clinic/internal/app/bootstrap"
	"github.com/wolfman30/physio-clinic/internal/bookings"
	"github.com/wolfman30/physio-clinic/internal/clinic"
	appconfig "github.com/wolfman30/physio-clinic/internal/config"
	"github.com/wolfman30/physio-clinic/internal/notify"
	"github.com/wolfman30/physio-clinic/internal/observability/metrics"
	"github.com/wolfman30/physio-clinic/internal/schedule"
	"github.com/wolfman30/physio-clinic/internal/site"
	"github.com/wolfman30/physio-clinic/internal/state"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

func main() {
	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting physio-clinic server",
		"env", cfg.Env,
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
	)

	rt, err := mainconfig.Connect(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to connect backends", "error", err)
		os.Exit(1)
	}
	defer rt.Close()

	r, err := buildHandler(cfg, rt, logger)
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics creates an isolated registry with the booking metrics and the
// Go runtime collectors.
func setupMetrics() (http.Handler, *metrics.BookingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewBookingMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}

// buildHandler wires services and handlers into the router.
func buildHandler(cfg *appconfig.Config, rt *mainconfig.Runtime, logger *logging.Logger) (http.Handler, error) {
	metricsHandler, m := setupMetrics()

	loc, err := schedule.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		return nil, err
	}

	store, err := bootstrap.BuildStore(cfg, rt.Backends, logger)
	if err != nil {
		return nil, err
	}
	stateSvc := state.NewService(store, logger, m)
	registry := bootstrap.BuildArtifactRegistry(cfg, rt.Backends.Redis, logger)

	profile := clinic.DefaultProfile()
	opts := []bookings.Option{
		bookings.WithLocation(loc),
		bookings.WithEventLocation(profile.EventLocation()),
		bookings.WithWindowDays(cfg.BookingWindowDays),
		bookings.WithSlotEnforcement(cfg.BookingEnforceSlots),
		bookings.WithMetrics(m),
	}
	if sender := bootstrap.BuildEmailSender(cfg, rt.SES, logger); sender != nil {
		opts = append(opts, bookings.WithNotifier(notify.NewBookingMailer(sender, profile, loc, logger)))
	}
	bookingSvc := bookings.NewService(stateSvc, registry, logger, opts...)

	return router.New(&router.Config{
		Logger:              logger,
		Metrics:             m,
		BookingsHandler:     bookings.NewHandler(bookingSvc, logger).WithBaseURL(cfg.PublicBaseURL),
		SiteHandler:         site.NewHandler(bookingSvc, stateSvc, profile, logger),
		ConsentHandler:      state.NewConsentHandler(stateSvc, logger),
		ClinicHandler:       clinic.NewHandler(profile, logger),
		MetricsHandler:      metricsHandler,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMinute:  cfg.RateLimitBookingsPerMinute,
		SessionCookieSecure: cfg.SessionCookieSecure,
	}), nil
}
