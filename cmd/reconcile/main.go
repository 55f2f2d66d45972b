// Command main runs the content reconciliation passes: schema evolution,
// the category sweep, and the media sweep.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hikaye/internal/bootstrap"
	"hikaye/internal/config"
	"hikaye/internal/observability"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "hikaye-reconcile",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Metrics endpoint for scraping during long runs.
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				observability.Logger.Error("metrics listener stopped", "error", err)
			}
		}()
	}

	app, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer app.Close()

	observability.Logger.Info("starting reconciliation", "flags", app.Flags.Raw())

	runErr := app.Reconciler.Run(ctx)

	if err := shutdownTracing(context.Background()); err != nil {
		observability.Logger.Warn("tracing shutdown failed", "error", err)
	}
	if runErr != nil {
		log.Fatalf("Reconciliation finished with errors: %v", runErr)
	}
	observability.Logger.Info("reconciliation complete")
}
