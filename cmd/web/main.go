// Package main is the entry point for the catalog front end. It wires
// configuration, logging, tracing, and the HTTP shell that renders the
// views.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"bookshelf/internal/shell"
)

type webConfig struct {
	port             int
	environment      string
	bookServiceURL   string
	reviewServiceURL string
	identityURL      string
	requestTimeout   time.Duration
	otlpEndpoint     string
}

// application bundles the shared resources every handler needs.
type application struct {
	config   webConfig
	logger   *slog.Logger
	notifier *shell.Notifier
}

func main() {
	var cfg webConfig

	flag.IntVar(&cfg.port, "port", 4000, "Server port")
	flag.StringVar(&cfg.environment, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.bookServiceURL, "book-service-url", "http://localhost:8081", "Base URL of the book service")
	flag.StringVar(&cfg.reviewServiceURL, "review-service-url", "http://localhost:8082", "Base URL of the review service")
	flag.StringVar(&cfg.identityURL, "identity-url", "http://localhost:8081", "Base URL of the identity provider")
	flag.DurationVar(&cfg.requestTimeout, "request-timeout", 10*time.Second, "Timeout for requests to the remote services")
	flag.StringVar(&cfg.otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP trace endpoint; tracing is disabled when empty")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if cfg.otlpEndpoint != "" {
		shutdown, err := initTracing(context.Background(), cfg.otlpEndpoint)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Error("trace shutdown", "error", err)
			}
		}()
		logger.Info("tracing enabled", "endpoint", cfg.otlpEndpoint)
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		notifier: shell.NewNotifier(shell.DefaultTTL),
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// initTracing installs a tracer provider exporting spans over OTLP/HTTP.
// The clients pick it up through the global provider.
func initTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("bookshelf-web"),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
