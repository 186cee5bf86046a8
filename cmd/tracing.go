package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/registrar-sim/registrar-sim"

// tracer returns the tracer of the globally installed provider (no-op unless
// setupTracing installed one).
func tracer() oteltrace.Tracer {
	return otel.Tracer(tracerName)
}

// setupTracing installs an OpenTelemetry provider that writes spans to
// outputFile with the stdout exporter. An empty outputFile leaves the global
// no-op provider in place. The returned function flushes spans and closes the file.
func setupTracing(outputFile string) (func(context.Context) error, error) {
	if outputFile == "" {
		return func(context.Context) error { return nil }, nil
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("creating span output %s: %w", outputFile, err)
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", "registrar-sim"),
		),
	)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), f.Close())
	}, nil
}
