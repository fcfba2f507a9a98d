package telemetry

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
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "vry"

// Setup instala un TracerProvider que exporta a traceFile.
// Con traceFile vacío queda el provider noop global.
func Setup(ctx context.Context, traceFile, version string) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}
	if traceFile == "" {
		return shutdown, nil
	}

	f, err := os.OpenFile(traceFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return shutdown, fmt.Errorf("open trace file: %w", err)
	}
	shutdownFuncs = append(shutdownFuncs, func(context.Context) error { return f.Close() })

	exp, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		return shutdown, errors.Join(err, shutdown(ctx))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
			attribute.String("service.version", version),
		)),
	)
	// el provider se apaga antes que el archivo
	shutdownFuncs = append([]func(context.Context) error{tp.Shutdown}, shutdownFuncs...)
	otel.SetTracerProvider(tp)
	return shutdown, nil
}

// Tracer devuelve el tracer del paquete dado desde el provider global.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(ServiceName + "/" + name)
}
