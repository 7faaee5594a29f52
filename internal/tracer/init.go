package tracer

import (
	"context"
	"log"

	"codecollab-be/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Shutdown flushes and stops the installed provider.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// sampler keeps parent decisions and samples new traces at ratio, clamped to [0, 1].
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// InitTracer installs an OTLP/HTTP tracer provider for the HTTP and WebSocket
// routes. With tracing disabled, or if the exporter cannot be built, it leaves
// the global no-op provider in place.
func InitTracer(cfg config.TracingConfig) Shutdown {
	if !cfg.Enabled {
		log.Println("Tracing disabled (TRACING_ENABLED=true to enable)")
		return noop
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("Warning: tracing disabled, exporter for %s: %v", cfg.Endpoint, err)
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	log.Printf("Tracing to %s as %s (sample ratio %.2f)", cfg.Endpoint, cfg.ServiceName, cfg.SampleRatio)

	return tp.Shutdown
}
