package tracer

import (
	"context"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/config"
	"github.com/sachin24864/RealEstate-Website/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const exporterSetupTimeout = 10 * time.Second

// InitTracer installs the global tracer provider and propagators. Spans are
// exported over OTLP/gRPC when an endpoint is configured; otherwise, or when
// exporter setup fails, the provider records nothing outside the process.
func InitTracer(cfg *config.TracingConfig, env string, appLogger *logger.Logger) *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(newResource(cfg.ServiceName, env, appLogger)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(cfg.SampleRatio)))),
	}

	if cfg.OTLPEndpoint == "" {
		appLogger.Info("Span export is disabled: tracing.otlp_endpoint is not set")
	} else if exporter, err := newExporter(cfg.OTLPEndpoint); err != nil {
		appLogger.Error("Failed to set up OTLP trace exporter, spans will not be exported",
			zap.String("endpoint", cfg.OTLPEndpoint), zap.Error(err))
	} else {
		opts = append(opts, sdktrace.WithBatcher(exporter))
		appLogger.Info("OTLP trace exporter configured",
			zap.String("endpoint", cfg.OTLPEndpoint),
			zap.Float64("sample_ratio", sampleRatio(cfg.SampleRatio)),
		)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}

func newExporter(endpoint string) (sdktrace.SpanExporter, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), exporterSetupTimeout)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return exporter, nil
}

func newResource(serviceName, env string, appLogger *logger.Logger) *resource.Resource {
	attrs := []attribute.KeyValue{semconv.ServiceNameKey.String(serviceName)}
	if env != "" {
		attrs = append(attrs, attribute.String("deployment.environment", env))
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL, attrs...))
	if err != nil {
		appLogger.Warn("Failed to merge OpenTelemetry resource, using service attributes only", zap.Error(err))
		return resource.NewSchemaless(attrs...)
	}
	return res
}

// sampleRatio clamps r into (0, 1]; zero or negative means sample everything.
func sampleRatio(r float64) float64 {
	if r <= 0 || r > 1 {
		return 1
	}
	return r
}
