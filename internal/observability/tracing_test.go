package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
)

func TestInitTracer(t *testing.T) {
	ctx := context.Background()

	// The OTLP gRPC exporter connects lazily, so init succeeds without a
	// collector listening.
	shutdown, err := InitTracer(ctx, "localhost:4317")
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected shutdown function to be non-nil")
	}

	// Spans can be started and ended against the installed provider
	tracer := otel.Tracer("isorun-test")
	_, span := tracer.Start(ctx, "smoke")
	span.End()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(shutdownCtx)
}
