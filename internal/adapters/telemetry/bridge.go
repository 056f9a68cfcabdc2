package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/loom/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor and reports finished spans through a ports.Logger.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// NewProvider builds a tracer provider whose spans are reported to logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLogBridge(logger)))
}

// OnStart does nothing.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration and attributes.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	kv := make([]any, 0, 4+2*len(s.Attributes()))
	kv = append(kv, "span", s.Name(), "duration", s.EndTime().Sub(s.StartTime()).String())
	for _, attr := range s.Attributes() {
		kv = append(kv, string(attr.Key), attr.Value.Emit())
	}

	if s.Status().Code == codes.Error {
		b.logger.Warn("span failed: "+s.Status().Description, kv...)
		return
	}
	b.logger.Debug("span finished", kv...)
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}
