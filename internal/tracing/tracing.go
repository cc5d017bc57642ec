// Package tracing wraps OpenTelemetry so optimization runs can emit spans for
// the run itself and for every layout evaluation. Until Init is called the
// global no-op provider is in effect and spans cost nothing.
package tracing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/layout-sim/layout-sim"

// createOutput opens the span output file. Tests substitute it.
var createOutput = os.Create

// Init configures OpenTelemetry with the stdout exporter. If outputFile is an
// empty string the exporter writes to os.Stdout; otherwise the spans go to the
// named file, which the returned shutdown function closes after flushing.
// The first successful initialisation wins.
func Init(serviceName, serviceVersion, outputFile string) (shutdown func(context.Context) error, err error) {
	var w io.Writer = os.Stdout
	closeOutput := func() error { return nil }
	if outputFile != "" {
		f, err := createOutput(outputFile)
		if err != nil {
			return nil, err
		}
		w = f
		closeOutput = f.Close
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		_ = closeOutput()
		return nil, err
	}
	flush, err := InitWithExporter(serviceName, serviceVersion, exporter)
	if err != nil {
		_ = closeOutput()
		return nil, err
	}
	return func(ctx context.Context) error {
		return errors.Join(flush(ctx), closeOutput())
	}, nil
}

// InitWithExporter configures OpenTelemetry using the supplied SpanExporter.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (func(context.Context) error, error) {
	if err := installProvider(serviceName, serviceVersion, exporter); err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		if tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); ok {
			return tp.Shutdown(ctx)
		}
		return nil
	}, nil
}

var (
	providerOnce sync.Once
	providerErr  error
)

func installProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	if exporter == nil {
		return nil
	}

	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
	})

	return providerErr
}

// Span wraps an OpenTelemetry span so callers do not import the upstream
// packages directly.
type Span struct {
	span trace.Span
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	s.span.SetAttributes(kv...)
	return s
}

// SetFloat records a numeric attribute.
func (s *Span) SetFloat(key string, v float64) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attribute.Float64(key, v))
}

// SetInt records an integer attribute.
func (s *Span) SetInt(key string, v int) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attribute.Int(key, v))
}

// SetStatus records an error status on the span, or OK when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
}

// StartSpan starts an internal child span of whatever span ctx carries.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// EndSpan finalises the span and records status depending on err.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}
