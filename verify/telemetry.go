package verify

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("answercheck.verify")

var (
	// validationsTotal counts validations by kind and outcome. The outcome
	// is "ok" or the report's error kind.
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "answercheck_validations_total",
		Help: "Total validations by kind and outcome",
	}, []string{"kind", "outcome"})

	validationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "answercheck_validation_duration_seconds",
		Help:    "Validation duration",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"kind"})

	equalityMethods = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "answercheck_equality_checks_total",
		Help: "Equality checks by the method that settled them",
	}, []string{"method"})
)

func startValidateSpan(ctx context.Context, kind Kind) (context.Context, trace.Span) {
	return tracer.Start(ctx, "verify.Validate",
		trace.WithAttributes(attribute.String("answercheck.kind", kindLabel(kind))),
	)
}

func outcomeLabel(r Report) string {
	if r.OK {
		return "ok"
	}
	return string(r.ErrorKind)
}

func recordOutcome(r Report, elapsed time.Duration) {
	validationsTotal.WithLabelValues(r.Kind, outcomeLabel(r)).Inc()
	validationDuration.WithLabelValues(r.Kind).Observe(elapsed.Seconds())
}

func endValidateSpan(span trace.Span, r Report) {
	defer span.End()
	span.SetAttributes(
		attribute.Bool("answercheck.ok", r.OK),
		attribute.String("answercheck.outcome", outcomeLabel(r)),
	)
	switch r.ErrorKind {
	case ErrorKindInternal, ErrorKindSpec, ErrorKindParse, ErrorKindEval:
		span.SetStatus(codes.Error, r.Reason)
	default:
		span.SetStatus(codes.Ok, "")
	}
}
