package ollama

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type completionMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var completionMetricsInit = false
var completionMetricsInst completionMetrics

func ensureCompletionMetrics() {
	if completionMetricsInit {
		return
	}
	meter := otel.Meter("github.com/yeonwoo-dev/bodycheck-backend/ollama")

	requestCount, err := meter.Int64Counter(
		"ai.completion.request.count",
		metric.WithDescription("Number of completion requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.completion.request.duration",
		metric.WithDescription("Completion request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.completion.request.errors",
		metric.WithDescription("Number of completion request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.completion.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the completion rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	completionMetricsInst = completionMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	completionMetricsInit = true
}

func recordCompletionMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureCompletionMetrics()
	if !completionMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "ollama"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	completionMetricsInst.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	completionMetricsInst.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		completionMetricsInst.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordCompletionRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureCompletionMetrics()
	if !completionMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "ollama"),
		attribute.String("ai.model", model),
	}
	completionMetricsInst.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
