/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry counters for the AI response
// pipeline: token usage per model call plus cache hit/store activity.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI holds the counters recorded along the pipeline's request path.
// Counter creation degrades gracefully: if the meter refuses an instrument,
// a no-op counter stands in rather than failing pipeline construction.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	cacheHits        metric.Int64Counter
	cacheStores      metric.Int64Counter
}

// NewGenAI creates a GenAI metrics instance on the named meter. The meter
// name should be shared across the application (e.g. "chainguard.ai.brandaf")
// with the model as a dimension on each recorded point.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	cacheHits, err := meter.Int64Counter("genai.cache.hits",
		metric.WithDescription("The number of responses served from the cache"),
		metric.WithUnit("{responses}"))
	if err != nil {
		slog.Warn("Failed to create cache hit counter, metrics will be disabled", "error", err, "meter", meterName)
		cacheHits = noop.Int64Counter{}
	}

	cacheStores, err := meter.Int64Counter("genai.cache.stores",
		metric.WithDescription("The number of responses written to the cache"),
		metric.WithUnit("{responses}"))
	if err != nil {
		slog.Warn("Failed to create cache store counter, metrics will be disabled", "error", err, "meter", meterName)
		cacheStores = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		cacheHits:        cacheHits,
		cacheStores:      cacheStores,
	}
}

// RecordTokens records prompt and completion token usage for one model call.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	m.promptTokens.Add(ctx, promptTokens, attrs)
	m.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordCacheHit records a response served from the cache without a model call.
func (m *GenAI) RecordCacheHit(ctx context.Context, model string) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("model", model)))
}

// RecordCacheStore records a freshly generated response entering the cache.
func (m *GenAI) RecordCacheStore(ctx context.Context, model string) {
	m.cacheStores.Add(ctx, 1, metric.WithAttributes(attribute.String("model", model)))
}
