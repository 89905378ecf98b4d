/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package pipeline is the single entry point for every AI request in the
// application. It composes the response cache, the retry executor, the model
// gateway, the JSON extractor and the grounding aggregator into one
// Execute call:
//
//	cache lookup → retry(gateway call) → extract JSON → attach sources → cache store
//
// A request either fully succeeds with a parsed JSON value or fails with a
// tagged error; there is no partial-result recovery.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"chainguard.dev/brandaf/metrics"
	"chainguard.dev/brandaf/pipeline/cache"
	"chainguard.dev/brandaf/pipeline/extract"
	"chainguard.dev/brandaf/pipeline/grounding"
	"chainguard.dev/brandaf/pipeline/retry"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// ModelResponse is the validated output of one gateway call.
type ModelResponse struct {
	// Text is the candidate's trimmed text.
	Text string
	// GroundingChunks carries search citations for grounded calls.
	GroundingChunks []*genai.GroundingChunk
}

// ModelCaller performs a single model invocation. The gateway package
// provides the production implementation; tests substitute fakes.
type ModelCaller interface {
	Generate(ctx context.Context, req Request) (*ModelResponse, error)
}

// Pipeline orchestrates the resilient request path. All collaborators are
// injected; the zero value is not usable.
type Pipeline struct {
	caller    ModelCaller
	cache     *cache.Cache
	retryCfg  retry.Config
	genai     *metrics.GenAI
	model     string
	maxTokens int32
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithCache attaches a response cache. Without one, every request goes to
// the model.
func WithCache(c *cache.Cache) Option {
	return func(p *Pipeline) error {
		p.cache = c
		return nil
	}
}

// WithRetryConfig overrides the retry behavior for gateway calls.
func WithRetryConfig(cfg retry.Config) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.retryCfg = cfg
		return nil
	}
}

// WithMetrics attaches pipeline metrics (cache hit/store counters).
func WithMetrics(m *metrics.GenAI) Option {
	return func(p *Pipeline) error {
		p.genai = m
		return nil
	}
}

// WithDefaultModel sets the model applied to requests that do not name one.
func WithDefaultModel(model string) Option {
	return func(p *Pipeline) error {
		if model == "" {
			return fmt.Errorf("default model cannot be empty")
		}
		p.model = model
		return nil
	}
}

// WithDefaultMaxOutputTokens sets the token ceiling applied to requests that
// do not carry one.
func WithDefaultMaxOutputTokens(tokens int32) Option {
	return func(p *Pipeline) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		p.maxTokens = tokens
		return nil
	}
}

// New constructs a pipeline around a model caller.
func New(caller ModelCaller, options ...Option) (*Pipeline, error) {
	if caller == nil {
		return nil, fmt.Errorf("model caller is required")
	}
	p := &Pipeline{
		caller:    caller,
		retryCfg:  retry.DefaultConfig(),
		model:     "gemini-2.5-flash",
		maxTokens: 8192,
	}
	for _, opt := range options {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return p, nil
}

// Execute runs one request through the full pipeline and returns the parsed
// JSON value (a map or a slice). Grounded requests have their cited sources
// merged into object results under "sources". A cancelled request never
// stores a value in the cache.
func (p *Pipeline) Execute(ctx context.Context, req Request) (any, error) {
	if req.Model == "" {
		req.Model = p.model
	}
	if req.MaxOutputTokens == 0 {
		req.MaxOutputTokens = p.maxTokens
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	log := clog.FromContext(ctx).With("model", req.Model)

	var key string
	if !req.BypassCache && p.cache != nil {
		key = req.CacheKey()
		if value, ok := p.cache.Get(key); ok {
			log.With("key", key).Info("Serving response from cache")
			if p.genai != nil {
				p.genai.RecordCacheHit(ctx, req.Model)
			}
			return value, nil
		}
	}

	resp, err := retry.Do(ctx, p.retryCfg, "generate_content", Retryable, func() (*ModelResponse, error) {
		return p.caller.Generate(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	value, err := extract.Extract(resp.Text)
	if err != nil {
		// The raw text is the only evidence of what the model actually said;
		// keep it on the error and in the log.
		log.With("error", err).With("raw_response", resp.Text).
			Error("Failed to extract JSON from model response")
		return nil, &MalformedResponseError{Raw: resp.Text, Err: err}
	}

	if req.UseGrounding {
		value = grounding.Attach(value, grounding.Collect(resp.GroundingChunks))
	}

	if !req.BypassCache && p.cache != nil {
		p.cache.Set(key, value)
		log.With("key", key).Info("Stored response in cache")
		if p.genai != nil {
			p.genai.RecordCacheStore(ctx, req.Model)
		}
	}

	return value, nil
}

// ClearCache drops every cached response. No-op without a cache.
func (p *Pipeline) ClearCache() {
	if p.cache != nil {
		p.cache.Clear()
	}
}

// CacheStats reports cache occupancy. Zero without a cache.
func (p *Pipeline) CacheStats() cache.Stats {
	if p.cache == nil {
		return cache.Stats{}
	}
	return p.cache.Stats()
}

// Decode converts a pipeline value into a typed result via a JSON round
// trip, mirroring how callers consume the extractor's output.
func Decode[T any](value any) (T, error) {
	var result T
	raw, err := json.Marshal(value)
	if err != nil {
		return result, fmt.Errorf("encoding pipeline value: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decoding pipeline value: %w", err)
	}
	return result, nil
}
