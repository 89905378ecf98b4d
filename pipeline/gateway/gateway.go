/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package gateway performs single model invocations against the Gemini API
// and validates the response envelope before any text reaches the extractor.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/brandaf/metrics"
	"chainguard.dev/brandaf/pipeline"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// generateFunc is the seam between the gateway and the genai SDK; tests
// substitute a fake and feed hand-built envelopes through validation.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Gateway builds generation requests and validates response envelopes. It is
// stateless beyond the client handle; one Generate call performs exactly one
// network request, leaving retries to the layer above.
type Gateway struct {
	generate generateFunc
	genai    *metrics.GenAI
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithMetrics attaches token-usage metrics.
func WithMetrics(m *metrics.GenAI) Option {
	return func(g *Gateway) {
		g.genai = m
	}
}

// New wraps a genai client.
func New(client *genai.Client, options ...Option) (*Gateway, error) {
	if client == nil {
		return nil, fmt.Errorf("genai client is required")
	}
	g := &Gateway{
		generate: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return client.Models.GenerateContent(ctx, model, contents, config)
		},
	}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

// Generate implements pipeline.ModelCaller. Transport errors are returned
// as-is (the retry layer classifies them); envelope problems surface as the
// pipeline's tagged errors.
func (g *Gateway) Generate(ctx context.Context, req pipeline.Request) (*pipeline.ModelResponse, error) {
	log := clog.FromContext(ctx).With("model", req.Model)

	contents := buildContents(req)
	config := buildConfig(ctx, req)

	log.With("grounding", req.UseGrounding).Info("Sending generation request")
	resp, err := g.generate(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("calling model %q: %w", req.Model, err)
	}

	if resp.UsageMetadata != nil && g.genai != nil {
		g.genai.RecordTokens(ctx, req.Model,
			int64(resp.UsageMetadata.PromptTokenCount),
			int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	return validate(resp)
}

// buildContents assembles the user content: an optional inline media part
// ahead of the prompt text, mirroring how multimodal requests order parts.
func buildContents(req pipeline.Request) []*genai.Content {
	parts := make([]*genai.Part, 0, 2)
	if req.Media != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				Data:     req.Media.Data,
				MIMEType: req.Media.MIMEType,
			},
		})
	}
	parts = append(parts, &genai.Part{Text: req.Prompt})
	return []*genai.Content{{Role: "user", Parts: parts}}
}

// buildConfig maps the request onto generation config. Grounding and
// structured output are mutually exclusive on the API: a grounded call
// returns free text even when a schema is requested, so the schema is
// dropped (and noted) rather than sent.
func buildConfig(ctx context.Context, req pipeline.Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     ptr(req.Temperature),
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if req.UseGrounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
		if req.ResponseSchema != nil {
			clog.FromContext(ctx).Warn("Response schema ignored on grounded request")
		}
		return config
	}
	if req.StructuredOutput || req.ResponseSchema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.ResponseSchema
	}
	return config
}

// ptr is a helper function to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}

// validate checks the response envelope in contract order: safety block,
// candidate presence, finish reason, then non-empty text.
func validate(resp *genai.GenerateContentResponse) (*pipeline.ModelResponse, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, &pipeline.ContentBlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}

	if len(resp.Candidates) == 0 {
		return nil, &pipeline.EmptyResponseError{}
	}
	candidate := resp.Candidates[0]

	if candidate.FinishReason != "" &&
		candidate.FinishReason != genai.FinishReasonStop &&
		candidate.FinishReason != genai.FinishReasonMaxTokens {
		return nil, &pipeline.GenerationFailedError{Reason: string(candidate.FinishReason)}
	}

	var text strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}
	trimmed := strings.TrimSpace(text.String())
	if trimmed == "" {
		return nil, &pipeline.EmptyResponseError{}
	}

	var chunks []*genai.GroundingChunk
	if candidate.GroundingMetadata != nil {
		chunks = candidate.GroundingMetadata.GroundingChunks
	}
	return &pipeline.ModelResponse{Text: trimmed, GroundingChunks: chunks}, nil
}
