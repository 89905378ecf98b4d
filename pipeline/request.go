/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Media is an inline binary attachment (e.g. a creative image under review).
type Media struct {
	Data     []byte
	MIMEType string
}

// Request describes one generation call. Builders construct it explicitly;
// the pipeline fills the model and token defaults and validates the rest
// before execution.
type Request struct {
	// Prompt is the fully rendered prompt text.
	Prompt string

	// Model overrides the pipeline's default model when non-empty.
	Model string

	// Temperature in [0, 1].
	Temperature float32

	// MaxOutputTokens overrides the pipeline default when positive.
	MaxOutputTokens int32

	// UseGrounding requests a web-search-grounded call. Grounded calls
	// return free text even when a schema is set, so ResponseSchema is
	// ignored when this is true.
	UseGrounding bool

	// StructuredOutput asks the model for a JSON response body.
	StructuredOutput bool

	// ResponseSchema constrains structured output. Implies StructuredOutput.
	ResponseSchema *genai.Schema

	// Media optionally attaches inline binary content ahead of the prompt.
	Media *Media

	// BypassCache skips both the lookup and the store for this request.
	BypassCache bool
}

func (r *Request) validate() error {
	if r.Prompt == "" {
		return errors.New("prompt is required")
	}
	if r.Temperature < 0 || r.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", r.Temperature)
	}
	if r.MaxOutputTokens < 0 {
		return fmt.Errorf("max output tokens must be positive, got %d", r.MaxOutputTokens)
	}
	if r.Media != nil && r.Media.MIMEType == "" {
		return errors.New("media attachment requires a MIME type")
	}
	return nil
}

// cacheKeyFields is the canonical projection of the semantically relevant
// request fields. BypassCache deliberately does not appear: two requests that
// differ only in the bypass flag address the same entry.
type cacheKeyFields struct {
	Prompt          string          `json:"prompt"`
	Model           string          `json:"model"`
	Temperature     float32         `json:"temperature"`
	MaxOutputTokens int32           `json:"max_output_tokens"`
	Grounding       bool            `json:"grounding"`
	Structured      bool            `json:"structured"`
	Schema          json.RawMessage `json:"schema,omitempty"`
	MediaDigest     string          `json:"media,omitempty"`
}

// CacheKey derives a deterministic key from the fields that affect the model
// output.
func (r *Request) CacheKey() string {
	fields := cacheKeyFields{
		Prompt:          r.Prompt,
		Model:           r.Model,
		Temperature:     r.Temperature,
		MaxOutputTokens: r.MaxOutputTokens,
		Grounding:       r.UseGrounding,
		Structured:      r.StructuredOutput || r.ResponseSchema != nil,
	}
	if r.ResponseSchema != nil && !r.UseGrounding {
		// Marshal failure would mean an unencodable schema, which genai
		// would reject anyway; fold it into the key as absent.
		if raw, err := json.Marshal(r.ResponseSchema); err == nil {
			fields.Schema = raw
		}
	}
	if r.Media != nil {
		sum := sha256.Sum256(r.Media.Data)
		fields.MediaDigest = r.Media.MIMEType + ":" + hex.EncodeToString(sum[:])
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		// cacheKeyFields only holds strings, numbers and raw JSON; this is
		// unreachable, but a degenerate shared key must never be returned.
		payload = []byte(r.Prompt)
	}
	sum := sha256.Sum256(payload)
	return "gen:" + hex.EncodeToString(sum[:])
}
