/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package grounding turns the search citations attached to a grounded model
// response into a deduplicated source list merged into the parsed result.
package grounding

import (
	"google.golang.org/genai"
)

// Source is one cited web reference.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Collect filters chunks down to those carrying a web reference with a
// non-empty URI, falling back to the URI when a title is missing, and
// deduplicates by URI keeping the first occurrence. Order is first-seen.
func Collect(chunks []*genai.GroundingChunk) []Source {
	var sources []Source
	seen := make(map[string]struct{}, len(chunks))
	for _, chunk := range chunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if _, ok := seen[chunk.Web.URI]; ok {
			continue
		}
		seen[chunk.Web.URI] = struct{}{}
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		sources = append(sources, Source{URI: chunk.Web.URI, Title: title})
	}
	return sources
}

// Attach sets (or overwrites) the "sources" field on object values. Array and
// scalar values are returned untouched: only object results have somewhere to
// carry citations.
func Attach(value any, sources []Source) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return value
	}
	obj["sources"] = sources
	return obj
}
