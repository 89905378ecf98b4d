/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package grounding_test

import (
	"testing"

	"chainguard.dev/brandaf/pipeline/grounding"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func webChunk(uri, title string) *genai.GroundingChunk {
	return &genai.GroundingChunk{Web: &genai.GroundingChunkWeb{URI: uri, Title: title}}
}

func TestCollect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		chunks []*genai.GroundingChunk
		want   []grounding.Source
	}{{
		name: "dedupes by uri keeping first title",
		chunks: []*genai.GroundingChunk{
			webChunk("https://a.example", "First A"),
			webChunk("https://b.example", ""),
			webChunk("https://a.example", "Second A"),
			webChunk("https://c.example", "C"),
		},
		want: []grounding.Source{
			{URI: "https://a.example", Title: "First A"},
			{URI: "https://b.example", Title: "https://b.example"},
			{URI: "https://c.example", Title: "C"},
		},
	}, {
		name: "skips chunks without web references",
		chunks: []*genai.GroundingChunk{
			nil,
			{},
			webChunk("", "no uri"),
			webChunk("https://only.example", "Only"),
		},
		want: []grounding.Source{
			{URI: "https://only.example", Title: "Only"},
		},
	}, {
		name:   "empty input",
		chunks: nil,
		want:   nil,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := grounding.Collect(tt.chunks)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttach(t *testing.T) {
	t.Parallel()
	sources := []grounding.Source{{URI: "https://a.example", Title: "A"}}

	obj := grounding.Attach(map[string]any{"title": "report"}, sources)
	m, ok := obj.(map[string]any)
	if !ok {
		t.Fatalf("Attach() returned %T, want map", obj)
	}
	if diff := cmp.Diff(sources, m["sources"]); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	// Arrays have no place to carry citations; they pass through untouched.
	arr := grounding.Attach([]any{"x"}, sources)
	if _, ok := arr.([]any); !ok {
		t.Fatalf("Attach() changed array value to %T", arr)
	}
}
