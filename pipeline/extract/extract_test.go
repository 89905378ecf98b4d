/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package extract

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  any
	}{{
		name:  "bare object",
		input: `{"key": "value"}`,
		want:  map[string]any{"key": "value"},
	}, {
		name:  "bare array",
		input: `[1, 2, 3]`,
		want:  []any{float64(1), float64(2), float64(3)},
	}, {
		name: "fenced json block",
		input: "Here is the plan:\n```json\n" +
			`{"posts": [{"title": "Launch day"}]}` + "\n```\nLet me know!",
		want: map[string]any{"posts": []any{map[string]any{"title": "Launch day"}}},
	}, {
		name:  "preamble and trailing prose",
		input: `Sure, here you go: {"ok": true} hope that helps`,
		want:  map[string]any{"ok": true},
	}, {
		name:  "array before object picks earliest delimiter",
		input: `[{"a": 1}] {"b": 2}`,
		want:  []any{map[string]any{"a": float64(1)}},
	}, {
		name:  "nested object",
		input: `{"outer": {"inner": {"deep": []}}}`,
		want:  map[string]any{"outer": map[string]any{"inner": map[string]any{"deep": []any{}}}},
	}, {
		name:  "surrounding whitespace",
		input: "\n\t  {\"padded\": true}  \n",
		want:  map[string]any{"padded": true},
	}, {
		name:  "fence without language hint is ignored as fence",
		input: "```\n{\"plain\": \"fence\"}\n```",
		want:  map[string]any{"plain": "fence"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Extract(tt.input)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestExtractRoundTrip verifies that any marshaled value survives extraction
// whether bare, fenced, or buried in prose.
func TestExtractRoundTrip(t *testing.T) {
	t.Parallel()
	values := []any{
		map[string]any{"title": "Q3 strategy", "score": float64(88), "tags": []any{"a", "b"}},
		[]any{map[string]any{"date": "2026-03-01"}, map[string]any{"date": "2026-03-08"}},
		map[string]any{"nested": map[string]any{"list": []any{float64(1), float64(2)}}},
	}

	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		for _, wrapped := range []string{
			string(raw),
			"```json\n" + string(raw) + "\n```",
			"preamble text " + string(raw) + " trailing text",
		} {
			got, err := Extract(wrapped)
			if err != nil {
				t.Fatalf("Extract(%q) error = %v", wrapped, err)
			}
			if diff := cmp.Diff(v, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", wrapped, diff)
			}
		}
	}
}

func TestExtractFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{{
		name:    "no json at all",
		input:   "no json here",
		wantErr: ErrNoJSON,
	}, {
		name:    "empty input",
		input:   "",
		wantErr: ErrNoJSON,
	}, {
		name:    "unterminated object",
		input:   `{"unterminated": true`,
		wantErr: ErrUnterminated,
	}, {
		name:    "unterminated array",
		input:   `[1, 2, 3`,
		wantErr: ErrUnterminated,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Extract(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractInvalidSyntax(t *testing.T) {
	t.Parallel()
	_, err := Extract("{bad: json}")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Extract() error = %v, want *SyntaxError", err)
	}
	if syntaxErr.Fragment != "{bad: json}" {
		t.Errorf("Fragment = %q, want the offending substring", syntaxErr.Fragment)
	}
}

// TestExtractBracketNaivety pins the known limitation: close delimiters inside
// string literals are counted by the scanner, so a brace in a string value
// truncates the match. Callers rely on this lenient first-match behavior, so
// the test asserts the current behavior rather than correctness.
func TestExtractBracketNaivety(t *testing.T) {
	t.Parallel()
	_, err := Extract(`{"a": "} "}`)
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Extract() error = %v, want *SyntaxError from the truncated slice", err)
	}
	// The scanner stops at the brace inside the string literal.
	if syntaxErr.Fragment != `{"a": "}` {
		t.Errorf("Fragment = %q, want truncated slice %q", syntaxErr.Fragment, `{"a": "}`)
	}
}
