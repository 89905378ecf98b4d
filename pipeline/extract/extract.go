/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package extract recovers a single JSON value from raw model output.
//
// Model responses frequently wrap the requested JSON in markdown fences or
// surround it with prose. Extract peels those layers off and parses whatever
// object or array it finds first. It is a pure function with no side effects
// so it can be tested in isolation.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoJSON indicates the text contains neither a '{' nor a '['.
	ErrNoJSON = errors.New("no JSON object or array found in response")

	// ErrUnterminated indicates a start delimiter was found but the matching
	// close delimiter never appeared (typically a truncated response).
	ErrUnterminated = errors.New("could not find matching close delimiter for JSON value")
)

// SyntaxError reports that the extracted substring was not valid JSON.
// Fragment carries the offending substring for diagnostics.
type SyntaxError struct {
	Fragment string
	Err      error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("extracted text is not valid JSON: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// fenceRegexp matches the first ```json fenced block, capturing its body.
var fenceRegexp = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Extract returns the first JSON object or array embedded in text.
//
// The scan is a naive bracket matcher: it counts open and close delimiters of
// the chosen pair without skipping delimiters that appear inside string
// literals. A brace inside a string value can therefore end the scan early.
// This matches the established behavior that downstream prompts rely on and
// is pinned by tests rather than fixed.
func Extract(text string) (any, error) {
	working := strings.TrimSpace(text)

	// Prefer the body of the first ```json fence when one is present.
	if m := fenceRegexp.FindStringSubmatch(working); m != nil {
		working = m[1]
	}

	firstBrace := strings.IndexByte(working, '{')
	firstBracket := strings.IndexByte(working, '[')

	start := -1
	switch {
	case firstBrace == -1:
		start = firstBracket
	case firstBracket == -1:
		start = firstBrace
	default:
		start = min(firstBrace, firstBracket)
	}
	if start == -1 {
		return nil, ErrNoJSON
	}

	open := working[start]
	var closing byte = '}'
	if open == '[' {
		closing = ']'
	}

	depth := 0
	end := -1
	for i := start; i < len(working); i++ {
		switch working[i] {
		case open:
			depth++
		case closing:
			depth--
		}
		if depth == 0 {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, ErrUnterminated
	}

	fragment := working[start : end+1]

	var value any
	if err := json.Unmarshal([]byte(fragment), &value); err != nil {
		return nil, &SyntaxError{Fragment: fragment, Err: err}
	}
	return value, nil
}
