/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// ContentBlockedError indicates the safety filter rejected the prompt.
// Never retried: the same input produces the same block.
type ContentBlockedError struct {
	Reason string
}

func (e *ContentBlockedError) Error() string {
	return fmt.Sprintf("request blocked for safety reasons (%s)", e.Reason)
}

// EmptyResponseError indicates the model returned no candidates, or a
// candidate whose text trims to nothing. Retried: usually transient.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "model response contained no usable content"
}

// GenerationFailedError indicates the candidate finished for an abnormal
// reason (anything other than STOP or MAX_TOKENS). Retried.
type GenerationFailedError struct {
	Reason string
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("content generation failed with reason %s", e.Reason)
}

// MalformedResponseError indicates the model produced text that the extractor
// could not turn into a JSON value. Raw carries the complete response text:
// it is the only debugging aid available when the model breaks the contract.
// Not retried by the pipeline; the caller may retry the whole operation.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the retry executor should attempt the model call
// again. Safety blocks are permanent for a given prompt, cancellation is the
// caller's decision, and everything else (empty responses, abnormal finish
// reasons, transport failures) is treated as transient.
func Retryable(err error) bool {
	var blocked *ContentBlockedError
	if errors.As(err, &blocked) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// UserMessage maps a pipeline failure to a single human-readable message
// naming the failure category. The UI boundary displays it verbatim; model
// internals and stack traces never leak through here.
func UserMessage(err error) string {
	var blocked *ContentBlockedError
	var generation *GenerationFailedError
	var malformed *MalformedResponseError
	var empty *EmptyResponseError
	switch {
	case errors.As(err, &blocked):
		return fmt.Sprintf("Your request was blocked by the safety filter (%s). Please rephrase and try again.", blocked.Reason)
	case errors.As(err, &empty):
		return "The AI returned an empty response. This is usually temporary; try again or simplify your request."
	case errors.As(err, &generation):
		return fmt.Sprintf("Content generation failed (%s). Try again.", generation.Reason)
	case errors.As(err, &malformed):
		return "The AI response was not in the expected JSON format or was incomplete. Please try again."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was cancelled before it completed."
	default:
		return "The AI service could not be reached. Please try again."
	}
}
