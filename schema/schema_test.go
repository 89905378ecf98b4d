/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"testing"

	"chainguard.dev/brandaf/schema"
	"google.golang.org/genai"
)

func TestForType(t *testing.T) {
	type nested struct {
		Channel string `json:"channel" jsonschema:"description=Publishing channel,enum=Instagram,enum=LinkedIn"`
	}
	type sample struct {
		Title  string  `json:"title" jsonschema:"description=Post title,required"`
		Score  float64 `json:"score,omitempty"`
		Count  int     `json:"count,omitempty"`
		Live   bool    `json:"live,omitempty"`
		Nested *nested `json:"nested,omitempty"`
		Tags   []string `json:"tags,omitempty"`
	}

	s := schema.ForType[sample]()
	if s == nil {
		t.Fatal("expected schema")
	}
	if s.Type != genai.TypeObject {
		t.Fatalf("unexpected type: %v", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "title" {
		t.Fatalf("unexpected required: %#v", s.Required)
	}

	title, ok := s.Properties["title"]
	if !ok {
		t.Fatal("missing title property")
	}
	if title.Type != genai.TypeString || title.Description != "Post title" {
		t.Fatalf("unexpected title schema: %#v", title)
	}

	for field, want := range map[string]genai.Type{
		"score": genai.TypeNumber,
		"count": genai.TypeInteger,
		"live":  genai.TypeBoolean,
		"tags":  genai.TypeArray,
	} {
		prop, ok := s.Properties[field]
		if !ok {
			t.Fatalf("missing %s property", field)
		}
		if prop.Type != want {
			t.Errorf("%s type = %v, want %v", field, prop.Type, want)
		}
	}

	tags := s.Properties["tags"]
	if tags.Items == nil || tags.Items.Type != genai.TypeString {
		t.Fatalf("unexpected tags items: %#v", tags.Items)
	}

	nestedSchema, ok := s.Properties["nested"]
	if !ok {
		t.Fatal("missing nested property")
	}
	channel, ok := nestedSchema.Properties["channel"]
	if !ok {
		t.Fatal("missing nested channel property")
	}
	if len(channel.Enum) != 2 || channel.Enum[0] != "Instagram" || channel.Enum[1] != "LinkedIn" {
		t.Fatalf("unexpected enum: %#v", channel.Enum)
	}
}

func TestForTypePropertyOrdering(t *testing.T) {
	type ordered struct {
		First  string `json:"first"`
		Second string `json:"second"`
		Third  string `json:"third"`
	}

	s := schema.ForType[ordered]()
	want := []string{"first", "second", "third"}
	if len(s.PropertyOrdering) != len(want) {
		t.Fatalf("ordering = %#v, want %#v", s.PropertyOrdering, want)
	}
	for i, name := range want {
		if s.PropertyOrdering[i] != name {
			t.Fatalf("ordering = %#v, want %#v", s.PropertyOrdering, want)
		}
	}
}

func TestForSlice(t *testing.T) {
	type item struct {
		Name string `json:"name" jsonschema:"required"`
	}

	s := schema.ForSlice[item]()
	if s.Type != genai.TypeArray {
		t.Fatalf("unexpected type: %v", s.Type)
	}
	if s.Items == nil || s.Items.Type != genai.TypeObject {
		t.Fatalf("unexpected items: %#v", s.Items)
	}
	if len(s.Items.Required) != 1 || s.Items.Required[0] != "name" {
		t.Fatalf("unexpected required: %#v", s.Items.Required)
	}
}
