/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives Gemini response schemas from Go result types, so
// structured-output requests stay in sync with the structs they decode into.
package schema

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// Generator wraps jsonschema.Reflector with project defaults.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator wired with the defaults we need for
// response schemas.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// ForType reflects T and converts the result to the genai schema dialect.
func ForType[T any]() *genai.Schema {
	typ := reflect.TypeFor[T]()
	var value any
	if typ.Kind() == reflect.Pointer {
		value = reflect.New(typ.Elem()).Interface()
	} else {
		value = reflect.New(typ).Interface()
	}
	return ToGenai(NewGenerator().Reflect(value))
}

// ForSlice reflects T and wraps the converted schema in an array, for
// requests whose top-level response is a JSON array of T.
func ForSlice[T any]() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: ForType[T](),
	}
}

// ToGenai converts a reflected JSON schema into the genai dialect. The
// Gemini API accepts a subset of JSON Schema, so only the supported fields
// carry over.
func ToGenai(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Title:       s.Title,
		Format:      s.Format,
	}

	if t := mapSchemaType(s.Type); t != "" {
		out.Type = t
	}

	if len(s.Enum) > 0 {
		out.Enum = make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			out.Enum = append(out.Enum, fmt.Sprint(v))
		}
	}

	if len(s.Required) > 0 {
		out.Required = append(out.Required, s.Required...)
	}

	if s.Pattern != "" {
		out.Pattern = s.Pattern
	}
	if s.MaxItems != nil {
		v := int64(*s.MaxItems)
		out.MaxItems = &v
	}
	if s.MinItems != nil {
		v := int64(*s.MinItems)
		out.MinItems = &v
	}

	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		ordering := make([]string, 0, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = ToGenai(pair.Value)
			ordering = append(ordering, pair.Key)
		}
		if len(ordering) > 0 {
			out.PropertyOrdering = ordering
		}
	}

	if s.Items != nil {
		out.Items = ToGenai(s.Items)
	}

	return out
}

func mapSchemaType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return ""
	}
}
