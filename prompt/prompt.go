/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prompt builds model prompts from templates with {{name}}
// placeholders. Structured inputs are bound through a marshaler rather than
// interpolated by hand, keeping user data out of the template string itself.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// binder produces the replacement text for one placeholder.
type binder interface {
	value() (string, error)
}

type unbound struct{ name string }

func (u unbound) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

type literal struct{ val string }

func (l literal) value() (string, error) { return l.val, nil }

type jsonBinder struct{ data any }

func (j jsonBinder) value() (string, error) {
	bytes, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(bytes), nil
}

type yamlBinder struct{ data any }

func (y yamlBinder) value() (string, error) {
	bytes, err := yaml.Marshal(y.data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(bytes), nil
}

// Template is a prompt template with named placeholders. Bind calls return
// a copy, so a parsed template can be shared and bound per request.
type Template struct {
	text     string
	bindings map[string]binder
}

// New parses a template and records its placeholders.
func New(text string) (*Template, error) {
	bindings := make(map[string]binder)
	if _, err := walk(text, func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = unbound{name: name}
		}
		return "", nil
	}); err != nil {
		return nil, err
	}
	return &Template{text: text, bindings: bindings}, nil
}

// Must parses a template and panics on error. Templates are package-level
// constants, so a parse failure is a programming error.
func Must(text string) *Template {
	t, err := New(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Placeholders returns the names of all placeholders found in the template.
func (t *Template) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(t.bindings))
	for name := range t.bindings {
		names[name] = struct{}{}
	}
	return names
}

// Bind binds a plain string to a placeholder.
func (t *Template) Bind(name, value string) (*Template, error) {
	return t.set(name, literal{val: value})
}

// BindJSON binds structured data to a placeholder, rendered as indented JSON.
func (t *Template) BindJSON(name string, data any) (*Template, error) {
	return t.set(name, jsonBinder{data: data})
}

// BindYAML binds structured data to a placeholder, rendered as YAML.
func (t *Template) BindYAML(name string, data any) (*Template, error) {
	return t.set(name, yamlBinder{data: data})
}

func (t *Template) set(name string, b binder) (*Template, error) {
	existing, exists := t.bindings[name]
	if !exists {
		return nil, fmt.Errorf("binding %q not found in template", name)
	}
	if _, isUnbound := existing.(unbound); !isUnbound {
		return nil, fmt.Errorf("binding %q already bound", name)
	}
	next := &Template{text: t.text, bindings: maps.Clone(t.bindings)}
	next.bindings[name] = b
	return next, nil
}

// Build renders the template, failing if any placeholder is still unbound.
func (t *Template) Build() (string, error) {
	values := make(map[string]string, len(t.bindings))
	for name, b := range t.bindings {
		val, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}
	return walk(t.text, func(name string) (string, error) {
		return values[name], nil
	})
}

// walk tokenizes the template and calls resolve for each placeholder.
func walk(text string, resolve func(name string) (string, error)) (string, error) {
	var result strings.Builder
	for len(text) > 0 {
		start := strings.Index(text, "{{")
		if start == -1 {
			result.WriteString(text)
			break
		}
		result.WriteString(text[:start])

		end := strings.Index(text[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed placeholder: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(text[start+2 : end-2])
		if !isIdentifier(name) {
			return "", fmt.Errorf("invalid placeholder identifier %q", name)
		}
		replacement, err := resolve(name)
		if err != nil {
			return "", err
		}
		result.WriteString(replacement)

		text = text[end:]
	}
	return result.String(), nil
}

// isIdentifier reports whether s starts with a letter and contains only
// letters, digits, and underscores.
func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return s != ""
}
