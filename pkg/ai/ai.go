// Package ai wraps the generative model used by the advisory flows.
package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no model API key was provided.
var ErrNotConfigured = errors.New("generative model not configured")

// ErrEmptyResponse is returned when the model answered without text.
var ErrEmptyResponse = errors.New("generative model returned no content")

// Field is one property of a flow's structured output.
type Field struct {
	Name        string
	Description string
	List        bool
}

// OutputShape describes the JSON object a flow expects back. Every field is
// required.
type OutputShape struct {
	Fields []Field
}

// Schema converts the shape into a model response schema.
func (s OutputShape) Schema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	required := make([]string, 0, len(s.Fields))
	order := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		prop := &genai.Schema{Type: genai.TypeString, Description: f.Description}
		if f.List {
			prop = &genai.Schema{
				Type:        genai.TypeArray,
				Description: f.Description,
				Items:       &genai.Schema{Type: genai.TypeString},
			}
		}
		props[f.Name] = prop
		required = append(required, f.Name)
		order = append(order, f.Name)
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         required,
		PropertyOrdering: order,
	}
}

// Generator produces a JSON document matching shape for the given prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, shape OutputShape) (string, error)
}

// Prompt is a fixed prompt template with named inputs.
type Prompt struct {
	tmpl *template.Template
}

// NewPrompt parses a prompt template. Inputs are referenced as {{.name}}.
func NewPrompt(name, text string) (*Prompt, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %s: %w", name, err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

// MustPrompt is NewPrompt for package level templates.
func MustPrompt(name, text string) *Prompt {
	p, err := NewPrompt(name, text)
	if err != nil {
		panic(err)
	}
	return p
}

// Render substitutes the inputs into the template.
func (p *Prompt) Render(inputs map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, inputs); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", p.tmpl.Name(), err)
	}
	return buf.String(), nil
}

// Disabled is the Generator used when no API key is configured.
type Disabled struct{}

// Generate always fails with ErrNotConfigured.
func (Disabled) Generate(context.Context, string, OutputShape) (string, error) {
	return "", ErrNotConfigured
}
