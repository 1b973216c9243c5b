// Package prompt manages the registry of generation prompt templates and
// renders them against a per-request context. Templates are immutable
// after registration; lookups return copies so administrative updates
// never affect in-flight renders.
package prompt

import (
	"github.com/storygen-hq/storygen/pkg/model"
)

// Context carries everything a template render needs for one generation
// attempt. It is owned by that attempt and never shared across requests.
type Context struct {
	Domain         model.Domain
	Complexity     model.Complexity
	GenerationType model.GenerationType

	Title              string
	Description        string
	AcceptanceCriteria string

	Personas      []string
	BusinessRules []string

	// AdditionalContext is an open key-value bag, e.g. quality-retry
	// hints injected by the orchestrator.
	AdditionalContext map[string]any
}

// Template describes one prompt template. UserPromptTemplate is written
// in text/template syntax over the Context fields.
type Template struct {
	Name               string               `yaml:"name"`
	Domain             model.Domain         `yaml:"domain"`
	Complexity         model.Complexity     `yaml:"complexity"`
	GenerationType     model.GenerationType `yaml:"generation_type"`
	SystemPrompt       string               `yaml:"system_prompt"`
	UserPromptTemplate string               `yaml:"user_prompt"`
	ExpectedFormat     string               `yaml:"expected_format"`
	QualityCriteria    []string             `yaml:"quality_criteria"`
	TokenEstimate      int                  `yaml:"token_estimate"`
	Version            string               `yaml:"version"`
}

// Rendered is the output of rendering a template against a context.
type Rendered struct {
	SystemPrompt    string
	UserPrompt      string
	ExpectedFormat  string
	QualityCriteria []string
	TemplateName    string
	EstimatedTokens int
}
