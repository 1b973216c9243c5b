package generate

import (
	"errors"
	"fmt"

	"github.com/storygen-hq/storygen/pkg/model"
)

const (
	defaultMaxTestCases     = 12
	defaultQualityThreshold = 0.75
)

// Request describes one test case generation job. Domain and Complexity
// are optional; when absent they are inferred from the story text.
type Request struct {
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	AcceptanceCriteria string               `json:"acceptance_criteria"`
	Domain             model.Domain         `json:"domain,omitempty"`
	Complexity         model.Complexity     `json:"complexity,omitempty"`
	GenerationType     model.GenerationType `json:"generation_type,omitempty"`
	Personas           []string             `json:"personas,omitempty"`
	BusinessRules      []string             `json:"business_rules,omitempty"`
	AdditionalContext  map[string]any       `json:"additional_context,omitempty"`
	MaxTestCases       int                  `json:"max_test_cases,omitempty"`
	QualityThreshold   float64              `json:"quality_threshold,omitempty"`
}

// normalize applies defaults and validates the request in place.
func (r *Request) normalize() error {
	if r.Title == "" {
		return errors.New("story title is required")
	}
	if r.Description == "" {
		return errors.New("story description is required")
	}

	if r.GenerationType == "" {
		r.GenerationType = model.GenerationStandard
	}
	if !r.GenerationType.Valid() {
		return fmt.Errorf("unknown generation type %q", r.GenerationType)
	}
	if r.Domain != "" && !r.Domain.Valid() {
		return fmt.Errorf("unknown domain %q", r.Domain)
	}
	if r.Complexity != "" && !r.Complexity.Valid() {
		return fmt.Errorf("unknown complexity %q", r.Complexity)
	}

	if r.MaxTestCases == 0 {
		r.MaxTestCases = defaultMaxTestCases
	}
	if r.MaxTestCases < 0 {
		return fmt.Errorf("max test cases must be positive, got %d", r.MaxTestCases)
	}

	if r.QualityThreshold == 0 {
		r.QualityThreshold = defaultQualityThreshold
	}
	if r.QualityThreshold < 0 || r.QualityThreshold > 1 {
		return fmt.Errorf("quality threshold must be in [0, 1], got %g", r.QualityThreshold)
	}

	return nil
}
