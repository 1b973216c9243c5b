// Package parse turns raw completion output into structured test cases.
// Parsing is two-phase: a strict JSON decode into the typed model first,
// then a best-effort text extractor producing the same typed model when
// no JSON can be recovered. A confidence score in [0,1] measures the
// structural completeness of whatever survived.
package parse

import "github.com/storygen-hq/storygen/pkg/model"

// Response is the complete parse result for one completion.
type Response struct {
	TestCases             []model.TestCase             `json:"test_cases"`
	PersonaTestCases      map[string][]model.TestCase  `json:"persona_test_cases,omitempty"`
	CrossPersonaScenarios []model.CrossPersonaScenario `json:"cross_persona_scenarios,omitempty"`
	Summary               map[string]any               `json:"summary,omitempty"`

	// RawContent keeps the unmodified model output for audit.
	RawContent      string   `json:"raw_content"`
	ParsingSuccess  bool     `json:"parsing_success"`
	ParsingErrors   []string `json:"parsing_errors,omitempty"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// FormatReport is the outcome of validating a response against the
// expected output structure.
type FormatReport struct {
	IsValid        bool     `json:"is_valid"`
	MissingFields  []string `json:"missing_fields"`
	FormatErrors   []string `json:"format_errors"`
	StructureScore float64  `json:"structure_score"`
}
