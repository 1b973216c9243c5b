package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/storygen-hq/storygen/pkg/model"
)

var fencedJSONPattern = regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Parser extracts structured test cases from raw completion output.
// A Parser is stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a response parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a raw completion into a Response. JSON extraction is
// attempted first; when no JSON can be recovered the text fallback runs.
// Parse never fails: the worst outcome is a Response with no cases,
// recorded errors and confidence 0.
func (p *Parser) Parse(raw string) *Response {
	resp := &Response{
		RawContent:       raw,
		PersonaTestCases: map[string][]model.TestCase{},
		Summary:          map[string]any{},
	}

	if data, ok := ExtractJSON(raw); ok {
		p.parseJSON(data, resp)
	} else {
		resp.TestCases = p.parseText(raw, &resp.ParsingErrors)
	}

	resp.TestCases = validateTestCases(resp.TestCases, &resp.ParsingErrors)
	for persona, cases := range resp.PersonaTestCases {
		resp.PersonaTestCases[persona] = validateTestCases(cases, &resp.ParsingErrors)
	}

	resp.ConfidenceScore = confidenceScore(resp.TestCases, len(resp.ParsingErrors))
	resp.ParsingSuccess = len(resp.ParsingErrors) == 0

	log.Debug().
		Int("test_cases", len(resp.TestCases)).
		Int("parsing_errors", len(resp.ParsingErrors)).
		Float64("confidence", resp.ConfidenceScore).
		Msg("parsed completion response")

	return resp
}

// ExtractJSON recovers a JSON object from raw model output. Fenced code
// blocks are scanned first; if none parse, the substring between the
// first '{' and the last '}' is tried.
func ExtractJSON(text string) (json.RawMessage, bool) {
	for _, match := range fencedJSONPattern.FindAllStringSubmatch(text, -1) {
		candidate := []byte(match[1])
		if json.Valid(candidate) {
			return candidate, true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		candidate := []byte(text[start : end+1])
		if json.Valid(candidate) {
			return candidate, true
		}
	}

	return nil, false
}

// wireResponse is the tolerant wire shape: each case decodes on its own
// so one malformed case does not sink the rest.
type wireResponse struct {
	TestCases             []json.RawMessage            `json:"test_cases"`
	PersonaTestCases      map[string][]json.RawMessage `json:"persona_test_cases"`
	CrossPersonaScenarios []model.CrossPersonaScenario `json:"cross_persona_scenarios"`
	Summary               map[string]any               `json:"summary"`
}

type wireTestCase struct {
	Title                    string            `json:"title"`
	Description              string            `json:"description"`
	Prerequisites            []string          `json:"prerequisites"`
	TestSteps                []json.RawMessage `json:"test_steps"`
	ExpectedFinalResult      string            `json:"expected_final_result"`
	Classification           string            `json:"classification"`
	Priority                 string            `json:"priority"`
	TestType                 string            `json:"test_type"`
	EstimatedDuration        int               `json:"estimated_duration"`
	Tags                     []string          `json:"tags"`
	Persona                  string            `json:"persona"`
	PersonaContext           string            `json:"persona_context"`
	PermissionValidations    []string          `json:"permission_validations"`
	CrossPersonaInteractions []string          `json:"cross_persona_interactions"`
}

type wireStep struct {
	StepNumber     int            `json:"step_number"`
	Action         string         `json:"action"`
	ExpectedResult string         `json:"expected_result"`
	TestData       map[string]any `json:"test_data"`
}

func (p *Parser) parseJSON(data json.RawMessage, resp *Response) {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		resp.ParsingErrors = append(resp.ParsingErrors, fmt.Sprintf("structured response did not match expected shape: %v", err))
		return
	}

	if wire.Summary != nil {
		resp.Summary = wire.Summary
	}
	resp.CrossPersonaScenarios = wire.CrossPersonaScenarios

	for _, rawCase := range wire.TestCases {
		tc, err := decodeTestCase(rawCase)
		if err != nil {
			resp.ParsingErrors = append(resp.ParsingErrors, fmt.Sprintf("error parsing test case: %v", err))
			continue
		}
		resp.TestCases = append(resp.TestCases, tc)
	}

	for persona, rawCases := range wire.PersonaTestCases {
		cases := make([]model.TestCase, 0, len(rawCases))
		for _, rawCase := range rawCases {
			tc, err := decodeTestCase(rawCase)
			if err != nil {
				resp.ParsingErrors = append(resp.ParsingErrors, fmt.Sprintf("error parsing persona test case for %s: %v", persona, err))
				continue
			}
			tc.Persona = persona
			cases = append(cases, tc)
		}
		resp.PersonaTestCases[persona] = cases
	}
}

func decodeTestCase(raw json.RawMessage) (model.TestCase, error) {
	var wire wireTestCase
	if err := json.Unmarshal(raw, &wire); err != nil {
		return model.TestCase{}, err
	}

	tc := model.TestCase{
		Title:                    wire.Title,
		Description:              wire.Description,
		Prerequisites:            wire.Prerequisites,
		ExpectedFinalResult:      wire.ExpectedFinalResult,
		Classification:           wire.Classification,
		Priority:                 wire.Priority,
		TestType:                 wire.TestType,
		EstimatedDuration:        wire.EstimatedDuration,
		Tags:                     wire.Tags,
		Persona:                  wire.Persona,
		PersonaContext:           wire.PersonaContext,
		PermissionValidations:    wire.PermissionValidations,
		CrossPersonaInteractions: wire.CrossPersonaInteractions,
	}

	if tc.Title == "" {
		tc.Title = "Untitled Test Case"
	}
	if tc.Classification == "" {
		tc.Classification = model.ClassificationManual
	}
	if tc.Priority == "" {
		tc.Priority = model.PriorityMedium
	}
	if tc.TestType == "" {
		tc.TestType = model.TestTypeFunctional
	}
	if tc.EstimatedDuration == 0 {
		tc.EstimatedDuration = model.DefaultEstimatedDuration
	}

	for _, rawStep := range wire.TestSteps {
		step, err := decodeStep(rawStep)
		if err != nil {
			return model.TestCase{}, fmt.Errorf("step: %w", err)
		}
		tc.TestSteps = append(tc.TestSteps, step)
	}
	// Models emit arbitrary or repeated step numbers; the contiguity
	// invariant is enforced here, not trusted from the wire.
	tc.RenumberSteps()

	return tc, nil
}

// decodeStep accepts either a step object or a bare string. A string
// becomes an action with an empty expected result.
func decodeStep(raw json.RawMessage) (model.TestStep, error) {
	var obj wireStep
	if err := json.Unmarshal(raw, &obj); err == nil {
		return model.TestStep{
			StepNumber:     obj.StepNumber,
			Action:         obj.Action,
			ExpectedResult: obj.ExpectedResult,
			TestData:       obj.TestData,
		}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return model.TestStep{Action: s}, nil
	}

	return model.TestStep{}, fmt.Errorf("unrecognized step shape: %s", truncate(string(raw), 80))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
