package parse

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storygen-hq/storygen/pkg/model"
)

// fullCase returns a JSON test case that scores the per-case maximum.
func fullCase(n int) string {
	return fmt.Sprintf(`{
		"title": "Verify checkout path %d",
		"description": "A returning customer completes checkout with a saved card",
		"prerequisites": ["account exists", "cart has items"],
		"test_steps": [
			{"step_number": 1, "action": "open cart", "expected_result": "cart page shown"},
			{"step_number": 2, "action": "start checkout", "expected_result": "address form shown"},
			{"step_number": 3, "action": "confirm address", "expected_result": "payment form shown"},
			{"step_number": 4, "action": "select saved card", "expected_result": "card selected"},
			{"step_number": 5, "action": "place order", "expected_result": "order confirmation shown"},
			{"step_number": 6, "action": "check email", "expected_result": "receipt received"}
		],
		"expected_final_result": "Order is placed and confirmed",
		"classification": "ui_automation",
		"priority": "high",
		"test_type": "functional",
		"estimated_duration": 15,
		"tags": ["checkout", "payments"]
	}`, n)
}

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "Here are your test cases:\n```json\n{\"test_cases\": []}\n```\nDone."

	data, ok := ExtractJSON(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"test_cases": []}`, string(data))
}

func TestExtractJSONBareFence(t *testing.T) {
	text := "```\n{\"summary\": {}}\n```"

	data, ok := ExtractJSON(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"summary": {}}`, string(data))
}

func TestExtractJSONBraceFallback(t *testing.T) {
	text := `The result is {"test_cases": [], "summary": {"total": 0}} as requested.`

	data, ok := ExtractJSON(text)
	require.True(t, ok)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Contains(t, parsed, "test_cases")
}

func TestExtractJSONNone(t *testing.T) {
	_, ok := ExtractJSON("no structured content here")
	assert.False(t, ok)

	_, ok = ExtractJSON("broken { not json )")
	assert.False(t, ok)
}

func TestParseWellFormedJSON(t *testing.T) {
	raw := fmt.Sprintf("```json\n{\"test_cases\": [%s, %s, %s], \"summary\": {\"total_test_cases\": 3}}\n```",
		fullCase(1), fullCase(2), fullCase(3))

	resp := NewParser().Parse(raw)

	require.Len(t, resp.TestCases, 3)
	assert.True(t, resp.ParsingSuccess)
	assert.Empty(t, resp.ParsingErrors)
	assert.Equal(t, 1.0, resp.ConfidenceScore)
	assert.Equal(t, raw, resp.RawContent)
	assert.Equal(t, float64(3), resp.Summary["total_test_cases"])

	tc := resp.TestCases[0]
	assert.Equal(t, "Verify checkout path 1", tc.Title)
	assert.Equal(t, model.ClassificationUIAutomation, tc.Classification)
	assert.Equal(t, 15, tc.EstimatedDuration)
	assert.Len(t, tc.TestSteps, 6)
}

func TestParseRenumbersSteps(t *testing.T) {
	raw := `{"test_cases": [{
		"title": "Steps arrive shuffled",
		"description": "model emitted odd numbering",
		"test_steps": [
			{"step_number": 4, "action": "a"},
			{"step_number": 4, "action": "b"},
			{"step_number": 9, "action": "c"}
		]
	}]}`

	resp := NewParser().Parse(raw)

	require.Len(t, resp.TestCases, 1)
	for i, step := range resp.TestCases[0].TestSteps {
		assert.Equal(t, i+1, step.StepNumber)
	}
}

func TestParseStringSteps(t *testing.T) {
	raw := `{"test_cases": [{
		"title": "String steps",
		"description": "steps are plain strings",
		"test_steps": ["open the page", "press submit"]
	}]}`

	resp := NewParser().Parse(raw)

	require.Len(t, resp.TestCases, 1)
	steps := resp.TestCases[0].TestSteps
	require.Len(t, steps, 2)
	assert.Equal(t, "open the page", steps[0].Action)
	assert.Equal(t, "", steps[0].ExpectedResult)
	assert.Equal(t, 1, steps[0].StepNumber)
	assert.Equal(t, 2, steps[1].StepNumber)
}

func TestParseDefaultsApplied(t *testing.T) {
	raw := `{"test_cases": [{
		"title": "Needs defaults everywhere",
		"description": "a case with only the basics",
		"test_steps": [{"action": "do the thing"}],
		"classification": "robotic",
		"priority": "blocker",
		"test_type": "smoke",
		"estimated_duration": -5
	}]}`

	resp := NewParser().Parse(raw)

	require.Len(t, resp.TestCases, 1)
	tc := resp.TestCases[0]
	assert.Equal(t, model.ClassificationManual, tc.Classification)
	assert.Equal(t, model.PriorityMedium, tc.Priority)
	assert.Equal(t, model.TestTypeFunctional, tc.TestType)
	assert.Equal(t, model.DefaultEstimatedDuration, tc.EstimatedDuration)
}

func TestParseDropsSteplessCase(t *testing.T) {
	raw := fmt.Sprintf(`{"test_cases": [%s, {"title": "No steps here", "description": "long enough description"}]}`, fullCase(1))

	resp := NewParser().Parse(raw)

	require.Len(t, resp.TestCases, 1)
	assert.False(t, resp.ParsingSuccess)
	require.NotEmpty(t, resp.ParsingErrors)
	assert.Contains(t, resp.ParsingErrors[0], "missing test steps")
}

func TestParseMalformedCaseAmongGood(t *testing.T) {
	raw := fmt.Sprintf(`{"test_cases": [%s, {"title": 42}]}`, fullCase(1))

	resp := NewParser().Parse(raw)

	require.Len(t, resp.TestCases, 1)
	assert.False(t, resp.ParsingSuccess)
	assert.NotEmpty(t, resp.ParsingErrors)
}

func TestParsePersonaCases(t *testing.T) {
	raw := `{
		"persona_test_cases": {
			"admin": [{
				"title": "Admin invites a member",
				"description": "admins can grow the workspace",
				"test_steps": [{"action": "open settings", "expected_result": "settings shown"}],
				"permission_validations": ["admin role required"]
			}]
		},
		"cross_persona_scenarios": [{
			"title": "Admin and viewer review together",
			"involved_personas": ["admin", "viewer"],
			"scenario_description": "shared review session"
		}]
	}`

	resp := NewParser().Parse(raw)

	require.Contains(t, resp.PersonaTestCases, "admin")
	require.Len(t, resp.PersonaTestCases["admin"], 1)
	assert.Equal(t, "admin", resp.PersonaTestCases["admin"][0].Persona)
	require.Len(t, resp.CrossPersonaScenarios, 1)
	assert.Equal(t, []string{"admin", "viewer"}, resp.CrossPersonaScenarios[0].InvolvedPersonas)
}

func TestParseEmptyResponse(t *testing.T) {
	resp := NewParser().Parse("")

	assert.Empty(t, resp.TestCases)
	assert.Equal(t, 0.0, resp.ConfidenceScore)
}

func TestConfidenceScoreBounds(t *testing.T) {
	cases := []model.TestCase{
		{Title: "x", TestSteps: []model.TestStep{{Action: "a"}}},
		{
			Title:               "A perfectly complete test case",
			Description:         "This description is long enough to score",
			TestSteps:           make([]model.TestStep, 8),
			ExpectedFinalResult: "done",
			Classification:      model.ClassificationManual,
			Priority:            model.PriorityLow,
			TestType:            model.TestTypeNegative,
		},
	}

	for errs := 0; errs < 30; errs++ {
		score := confidenceScore(cases, errs)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}

	assert.Equal(t, 0.0, confidenceScore(nil, 0))
}

func TestConfidenceScoreErrorPenalty(t *testing.T) {
	// One full case scores 100; each error removes 10 points from the
	// raw sum before normalizing.
	tc := model.TestCase{
		Title:               "A perfectly complete test case",
		Description:         "This description is long enough to score",
		TestSteps:           make([]model.TestStep, 6),
		ExpectedFinalResult: "done",
		Classification:      model.ClassificationManual,
		Priority:            model.PriorityLow,
		TestType:            model.TestTypeNegative,
	}

	assert.InDelta(t, 1.0, confidenceScore([]model.TestCase{tc}, 0), 1e-9)
	assert.InDelta(t, 0.9, confidenceScore([]model.TestCase{tc}, 1), 1e-9)
	assert.InDelta(t, 0.7, confidenceScore([]model.TestCase{tc}, 3), 1e-9)
}

func TestValidateFormat(t *testing.T) {
	p := NewParser()
	expected := []string{"test_cases", "summary"}

	valid := fmt.Sprintf(`{"test_cases": [%s], "summary": {}}`, fullCase(1))
	report := p.ValidateFormat(valid, expected)
	assert.True(t, report.IsValid)
	assert.Equal(t, 1.0, report.StructureScore)

	missingSummary := fmt.Sprintf(`{"test_cases": [%s]}`, fullCase(1))
	report = p.ValidateFormat(missingSummary, expected)
	assert.False(t, report.IsValid)
	assert.Contains(t, report.MissingFields, "summary")
	assert.Equal(t, 0.5, report.StructureScore)

	missingCaseField := `{"test_cases": [{"title": "only a title"}], "summary": {}}`
	report = p.ValidateFormat(missingCaseField, expected)
	assert.False(t, report.IsValid)
	assert.Contains(t, report.MissingFields, "test_cases[0].description")
	assert.Contains(t, report.MissingFields, "test_cases[0].test_steps")

	report = p.ValidateFormat("free text only", expected)
	assert.False(t, report.IsValid)
	assert.NotEmpty(t, report.FormatErrors)
}
