package model

// Automation classifications for a generated test case.
const (
	ClassificationManual        = "manual"
	ClassificationAPIAutomation = "api_automation"
	ClassificationUIAutomation  = "ui_automation"
)

// Priorities for a generated test case.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Test types for a generated test case.
const (
	TestTypeFunctional  = "functional"
	TestTypeIntegration = "integration"
	TestTypeBoundary    = "boundary"
	TestTypeNegative    = "negative"
	TestTypePerformance = "performance"
	TestTypeSecurity    = "security"
)

// DefaultEstimatedDuration is applied when a case arrives with a
// non-positive duration, in minutes.
const DefaultEstimatedDuration = 10

// ValidClassification reports whether s is a member of the closed
// classification set.
func ValidClassification(s string) bool {
	switch s {
	case ClassificationManual, ClassificationAPIAutomation, ClassificationUIAutomation:
		return true
	}
	return false
}

// ValidPriority reports whether s is a member of the closed priority set.
func ValidPriority(s string) bool {
	switch s {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ValidTestType reports whether s is a member of the closed test type set.
func ValidTestType(s string) bool {
	switch s {
	case TestTypeFunctional, TestTypeIntegration, TestTypeBoundary,
		TestTypeNegative, TestTypePerformance, TestTypeSecurity:
		return true
	}
	return false
}

// TestStep is a single numbered action within a test case. Step numbers
// are contiguous starting at 1 within their parent case.
type TestStep struct {
	StepNumber     int            `json:"step_number"`
	Action         string         `json:"action"`
	ExpectedResult string         `json:"expected_result"`
	TestData       map[string]any `json:"test_data,omitempty"`
}

// TestCase is one structured test case extracted from a model response.
type TestCase struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Prerequisites       []string   `json:"prerequisites"`
	TestSteps           []TestStep `json:"test_steps"`
	ExpectedFinalResult string     `json:"expected_final_result"`
	Classification      string     `json:"classification"`
	Priority            string     `json:"priority"`
	TestType            string     `json:"test_type"`
	EstimatedDuration   int        `json:"estimated_duration"` // minutes
	Tags                []string   `json:"tags"`

	// Persona metadata, set only for persona-based generation.
	Persona                  string   `json:"persona,omitempty"`
	PersonaContext           string   `json:"persona_context,omitempty"`
	PermissionValidations    []string `json:"permission_validations,omitempty"`
	CrossPersonaInteractions []string `json:"cross_persona_interactions,omitempty"`
}

// CrossPersonaScenario records an interaction scenario spanning multiple
// personas. Steps keep their raw shape: scenario steps are free-form.
type CrossPersonaScenario struct {
	Title               string   `json:"title"`
	InvolvedPersonas    []string `json:"involved_personas"`
	ScenarioDescription string   `json:"scenario_description"`
	TestSteps           []any    `json:"test_steps,omitempty"`
}

// RenumberSteps rewrites step numbers to the contiguous sequence 1..n.
// JSON-sourced steps carry whatever numbering the model emitted, so the
// parser renumbers defensively on ingestion.
func (tc *TestCase) RenumberSteps() {
	for i := range tc.TestSteps {
		tc.TestSteps[i].StepNumber = i + 1
	}
}
