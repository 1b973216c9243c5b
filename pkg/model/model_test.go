package model

import "testing"

func TestDomainsOrder(t *testing.T) {
	// Detection tie-break depends on this exact order.
	want := []Domain{
		DomainEcommerce,
		DomainFinance,
		DomainHealthcare,
		DomainSaaS,
		DomainMobile,
		DomainAPI,
	}

	got := Domains()
	if len(got) != len(want) {
		t.Fatalf("Domains() returned %d domains, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Domains()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDomainValid(t *testing.T) {
	for _, d := range Domains() {
		if !d.Valid() {
			t.Errorf("%s should be valid", d)
		}
	}
	if !DomainGeneral.Valid() {
		t.Error("general should be valid")
	}
	if Domain("warehouse").Valid() {
		t.Error("unknown domain should not be valid")
	}
}

func TestGenerationTypeValid(t *testing.T) {
	valid := []GenerationType{
		GenerationStandard, GenerationPersona, GenerationEdgeCase,
		GenerationPerformance, GenerationSecurity,
	}
	for _, g := range valid {
		if !g.Valid() {
			t.Errorf("%s should be valid", g)
		}
	}
	if GenerationType("exploratory").Valid() {
		t.Error("unknown generation type should not be valid")
	}
}

func TestValidSets(t *testing.T) {
	if !ValidClassification(ClassificationAPIAutomation) {
		t.Error("api_automation should be a valid classification")
	}
	if ValidClassification("robot") {
		t.Error("robot should not be a valid classification")
	}
	if !ValidPriority(PriorityLow) {
		t.Error("low should be a valid priority")
	}
	if ValidPriority("blocker") {
		t.Error("blocker should not be a valid priority")
	}
	if !ValidTestType(TestTypeBoundary) {
		t.Error("boundary should be a valid test type")
	}
	if ValidTestType("smoke") {
		t.Error("smoke should not be a valid test type")
	}
}

func TestRenumberSteps(t *testing.T) {
	tc := TestCase{
		TestSteps: []TestStep{
			{StepNumber: 3, Action: "open app"},
			{StepNumber: 7, Action: "log in"},
			{StepNumber: 1, Action: "check dashboard"},
		},
	}

	tc.RenumberSteps()

	for i, step := range tc.TestSteps {
		if step.StepNumber != i+1 {
			t.Errorf("step %d has number %d, want %d", i, step.StepNumber, i+1)
		}
	}
}
