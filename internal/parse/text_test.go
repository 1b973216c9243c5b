package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storygen-hq/storygen/pkg/model"
)

const freeTextResponse = `Test Case 1
Title: Verify login with valid credentials
Description: A registered user signs in successfully
Steps:
enter username - field accepts input
enter password - field accepts input
press the login button - dashboard is displayed
Expected Result: User lands on the dashboard

Test Case 2
Title: Verify login rejects a wrong password. This is critical.
Description: Invalid credentials must not grant access
Steps:
enter username - field accepts input
enter a wrong password - field accepts input
press the login button - error message is displayed
Expected Result: Access is denied with a clear error`

func TestParseTextFallback(t *testing.T) {
	resp := NewParser().Parse(freeTextResponse)

	require.Len(t, resp.TestCases, 2)

	first := resp.TestCases[0]
	assert.Equal(t, "Verify login with valid credentials", first.Title)
	assert.Equal(t, "A registered user signs in successfully", first.Description)
	assert.Equal(t, "User lands on the dashboard", first.ExpectedFinalResult)
	require.Len(t, first.TestSteps, 3)
	assert.Equal(t, "enter username", first.TestSteps[0].Action)
	assert.Equal(t, "field accepts input", first.TestSteps[0].ExpectedResult)
	assert.Equal(t, 1, first.TestSteps[0].StepNumber)
	assert.Equal(t, 3, first.TestSteps[2].StepNumber)

	second := resp.TestCases[1]
	assert.Equal(t, model.PriorityHigh, second.Priority)
}

func TestParseTextClassification(t *testing.T) {
	text := `Test Case 1
Title: Exercise the orders endpoint with expired tokens
Steps:
Call the endpoint with an expired token - 401 returned
Expected: request rejected

Test Case 2
Title: Confirm the page updates after you click save
Steps:
Click the save button in the browser - toast appears
Expected: changes persisted`

	resp := NewParser().Parse(text)

	require.Len(t, resp.TestCases, 2)
	assert.Equal(t, model.ClassificationAPIAutomation, resp.TestCases[0].Classification)
	assert.Equal(t, model.ClassificationUIAutomation, resp.TestCases[1].Classification)
}

func TestParseTextMarkdownHeaders(t *testing.T) {
	text := `## Test the password reset flow
Description: A user can recover their account
Steps:
Request a reset email - email arrives
Follow the link - reset form shown
Expected: password is changed

## Test reset link expiry handling
Description: Stale links are refused
Steps:
Open a link older than 24 hours - expiry notice shown
Expected: user is prompted to request a new link`

	resp := NewParser().Parse(text)

	assert.Len(t, resp.TestCases, 2)
}

func TestParseTextBlankLineBlocks(t *testing.T) {
	// No recognizable headers: blocks longer than 50 chars become cases.
	text := `The user should be able to update their avatar and see the change reflected immediately across the application.

short

Whenever a session expires the application must redirect to the sign-in page and preserve the return URL for after login.`

	sections := splitIntoSections(text)
	assert.Len(t, sections, 2)
}

func TestParseTextNoContent(t *testing.T) {
	resp := NewParser().Parse("ok")

	assert.Empty(t, resp.TestCases)
	assert.Equal(t, 0.0, resp.ConfidenceScore)
}

func TestExtractPriorityKeywords(t *testing.T) {
	assert.Equal(t, model.PriorityHigh, extractPriority("this is urgent"))
	assert.Equal(t, model.PriorityLow, extractPriority("nice to have polish"))
	assert.Equal(t, model.PriorityMedium, extractPriority("regular flow"))
}
