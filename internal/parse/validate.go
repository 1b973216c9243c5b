package parse

import (
	"fmt"

	"github.com/storygen-hq/storygen/pkg/model"
)

// validateTestCases cleans each case and drops the unusable ones. A case
// without steps is unusable; everything else is coerced to defaults and
// kept, with the issue recorded as a parsing error where it indicates a
// quality problem.
func validateTestCases(cases []model.TestCase, parsingErrors *[]string) []model.TestCase {
	validated := make([]model.TestCase, 0, len(cases))

	for i, tc := range cases {
		if tc.Title == "" {
			tc.Title = fmt.Sprintf("Test Case %d", i+1)
		}
		if tc.Description == "" {
			*parsingErrors = append(*parsingErrors, fmt.Sprintf("test case %q missing description", tc.Title))
		}
		if len(tc.TestSteps) == 0 {
			*parsingErrors = append(*parsingErrors, fmt.Sprintf("test case %q missing test steps", tc.Title))
			continue
		}

		if !model.ValidClassification(tc.Classification) {
			tc.Classification = model.ClassificationManual
		}
		if !model.ValidPriority(tc.Priority) {
			tc.Priority = model.PriorityMedium
		}
		if !model.ValidTestType(tc.TestType) {
			tc.TestType = model.TestTypeFunctional
		}
		if tc.EstimatedDuration <= 0 {
			tc.EstimatedDuration = model.DefaultEstimatedDuration
		}

		tc.RenumberSteps()
		validated = append(validated, tc)
	}

	return validated
}

// confidenceScore measures structural completeness of the validated
// cases. Each case is scored out of 100:
//
//	title longer than 5 chars        20
//	description longer than 10 chars 15
//	steps                            min(30, stepCount*5)
//	final expected result            15
//	valid classification             10
//	valid priority                    5
//	test type present                 5
//
// Parsing errors subtract 10 points each from the raw sum before
// normalizing by caseCount*100. The result is clamped to [0,1]; zero
// cases score 0.
func confidenceScore(cases []model.TestCase, errorCount int) float64 {
	if len(cases) == 0 {
		return 0.0
	}

	total := 0.0
	for _, tc := range cases {
		score := 0
		if len(tc.Title) > 5 {
			score += 20
		}
		if len(tc.Description) > 10 {
			score += 15
		}
		if n := len(tc.TestSteps); n > 0 {
			stepScore := n * 5
			if stepScore > 30 {
				stepScore = 30
			}
			score += stepScore
		}
		if tc.ExpectedFinalResult != "" {
			score += 15
		}
		if model.ValidClassification(tc.Classification) {
			score += 10
		}
		if model.ValidPriority(tc.Priority) {
			score += 5
		}
		if tc.TestType != "" {
			score += 5
		}
		total += float64(score)
	}

	total -= float64(errorCount) * 10
	if total < 0 {
		total = 0
	}

	score := total / float64(len(cases)*100)
	if score > 1.0 {
		score = 1.0
	}
	return score
}
