package parse

import (
	"encoding/json"
	"fmt"
)

// requiredCaseFields are the fields every structured test case must carry
// for the response to count as well-formed.
var requiredCaseFields = []string{"title", "description", "test_steps"}

// ValidateFormat checks a raw response against the expected top-level
// structure without running the full parse. expectedFields are the
// required top-level keys (typically "test_cases" and "summary").
func (p *Parser) ValidateFormat(raw string, expectedFields []string) FormatReport {
	report := FormatReport{
		MissingFields: []string{},
		FormatErrors:  []string{},
	}

	data, ok := ExtractJSON(raw)
	if !ok {
		report.FormatErrors = append(report.FormatErrors, "no valid JSON found in response")
		return report
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		report.FormatErrors = append(report.FormatErrors, fmt.Sprintf("format validation error: %v", err))
		return report
	}

	present := 0
	for _, field := range expectedFields {
		if _, ok := top[field]; ok {
			present++
		} else {
			report.MissingFields = append(report.MissingFields, field)
		}
	}

	if rawCases, ok := top["test_cases"]; ok {
		var cases []map[string]json.RawMessage
		if err := json.Unmarshal(rawCases, &cases); err != nil {
			report.FormatErrors = append(report.FormatErrors, fmt.Sprintf("test_cases is not an array of objects: %v", err))
		} else {
			for i, tc := range cases {
				for _, field := range requiredCaseFields {
					if _, ok := tc[field]; !ok {
						report.MissingFields = append(report.MissingFields, fmt.Sprintf("test_cases[%d].%s", i, field))
					}
				}
			}
		}
	}

	if len(expectedFields) > 0 {
		report.StructureScore = float64(present) / float64(len(expectedFields))
	}

	report.IsValid = len(report.MissingFields) == 0 &&
		len(report.FormatErrors) == 0 &&
		report.StructureScore >= 0.8

	return report
}
