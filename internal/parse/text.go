package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/storygen-hq/storygen/pkg/model"
)

// Section delimiters, tried in order. The first pattern that actually
// splits the text wins; otherwise blank-line blocks longer than 50
// characters are used.
var sectionDelimiters = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:^|\n)(?:test case|tc)\s*\d+`),
	regexp.MustCompile(`(?im)(?:^|\n)#{1,3}\s*test`),
	regexp.MustCompile(`(?im)(?:^|\n)\d+\.\s*(?:test|verify)`),
	regexp.MustCompile(`(?im)(?:^|\n)\*\*(?:test|tc)`),
}

var fieldPatterns = struct {
	title       *regexp.Regexp
	description *regexp.Regexp
	stepsLabel  *regexp.Regexp
	expected    *regexp.Regexp
}{
	title:       regexp.MustCompile(`(?i)(?:title|test case):?\s*(.+)`),
	description: regexp.MustCompile(`(?i)(?:description|summary):?\s*(.+)`),
	stepsLabel:  regexp.MustCompile(`(?i)(?:test steps|steps):?`),
	expected:    regexp.MustCompile(`(?i)(?:expected result|expected):?\s*(.+)`),
}

var (
	apiKeywords  = []string{"api", "endpoint", "backend", "service"}
	uiKeywords   = []string{"ui", "interface", "browser", "click", "navigate"}
	highKeywords = []string{"critical", "high priority", "urgent"}
	lowKeywords  = []string{"low priority", "nice to have"}
)

// parseText is the free-text fallback: segment the response into
// candidate test case sections and extract fields per section with
// regular expressions.
func (p *Parser) parseText(text string, parsingErrors *[]string) []model.TestCase {
	sections := splitIntoSections(text)

	cases := make([]model.TestCase, 0, len(sections))
	for i, section := range sections {
		tc, err := parseSection(section, i+1)
		if err != nil {
			*parsingErrors = append(*parsingErrors, fmt.Sprintf("error parsing text section %d: %v", i+1, err))
			continue
		}
		cases = append(cases, tc)
	}

	return cases
}

func splitIntoSections(text string) []string {
	for _, delimiter := range sectionDelimiters {
		parts := delimiter.Split(text, -1)
		if len(parts) > 1 {
			return trimNonEmpty(parts, 0)
		}
	}

	return trimNonEmpty(strings.Split(text, "\n\n"), 50)
}

func trimNonEmpty(parts []string, minLen int) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) > minLen {
			out = append(out, part)
		}
	}
	return out
}

func parseSection(section string, index int) (model.TestCase, error) {
	tc := model.TestCase{
		Title:             fmt.Sprintf("Test Case %d", index),
		Classification:    extractClassification(section),
		Priority:          extractPriority(section),
		TestType:          model.TestTypeFunctional,
		EstimatedDuration: model.DefaultEstimatedDuration,
	}

	if m := fieldPatterns.title.FindStringSubmatch(section); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			tc.Title = title
		}
	}
	if m := fieldPatterns.description.FindStringSubmatch(section); m != nil {
		tc.Description = strings.TrimSpace(m[1])
	}
	if m := fieldPatterns.expected.FindStringSubmatch(section); m != nil {
		tc.ExpectedFinalResult = strings.TrimSpace(m[1])
	}

	if block := extractStepsBlock(section); block != "" {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			// "action - expected" lines split into both fields.
			action, expected := line, ""
			if parts := strings.SplitN(line, " - ", 2); len(parts) == 2 {
				action = strings.TrimSpace(parts[0])
				expected = strings.TrimSpace(parts[1])
			}

			tc.TestSteps = append(tc.TestSteps, model.TestStep{
				Action:         action,
				ExpectedResult: expected,
			})
		}
	}
	tc.RenumberSteps()

	return tc, nil
}

// extractStepsBlock captures the text after a steps label, terminated by
// the first blank line or by a newline followed by an uppercase letter
// (the start of the next field label, e.g. "Expected Result:").
func extractStepsBlock(section string) string {
	loc := fieldPatterns.stepsLabel.FindStringIndex(section)
	if loc == nil {
		return ""
	}

	rest := strings.TrimLeft(section[loc[1]:], " \t\r\n")
	for i := 0; i < len(rest); i++ {
		if rest[i] != '\n' {
			continue
		}
		if i+1 < len(rest) && (rest[i+1] == '\n' || (rest[i+1] >= 'A' && rest[i+1] <= 'Z')) {
			return rest[:i]
		}
	}
	return rest
}

func extractClassification(text string) string {
	lower := strings.ToLower(text)

	for _, keyword := range apiKeywords {
		if strings.Contains(lower, keyword) {
			return model.ClassificationAPIAutomation
		}
	}
	for _, keyword := range uiKeywords {
		if strings.Contains(lower, keyword) {
			return model.ClassificationUIAutomation
		}
	}
	return model.ClassificationManual
}

func extractPriority(text string) string {
	lower := strings.ToLower(text)

	for _, keyword := range highKeywords {
		if strings.Contains(lower, keyword) {
			return model.PriorityHigh
		}
	}
	for _, keyword := range lowKeywords {
		if strings.Contains(lower, keyword) {
			return model.PriorityLow
		}
	}
	return model.PriorityMedium
}
