package generate

import (
	"sort"
	"strings"
	"time"

	"github.com/storygen-hq/storygen/internal/parse"
	"github.com/storygen-hq/storygen/internal/prompt"
	"github.com/storygen-hq/storygen/internal/usage"
	"github.com/storygen-hq/storygen/pkg/model"
)

// Result is the complete outcome of one generation request.
type Result struct {
	TestCases             []model.TestCase              `json:"test_cases"`
	PersonaTestCases      map[string][]model.TestCase   `json:"persona_test_cases"`
	CrossPersonaScenarios []model.CrossPersonaScenario  `json:"cross_persona_scenarios"`
	Summary               map[string]any                `json:"summary"`
	QualityScore          float64                       `json:"quality_score"`
	ConfidenceScore       float64                       `json:"confidence_score"`
	TokenUsage            usage.TokenUsage              `json:"token_usage"`
	ProcessingTime        time.Duration                 `json:"processing_time"`
	Metadata              map[string]any                `json:"generation_metadata"`
	Success               bool                          `json:"success"`
	ErrorMessage          string                        `json:"error_message,omitempty"`
}

func buildSummary(parsed *parse.Response) map[string]any {
	total := len(parsed.TestCases)

	personaCount := 0
	for _, cases := range parsed.PersonaTestCases {
		personaCount += len(cases)
	}

	classifications := map[string]int{}
	for _, tc := range parsed.TestCases {
		classifications[tc.Classification]++
	}

	automationRatio := 0.0
	if total > 0 {
		automated := classifications[model.ClassificationAPIAutomation] +
			classifications[model.ClassificationUIAutomation]
		automationRatio = float64(automated) / float64(total)
	}

	return map[string]any{
		"total_test_cases":            total,
		"persona_test_cases":          personaCount,
		"cross_persona_scenarios":     len(parsed.CrossPersonaScenarios),
		"classification_distribution": classifications,
		"automation_ratio":            automationRatio,
		"average_estimated_duration":  averageDuration(parsed.TestCases),
		"coverage_areas":              coverageAreas(parsed.TestCases),
		"quality_score":               parsed.ConfidenceScore,
		"parsing_success":             parsed.ParsingSuccess,
		"parsing_errors_count":        len(parsed.ParsingErrors),
	}
}

func averageDuration(cases []model.TestCase) float64 {
	if len(cases) == 0 {
		return 0.0
	}

	total := 0
	for _, tc := range cases {
		total += tc.EstimatedDuration
	}
	return float64(total) / float64(len(cases))
}

// coverageKeywords maps content keywords to the coverage area they
// indicate. Test types and tags contribute directly.
var coverageKeywords = []struct {
	area     string
	keywords []string
}{
	{"authentication", []string{"authentication", "login"}},
	{"authorization", []string{"permission", "authorization"}},
	{"data_validation", []string{"data", "validation"}},
	{"error_handling", []string{"error", "exception"}},
	{"performance", []string{"performance", "load"}},
	{"security", []string{"security"}},
	{"user_interface", []string{"ui", "interface"}},
	{"api_integration", []string{"api", "service"}},
}

func coverageAreas(cases []model.TestCase) []string {
	areas := map[string]struct{}{}

	for _, tc := range cases {
		areas[tc.TestType] = struct{}{}
		for _, tag := range tc.Tags {
			areas[tag] = struct{}{}
		}

		content := strings.ToLower(tc.Title + " " + tc.Description)
		for _, ck := range coverageKeywords {
			for _, keyword := range ck.keywords {
				if strings.Contains(content, keyword) {
					areas[ck.area] = struct{}{}
					break
				}
			}
		}
	}

	out := make([]string, 0, len(areas))
	for area := range areas {
		out = append(out, area)
	}
	sort.Strings(out)
	return out
}

func (g *Generator) buildMetadata(pctx prompt.Context, rendered *prompt.Rendered, parsed *parse.Response, p params) map[string]any {
	return map[string]any{
		"domain":                  string(pctx.Domain),
		"complexity":              string(pctx.Complexity),
		"generation_type":         string(pctx.GenerationType),
		"template_used":           rendered.TemplateName,
		"estimated_prompt_tokens": rendered.EstimatedTokens,
		"parsing_confidence":      parsed.ConfidenceScore,
		"parsing_errors":          parsed.ParsingErrors,
		"generation_timestamp":    time.Now().UTC().Format(time.RFC3339),
		"model_used":              p.model,
		"temperature_used":        p.temperature,
	}
}
