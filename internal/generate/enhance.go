package generate

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/storygen-hq/storygen/internal/parse"
	"github.com/storygen-hq/storygen/internal/prompt"
	"github.com/storygen-hq/storygen/internal/usage"
)

const enhancedTemperatureCeiling = 0.5

const qualityEnhancement = `

IMPORTANT: The previous generation had quality issues. Please ensure:
1. Generate at least 5 comprehensive test cases
2. Each test case has clear, specific steps
3. Include realistic test data
4. Provide detailed expected results
5. Use proper JSON formatting
6. Focus on practical, executable scenarios`

// retryWithEnhancedPrompt makes one additional attempt with quality
// feedback folded into the prompt context and a slightly higher
// temperature. Returns nil when the attempt fails; the caller keeps the
// initial response in that case.
func (g *Generator) retryWithEnhancedPrompt(ctx context.Context, pctx prompt.Context, req *Request, initial *parse.Response) *parse.Response {
	issues := []string{}
	if len(initial.TestCases) < 3 {
		issues = append(issues, "insufficient test cases")
	}
	if len(initial.ParsingErrors) > 0 {
		issues = append(issues, "parsing errors")
	}

	minCases := req.MaxTestCases / 2
	if minCases < 5 {
		minCases = 5
	}

	enhanced := pctx
	enhanced.AdditionalContext = make(map[string]any, len(pctx.AdditionalContext)+4)
	for k, v := range pctx.AdditionalContext {
		enhanced.AdditionalContext[k] = v
	}
	enhanced.AdditionalContext["quality_improvement_needed"] = true
	enhanced.AdditionalContext["previous_issues"] = issues
	enhanced.AdditionalContext["minimum_test_cases"] = minCases
	enhanced.AdditionalContext["focus_on_clarity"] = true

	rendered, err := g.prompts.Render(enhanced)
	if err != nil {
		log.Error().Err(err).Msg("enhanced prompt retry failed")
		return nil
	}
	rendered.UserPrompt += qualityEnhancement

	p := g.adjustParams(enhanced)
	p.temperature += 0.1
	if p.temperature > enhancedTemperatureCeiling {
		p.temperature = enhancedTemperatureCeiling
	}

	resp, err := g.completeWithRetry(ctx, rendered, p)
	if err != nil {
		log.Error().Err(err).Msg("enhanced prompt retry failed")
		return nil
	}

	parsed := g.parser.Parse(resp.Content)

	g.tracker.Track(ctx, usage.NewTokenUsage(
		g.client.Model(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.RequestID))

	return parsed
}
