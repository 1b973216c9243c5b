package generate

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/storygen-hq/storygen/internal/classify"
	"github.com/storygen-hq/storygen/internal/llm"
	"github.com/storygen-hq/storygen/internal/parse"
	"github.com/storygen-hq/storygen/internal/prompt"
	"github.com/storygen-hq/storygen/internal/usage"
	"github.com/storygen-hq/storygen/pkg/model"
)

const (
	defaultMaxTokens   = 4000
	defaultTemperature = 0.2
)

// Options tune a Generator beyond its collaborators.
type Options struct {
	MaxTokens           int
	Temperature         float64
	DailyCostLimitUSD   float64
	MonthlyCostLimitUSD float64
}

// Generator orchestrates the full generation pipeline: classification,
// prompt rendering, the model call with retries, response parsing, the
// quality gate, and usage tracking.
type Generator struct {
	client  llm.Client
	prompts *prompt.Manager
	parser  *parse.Parser
	tracker *usage.Tracker

	maxTokens    int
	temperature  float64
	dailyLimit   float64
	monthlyLimit float64

	// sleep is replaced in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// New wires a Generator. tracker may be nil, in which case a purely
// in-memory tracker is used.
func New(client llm.Client, prompts *prompt.Manager, tracker *usage.Tracker, opts Options) *Generator {
	if tracker == nil {
		tracker = usage.NewTracker(nil)
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.DailyCostLimitUSD <= 0 {
		opts.DailyCostLimitUSD = 50
	}
	if opts.MonthlyCostLimitUSD <= 0 {
		opts.MonthlyCostLimitUSD = 1000
	}

	return &Generator{
		client:       client,
		prompts:      prompts,
		parser:       parse.NewParser(),
		tracker:      tracker,
		maxTokens:    opts.MaxTokens,
		temperature:  opts.Temperature,
		dailyLimit:   opts.DailyCostLimitUSD,
		monthlyLimit: opts.MonthlyCostLimitUSD,
		sleep:        sleepContext,
	}
}

// Generate runs the pipeline for one request. It is total: every
// failure is reported through the result rather than an error return,
// so callers always get usage and timing information.
func (g *Generator) Generate(ctx context.Context, req Request) *Result {
	start := time.Now()

	if err := req.normalize(); err != nil {
		return failureResult(g.client.Model(), start, err)
	}

	if req.Domain == "" {
		req.Domain = classify.DetectDomain(req.Description)
	}
	if req.Complexity == "" {
		req.Complexity = classify.EstimateComplexity(classify.StoryTraits{
			Description:        req.Description,
			AcceptanceCriteria: req.AcceptanceCriteria,
			Personas:           req.Personas,
			BusinessRules:      req.BusinessRules,
		})
	}

	pctx := prompt.Context{
		Domain:             req.Domain,
		Complexity:         req.Complexity,
		GenerationType:     req.GenerationType,
		Title:              req.Title,
		Description:        req.Description,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Personas:           req.Personas,
		BusinessRules:      req.BusinessRules,
		AdditionalContext:  req.AdditionalContext,
	}

	rendered, err := g.prompts.Render(pctx)
	if err != nil {
		return failureResult(g.client.Model(), start, err)
	}

	p := g.adjustParams(pctx)

	resp, err := g.completeWithRetry(ctx, rendered, p)
	if err != nil {
		return failureResult(g.client.Model(), start, err)
	}

	parsed := g.parser.Parse(resp.Content)
	tokenUsage := usage.NewTokenUsage(g.client.Model(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.RequestID)

	if parsed.ConfidenceScore < req.QualityThreshold {
		log.Warn().
			Float64("confidence", parsed.ConfidenceScore).
			Float64("threshold", req.QualityThreshold).
			Msg("generation quality below threshold, retrying with enhanced prompt")

		if enhanced := g.retryWithEnhancedPrompt(ctx, pctx, &req, parsed); enhanced != nil &&
			enhanced.ConfidenceScore > parsed.ConfidenceScore {
			parsed = enhanced
		}
	}

	g.tracker.Track(ctx, tokenUsage)

	result := &Result{
		TestCases:             parsed.TestCases,
		PersonaTestCases:      parsed.PersonaTestCases,
		CrossPersonaScenarios: parsed.CrossPersonaScenarios,
		Summary:               buildSummary(parsed),
		QualityScore:          parsed.ConfidenceScore,
		ConfidenceScore:       parsed.ConfidenceScore,
		TokenUsage:            tokenUsage,
		ProcessingTime:        time.Since(start),
		Metadata:              g.buildMetadata(pctx, rendered, parsed, p),
		Success:               parsed.ParsingSuccess,
	}

	log.Info().
		Int("test_cases", len(result.TestCases)).
		Float64("quality_score", result.QualityScore).
		Dur("processing_time", result.ProcessingTime).
		Msg("generation complete")

	return result
}

func failureResult(modelName string, start time.Time, err error) *Result {
	log.Error().Err(err).Msg("test case generation failed")

	return &Result{
		PersonaTestCases: map[string][]model.TestCase{},
		Summary:          map[string]any{},
		Metadata:         map[string]any{},
		TokenUsage:       usage.TokenUsage{Model: modelName, Timestamp: time.Now().UTC()},
		ProcessingTime:   time.Since(start),
		Success:          false,
		ErrorMessage:     err.Error(),
	}
}
