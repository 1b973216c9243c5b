package generate

import (
	"github.com/storygen-hq/storygen/internal/prompt"
	"github.com/storygen-hq/storygen/pkg/model"
)

const (
	// Lower temperature for consistent standard output, higher for
	// edge case exploration.
	qualityFocusedTemperature = 0.1
	creativityTemperature     = 0.3

	complexTokenCeiling = 6000
)

// params are the per-call model parameters after context adjustment.
type params struct {
	model       string
	maxTokens   int
	temperature float64
}

// adjustParams scales the configured defaults to the request context:
// temperature follows the generation type, token budget follows
// complexity and persona count.
func (g *Generator) adjustParams(pctx prompt.Context) params {
	p := params{
		model:       g.client.Model(),
		maxTokens:   g.maxTokens,
		temperature: g.temperature,
	}

	switch pctx.GenerationType {
	case model.GenerationEdgeCase:
		p.temperature = creativityTemperature
	case model.GenerationStandard:
		p.temperature = qualityFocusedTemperature
	}

	switch pctx.Complexity {
	case model.ComplexityComplex:
		p.maxTokens = int(float64(g.maxTokens) * 1.5)
		if p.maxTokens > complexTokenCeiling {
			p.maxTokens = complexTokenCeiling
		}
	case model.ComplexitySimple:
		p.maxTokens = int(float64(g.maxTokens) * 0.7)
	}

	if pctx.GenerationType == model.GenerationPersona && len(pctx.Personas) > 0 {
		multiplier := 1 + float64(len(pctx.Personas))*0.2
		p.maxTokens = int(float64(p.maxTokens) * multiplier)
	}

	return p
}
