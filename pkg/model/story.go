// Package model defines the shared value model for story-driven test
// generation: the closed enums a user story is classified into, and the
// structured test cases the pipeline produces. Everything here is a plain
// value - no I/O, no mutation after construction.
package model

// Domain is the inferred business category of a user story.
type Domain string

const (
	DomainEcommerce  Domain = "ecommerce"
	DomainFinance    Domain = "finance"
	DomainHealthcare Domain = "healthcare"
	DomainSaaS       Domain = "saas"
	DomainMobile     Domain = "mobile"
	DomainAPI        Domain = "api"
	DomainGeneral    Domain = "general"
)

// Domains returns all non-general domains in priority order. The order is
// load-bearing: domain detection breaks keyword-score ties by first match
// in this slice.
func Domains() []Domain {
	return []Domain{
		DomainEcommerce,
		DomainFinance,
		DomainHealthcare,
		DomainSaaS,
		DomainMobile,
		DomainAPI,
	}
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainEcommerce, DomainFinance, DomainHealthcare, DomainSaaS,
		DomainMobile, DomainAPI, DomainGeneral:
		return true
	}
	return false
}

// Complexity is the coarse difficulty bucket of a story, used to scale
// generation parameters.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"  // score 0.0 - 0.3
	ComplexityMedium  Complexity = "medium"  // score 0.3 - 0.7
	ComplexityComplex Complexity = "complex" // score 0.7 - 1.0
)

// Valid reports whether c is a known complexity level.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	}
	return false
}

// GenerationType selects the test generation approach.
type GenerationType string

const (
	GenerationStandard    GenerationType = "standard"
	GenerationPersona     GenerationType = "persona_based"
	GenerationEdgeCase    GenerationType = "edge_case_focused"
	GenerationPerformance GenerationType = "performance_focused"
	GenerationSecurity    GenerationType = "security_focused"
)

// Valid reports whether g is a known generation type.
func (g GenerationType) Valid() bool {
	switch g {
	case GenerationStandard, GenerationPersona, GenerationEdgeCase,
		GenerationPerformance, GenerationSecurity:
		return true
	}
	return false
}
